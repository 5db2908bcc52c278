package codec

import (
	"bytes"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkpoint struct {
	Block uint64 `json:"block"`
	Hash  string `json:"hash"`
}

// TestRoundTrip tests that values survive Encode followed by Decode
func TestRoundTrip(t *testing.T) {
	t.Run("U32", func(t *testing.T) {
		for _, v := range []U32{0, 1, 0xdeadbeef, ^U32(0)} {
			var out U32
			require.NoError(t, out.Decode(v.Encode()))
			assert.Equal(t, v, out)
		}
	})

	t.Run("U64", func(t *testing.T) {
		for _, v := range []U64{0, 42, 1 << 40, ^U64(0)} {
			var out U64
			require.NoError(t, out.Decode(v.Encode()))
			assert.Equal(t, v, out)
		}
	})

	t.Run("Bool", func(t *testing.T) {
		for _, v := range []Bool{true, false} {
			var out Bool
			require.NoError(t, out.Decode(v.Encode()))
			assert.Equal(t, v, out)
		}
	})

	t.Run("String", func(t *testing.T) {
		for _, v := range []String{"", "hello", "ünïcödé"} {
			var out String
			require.NoError(t, out.Decode(v.Encode()))
			assert.Equal(t, v, out)
		}
	})

	t.Run("Bytes", func(t *testing.T) {
		v := Bytes{0x00, 0xff, 0x10}
		var out Bytes
		require.NoError(t, out.Decode(v.Encode()))
		assert.Equal(t, v, out)
	})

	t.Run("H256", func(t *testing.T) {
		var v H256
		for i := range v {
			v[i] = byte(i)
		}
		var out H256
		require.NoError(t, out.Decode(v.Encode()))
		assert.Equal(t, v, out)
	})

	t.Run("JSON", func(t *testing.T) {
		v := JSON[checkpoint]{V: checkpoint{Block: 7, Hash: "0xabc"}}
		var out JSON[checkpoint]
		require.NoError(t, out.Decode(v.Encode()))
		assert.Equal(t, v, out)
	})
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		dec   Decoder
		input []byte
		cause error
	}{
		{"U32 short", new(U32), []byte{1, 2, 3}, ErrShortBuffer},
		{"U32 long", new(U32), []byte{1, 2, 3, 4, 5}, ErrTrailingBytes},
		{"U64 empty", new(U64), nil, ErrShortBuffer},
		{"Bool invalid", new(Bool), []byte{2}, ErrInvalidValue},
		{"Bool empty", new(Bool), []byte{}, ErrShortBuffer},
		{"H256 short", new(H256), make([]byte, 31), ErrShortBuffer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.dec.Decode(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.cause), "expected %v, got %v", tt.cause, err)

			var decErr *DecodeError
			assert.True(t, errors.As(err, &decErr))
			assert.Equal(t, len(tt.input), decErr.Got)
		})
	}

	t.Run("JSON malformed", func(t *testing.T) {
		var out JSON[checkpoint]
		err := out.Decode([]byte("{not json"))
		var decErr *DecodeError
		require.True(t, errors.As(err, &decErr))
		assert.Contains(t, decErr.Error(), "JSON[codec.checkpoint]")
	})
}

// TestIntegerEncodingSortsNumerically checks that big endian keys keep numeric order under byte order
func TestIntegerEncodingSortsNumerically(t *testing.T) {
	values := []U64{300, 2, 1 << 33, 255, 256, 0}

	encoded := make([][]byte, len(values))
	for i, v := range values {
		encoded[i] = v.Encode()
	}
	sort.Slice(encoded, func(i, j int) bool { return bytes.Compare(encoded[i], encoded[j]) < 0 })

	var prev U64
	for i, b := range encoded {
		var v U64
		require.NoError(t, v.Decode(b))
		if i > 0 {
			assert.Greater(t, v, prev)
		}
		prev = v
	}
}

func TestJSONEncodePanicsOnUnsupportedType(t *testing.T) {
	assert.Panics(t, func() {
		JSON[chan int]{V: make(chan int)}.Encode()
	})
}

func TestH256String(t *testing.T) {
	var h H256
	h[31] = 0x01
	assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000001", h.String())
}
