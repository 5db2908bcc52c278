package typeddb

import (
	"testing"

	"github.com/ValentinKolb/tKV/lib/codec"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"engine", engineError(cause), "boom"},
		{"invalid path", invalidPathError("a/b", cause), `invalid database path supplied "a/b": boom`},
		{"opening", openingError("a/b", "/abs/a/b", cause), "failed to open a/b, canonicalized as /abs/a/b: boom"},
		{"decode", decodeError(cause), "failed to decode stored value: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.want)
			assert.ErrorIs(t, tt.err, cause)
		})
	}
}

func TestErrorSentinels(t *testing.T) {
	err := decodeError(&codec.DecodeError{Type: "U64", Want: 8, Got: 3, Err: codec.ErrShortBuffer})

	assert.True(t, errors.Is(err, ErrDecode))
	assert.False(t, errors.Is(err, ErrEngine))
	assert.False(t, errors.Is(err, ErrOpening))
	assert.True(t, errors.Is(err, codec.ErrShortBuffer))
	assert.Equal(t, ErrCodeDecode, CodeOf(err))

	wrapped := errors.Wrap(err, "loading nonce")
	assert.True(t, errors.Is(wrapped, ErrDecode))
	assert.Equal(t, ErrCodeDecode, CodeOf(wrapped))

	var decodeErr *codec.DecodeError
	assert.True(t, errors.As(wrapped, &decodeErr))
	assert.Equal(t, "U64", decodeErr.Type)
}

func TestEngineErrorNil(t *testing.T) {
	assert.NoError(t, engineError(nil))
	assert.Equal(t, ErrCode(0), CodeOf(nil))
	assert.Equal(t, ErrCode(0), CodeOf(errors.New("foreign")))
}

func TestErrCodeString(t *testing.T) {
	assert.Equal(t, "Engine", ErrCodeEngine.String())
	assert.Equal(t, "InvalidPath", ErrCodeInvalidPath.String())
	assert.Equal(t, "Opening", ErrCodeOpening.String())
	assert.Equal(t, "Decode", ErrCodeDecode.String())
	assert.Equal(t, "Unknown", ErrCode(99).String())
}
