package codec

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Encoder is implemented by every type that can be stored.
// Encode must be total: every value of the type has an encoding.
type Encoder interface {
	// Encode returns the byte representation of the value
	Encode() []byte
}

// Decoder is implemented by pointers to storable types.
// Decode must reject malformed input with an error (preferably a *DecodeError) and never panic.
type Decoder interface {
	// Decode replaces the receiver with the value encoded in b
	Decode(b []byte) error
}

// Codec is a type that can be both encoded and decoded. For a type T the round trip
// (*T).Decode(v.Encode()) must yield a value equal to v.
type Codec interface {
	Encoder
	Decoder
}

// --------------------------------------------------------------------------
// Decode errors
// --------------------------------------------------------------------------

var (
	// ErrShortBuffer is returned when the input is shorter than the encoding requires
	ErrShortBuffer = errors.New("short buffer")
	// ErrTrailingBytes is returned when the input is longer than the encoding
	ErrTrailingBytes = errors.New("trailing bytes")
	// ErrInvalidValue is returned when the input has the right size but no valid meaning
	ErrInvalidValue = errors.New("invalid value")
)

// DecodeError describes why bytes could not be decoded into a type
type DecodeError struct {
	Type string // name of the target type
	Want int    // expected length in bytes (0 = variable)
	Got  int    // actual length in bytes
	Err  error  // one of ErrShortBuffer, ErrTrailingBytes, ErrInvalidValue or a foreign cause
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Want > 0 {
		return fmt.Sprintf("decode %s: %v (want %d bytes, got %d)", e.Type, e.Err, e.Want, e.Got)
	}
	return fmt.Sprintf("decode %s: %v", e.Type, e.Err)
}

// Unwrap returns the cause
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// checkLen validates a fixed size encoding
func checkLen(typ string, b []byte, want int) error {
	switch {
	case len(b) < want:
		return &DecodeError{Type: typ, Want: want, Got: len(b), Err: ErrShortBuffer}
	case len(b) > want:
		return &DecodeError{Type: typ, Want: want, Got: len(b), Err: ErrTrailingBytes}
	default:
		return nil
	}
}
