package codec

import (
	"encoding/binary"
	"encoding/hex"
)

// --------------------------------------------------------------------------
// Fixed width integers (big endian, so encoded keys sort numerically)
// --------------------------------------------------------------------------

// U32 is a uint32 encoded as 4 big endian bytes
type U32 uint32

func (u U32) Encode() []byte {
	return binary.BigEndian.AppendUint32(nil, uint32(u))
}

func (u *U32) Decode(b []byte) error {
	if err := checkLen("U32", b, 4); err != nil {
		return err
	}
	*u = U32(binary.BigEndian.Uint32(b))
	return nil
}

// U64 is a uint64 encoded as 8 big endian bytes
type U64 uint64

func (u U64) Encode() []byte {
	return binary.BigEndian.AppendUint64(nil, uint64(u))
}

func (u *U64) Decode(b []byte) error {
	if err := checkLen("U64", b, 8); err != nil {
		return err
	}
	*u = U64(binary.BigEndian.Uint64(b))
	return nil
}

// --------------------------------------------------------------------------
// Bool
// --------------------------------------------------------------------------

// Bool is encoded as a single byte, 0 or 1
type Bool bool

func (v Bool) Encode() []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

func (v *Bool) Decode(b []byte) error {
	if err := checkLen("Bool", b, 1); err != nil {
		return err
	}
	switch b[0] {
	case 0:
		*v = false
	case 1:
		*v = true
	default:
		return &DecodeError{Type: "Bool", Want: 1, Got: 1, Err: ErrInvalidValue}
	}
	return nil
}

// --------------------------------------------------------------------------
// Raw bytes and strings
// --------------------------------------------------------------------------

// String is stored as its raw bytes. Decoding never fails.
type String string

func (s String) Encode() []byte {
	return []byte(s)
}

func (s *String) Decode(b []byte) error {
	*s = String(b)
	return nil
}

// Bytes is stored unchanged. Decoding never fails and copies the input.
type Bytes []byte

func (v Bytes) Encode() []byte {
	return append([]byte{}, v...)
}

func (v *Bytes) Decode(b []byte) error {
	*v = append(Bytes{}, b...)
	return nil
}

// --------------------------------------------------------------------------
// H256
// --------------------------------------------------------------------------

// H256 is a 32 byte hash, e.g. a message id
type H256 [32]byte

func (h H256) Encode() []byte {
	return append([]byte(nil), h[:]...)
}

func (h *H256) Decode(b []byte) error {
	if err := checkLen("H256", b, 32); err != nil {
		return err
	}
	copy(h[:], b)
	return nil
}

// String returns the 0x prefixed hex representation
func (h H256) String() string {
	return "0x" + hex.EncodeToString(h[:])
}
