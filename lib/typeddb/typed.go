package typeddb

import (
	"github.com/ValentinKolb/tKV/lib/codec"
)

// Decodable is satisfied by *V when V's pointer implements codec.Decoder.
// It lets the retrieve functions allocate a V and decode into it.
type Decodable[V any] interface {
	*V
	codec.Decoder
}

// --------------------------------------------------------------------------
// Typed store
// --------------------------------------------------------------------------

// StoreEncodable encodes value and stores it under prefix ++ key
func (d *DB) StoreEncodable(prefix, key []byte, value codec.Encoder) error {
	return d.PrefixStore(prefix, key, value.Encode())
}

// StoreKeyedEncodable encodes key and value and stores the value under
// prefix ++ key.Encode()
func (d *DB) StoreKeyedEncodable(prefix []byte, key, value codec.Encoder) error {
	return d.StoreEncodable(prefix, key.Encode(), value)
}

// DeleteKeyed removes the value stored under prefix ++ key.Encode()
func (d *DB) DeleteKeyed(prefix []byte, key codec.Encoder) error {
	return d.PrefixDelete(prefix, key.Encode())
}

// --------------------------------------------------------------------------
// Typed retrieve
// --------------------------------------------------------------------------

// RetrieveDecodable reads the value under prefix ++ key and decodes it into a V.
// If nothing is stored it returns the zero V and false. Bytes that cannot be decoded
// yield an ErrCodeDecode error.
//
// Usage:
//
//	nonce, found, err := typeddb.RetrieveDecodable[codec.U32](database, prefix, key)
func RetrieveDecodable[V any, PV Decodable[V]](d *DB, prefix, key []byte) (V, bool, error) {
	var value V

	raw, found, err := d.PrefixRetrieve(prefix, key)
	if err != nil || !found {
		return value, false, err
	}

	if err := PV(&value).Decode(raw); err != nil {
		var zero V
		return zero, false, decodeError(err)
	}
	return value, true, nil
}

// RetrieveKeyedDecodable is RetrieveDecodable with an encodable key
func RetrieveKeyedDecodable[V any, PV Decodable[V]](d *DB, prefix []byte, key codec.Encoder) (V, bool, error) {
	return RetrieveDecodable[V, PV](d, prefix, key.Encode())
}
