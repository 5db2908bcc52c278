package typeddb

import (
	"github.com/ValentinKolb/tKV/lib/db"
)

// TypedIterator decodes the values of a prefix scan into V.
// Keys are returned without the prefix. The first value that cannot be decoded
// stops the iteration and is reported by Error as an ErrCodeDecode error.
type TypedIterator[V any, PV Decodable[V]] struct {
	it     db.Iterator
	prefix []byte
	key    []byte
	value  V
	err    error
}

// NewTypedIterator starts a prefix scan (see DB.PrefixIterator) decoding every value into V
//
// Usage:
//
//	it, err := typeddb.NewTypedIterator[codec.U64](database, prefix)
//	if err != nil { ... }
//	defer it.Close()
//	for it.Next() {
//		fmt.Println(it.Key(), it.Value())
//	}
//	return it.Error()
func NewTypedIterator[V any, PV Decodable[V]](d *DB, prefix []byte) (*TypedIterator[V, PV], error) {
	it, err := d.PrefixIterator(prefix)
	if err != nil {
		return nil, err
	}
	return &TypedIterator[V, PV]{
		it:     it,
		prefix: append([]byte(nil), prefix...),
	}, nil
}

// Next advances to the next entry and decodes it
func (t *TypedIterator[V, PV]) Next() bool {
	if t.err != nil {
		return false
	}
	if !t.it.Next() {
		t.err = t.it.Error()
		return false
	}

	var value V
	if err := PV(&value).Decode(t.it.Value()); err != nil {
		t.err = decodeError(err)
		return false
	}

	t.key = t.it.Key()[len(t.prefix):]
	t.value = value
	return true
}

// Key returns the current key with the prefix removed
func (t *TypedIterator[V, PV]) Key() []byte {
	return t.key
}

// Value returns the current decoded value
func (t *TypedIterator[V, PV]) Value() V {
	return t.value
}

// Error returns the error that stopped the iteration, if any
func (t *TypedIterator[V, PV]) Error() error {
	return t.err
}

// Close releases the underlying iterator
func (t *TypedIterator[V, PV]) Close() error {
	return t.it.Close()
}
