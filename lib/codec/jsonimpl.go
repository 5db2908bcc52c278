package codec

import (
	"encoding/json"
	"fmt"
)

// JSON wraps a value of type T and stores it using encoding/json.
// T must be a type encoding/json can marshal (no channels, functions or cyclic
// values); Encode panics otherwise.
//
// Usage:
//
//	type Checkpoint struct { Block uint64 `json:"block"` }
//	err := database.StoreEncodable(prefix, key, codec.JSON[Checkpoint]{V: cp})
//	cp, ok, err := typeddb.RetrieveDecodable[codec.JSON[Checkpoint]](database, prefix, key)
type JSON[T any] struct {
	V T
}

func (j JSON[T]) Encode() []byte {
	b, err := json.Marshal(j.V)
	if err != nil {
		panic(fmt.Sprintf("codec: JSON[%T] is not marshalable: %v", j.V, err))
	}
	return b
}

func (j *JSON[T]) Decode(b []byte) error {
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return &DecodeError{Type: fmt.Sprintf("JSON[%T]", v), Got: len(b), Err: err}
	}
	j.V = v
	return nil
}
