// Package codec defines the encode/decode capability used by the typed store
// operations of lib/typeddb, together with a set of ready-made storable types.
//
// Any type can be stored once it implements Encoder (total, value receiver) and
// its pointer implements Decoder (fallible). The storage layer never needs to know
// the concrete types.
//
// Key Components:
//
//   - Encoder / Decoder / Codec: The capability interfaces.
//
//   - DecodeError: Structured decode failure carrying the target type, the expected
//     and actual length and a cause (ErrShortBuffer, ErrTrailingBytes, ErrInvalidValue
//     or a foreign error such as a *json.SyntaxError).
//
//   - Fixed width types: U32 and U64 use big endian encoding so that encoded integer
//     keys sort numerically in a prefix scan. Bool uses one byte. H256 is a 32 byte hash.
//
//   - Raw types: String and Bytes are stored unchanged; their decoding never fails.
//
//   - JSON[T]: A wrapper storing any JSON-marshalable value with encoding/json,
//     useful for debugging and for values that are read by other tools.
//
// Thread Safety:
//
//	All types are plain values without shared state; they are safe for concurrent use
//	as long as a single value is not decoded into from two goroutines at once.
package codec
