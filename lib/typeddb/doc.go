// Package typeddb provides typed, namespaced persistence on top of a single
// ordered key-value engine (db.KVDB, pebble by default).
//
// Several logical tables live in one physical keyspace. Every table is a fixed
// byte prefix, and the physical key of an entry is the prefix followed directly by
// the caller's key:
//
//	physical key = prefix ++ key
//
// There is no separator and no length prefix. Callers must choose prefixes so that
// no prefix in use is a byte prefix of another one: with the tables "msg" and
// "msg_id", the key "_id1" in "msg" and the key "1" in "msg_id" are the same
// physical key. This is not checked.
//
// Key Components:
//
//   - DB: A shared handle to one opened engine. Open resolves the path, logs whether
//     an existing store is opened or a new one is created and opens the engine
//     (creating the directory if needed). Clone hands out further handles to the
//     same engine; the engine is closed when the last handle is closed.
//
//   - Path Resolution: ResolvePath canonicalizes the parent directory and keeps the
//     final component, so errors always name the path that is actually opened. The
//     parent directory must exist.
//
//   - Prefixed operations: PrefixStore, PrefixRetrieve, PrefixDelete and
//     PrefixIterator work on raw bytes.
//
//   - Typed operations: StoreEncodable / RetrieveDecodable and their keyed variants
//     encode values (and keys) with the codec.Encoder / codec.Decoder capability.
//     NewTypedIterator decodes a whole prefix scan.
//
//   - Error: Every failure is an *Error with one of the codes ErrCodeEngine,
//     ErrCodeInvalidPath, ErrCodeOpening or ErrCodeDecode and the original cause.
//     Absence of a value is never an error: retrieve operations return found=false.
//
// Semantics:
//
//   - Storing under an existing key overwrites it, the last writer wins.
//   - An empty value is a stored value and distinct from absence.
//   - Nothing is retried and nothing is cached, every call goes to the engine.
//   - Iterators read from a snapshot taken at creation and return entries in
//     ascending byte order of the physical key.
//
// Thread Safety:
//
//	DB values are safe for concurrent use. There is no locking beyond what the
//	engine does for a single put or get, so read-modify-write sequences must be
//	synchronized by the caller.
package typeddb
