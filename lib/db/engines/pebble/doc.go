// Package pebble implements the db.KVDB interface on top of CockroachDB's Pebble,
// an embedded LSM-tree storage engine. It is the durable engine of tKV.
//
// Open creates the store directory if it is missing (the parent directory must
// exist) and otherwise uses Pebble's default tuning. Writes go through the write
// ahead log; with Options.Sync (the default) every Put and Delete waits for the
// log to be synced to disk.
//
// Prefix Iteration:
//
//	NewPrefixIterator takes a Pebble snapshot and opens an iterator bounded by
//	[prefix, db.PrefixUpperBound(prefix)). The iterator therefore never sees keys
//	outside the prefix and never sees writes made after it was created. The
//	iterator holds the snapshot until Close is called, which delays compaction of
//	overwritten data, so long-lived iterators should be avoided.
//
// Thread Safety:
//
//	The database is safe for concurrent use. Iterators are not; each goroutine
//	has to use its own.
package pebble
