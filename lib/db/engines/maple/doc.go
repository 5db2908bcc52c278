// Package maple implements an in-memory key-value database (KVDB) for tests and
// development. It provides a complete implementation of the db.KVDB interface
// with a focus on thread safety and predictable behaviour, but it does not
// persist anything: all data is lost when the database is closed or the process exits.
//
// Key Components:
//
//   - mapleImpl: The central database structure implementing db.KVDB. It owns a
//     fixed set of shards and routes every key to exactly one of them.
//
//   - Shard: A partition of the key space backed by an xsync.MapOf. Shards operate
//     independently, so concurrent writes to different keys rarely contend.
//
// Internal Mechanisms:
//
//   - Sharding Strategy: Keys are distributed across shards in a two-step process:
//     1. The key bytes are hashed with FNV-1a, using a per-database random seed
//     2. The hash is right-shifted by 7 bits to use higher-quality bits for
//     distribution
//
//   - Value Ownership: Put stores a private copy of the value and never mutates it
//     afterwards. Get and Iterator.Value hand out fresh copies.
//
//   - Prefix Iteration: Since the shards are hash maps, there is no key order to walk.
//     NewPrefixIterator collects the matching entries of every shard and sorts them
//     by key. The collected slice is the snapshot the iterator reads from; writes
//     made after the iterator was created are not visible to it.
//
//   - Metrics: GetInfo samples up to 100 entries per shard into a histogram and
//     derives a size estimate from the mean entry size.
//
// Use the engines/pebble package when data has to survive a restart.
package maple
