// Package db provides a standardized interface for ordered key-value storage engines.
// It defines the KVDB interface that the typed persistence layer (lib/typeddb) is built
// on, so that engines can be swapped without touching callers.
//
// The package focuses on:
//   - A unified interface for byte-oriented put/get/delete operations
//   - Forward prefix iteration in lexicographic key order
//   - Feature discovery through capability flags
//   - Comprehensive metadata reporting
//
// Key Components:
//
//   - KVDB Interface: The core interface that all engines must satisfy.
//     It provides Put, Get, Delete and NewPrefixIterator, metadata retrieval (GetInfo)
//     and Close.
//
//   - Iterator Interface: A forward-only cursor (Next, Key, Value, Error, Close) over
//     the entries sharing a prefix. Iterators read from a snapshot taken at creation,
//     return entries in ascending byte order of the full key and may be closed
//     before they are exhausted.
//
//   - Feature Flags: The Feature type defines capability flags that implementations
//     can advertise through the SupportsFeature method (e.g. FeatureDurable is only
//     set by engines that persist to disk).
//
//   - Implementation Identifiers: The Implementation type provides string constants
//     for the available engines ("pebble", "maple").
//
//   - Database Information: The DatabaseInfo structure provides standardized
//     reporting on database state, including an estimated size, implementation type,
//     and implementation-specific metadata.
//
// Note on Ownership:
//   - Slices passed to Put are not retained by the engine after the call returns.
//   - Slices returned by Get, Iterator.Key and Iterator.Value are copies and belong
//     to the caller.
//
// Related Packages:
//
// The engines/pebble package provides the durable implementation on top of
// CockroachDB's Pebble LSM engine. The engines/maple package provides a sharded
// in-memory implementation that is useful for tests and development.
//
// The testing package (github.com/ValentinKolb/tKV/lib/db/testing) provides
// standardized tests and benchmarks for implementations of the KVDB interface.
//   - RunKVDBTests: Runs a standardized test suite to validate implementations
//   - RunKVDBBenchmarks: Provides performance benchmarks for comparing implementations
package db
