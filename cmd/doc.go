// Package cmd implements the command-line interface of tKV. It provides a
// hierarchical command structure for working with a local store.
//
// The package is organized into several subpackages:
//
//   - kv: Commands for key-value operations (put, get, del, scan, info, stats, perf)
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// All settings can be given as flags or as environment variables with the prefix
// TKV_ (e.g. TKV_DATA_DIR=/var/lib/tkv). .env and .env.local files in the working
// directory are loaded as well.
//
// See tkv -help for a list of all commands.
package cmd
