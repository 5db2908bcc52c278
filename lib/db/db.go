package db

// --------------------------------------------------------------------------
// Helper Types
// --------------------------------------------------------------------------

type Implementation string

const (
	ImplPebble Implementation = "pebble"
	ImplMaple  Implementation = "maple"
)

// Feature represents database features as bit flags
type Feature uint64

const (
	FeaturePut        Feature = 1 << iota // Support for Put operations
	FeatureGet                            // Support for Get operations
	FeatureDelete                         // Support for Delete operations
	FeaturePrefixScan                     // Support for NewPrefixIterator
	FeatureDurable                        // Data survives a process restart
)

func (f Feature) String() string {
	switch f {
	case FeaturePut:
		return "Put"
	case FeatureGet:
		return "Get"
	case FeatureDelete:
		return "Delete"
	case FeaturePrefixScan:
		return "PrefixScan"
	case FeatureDurable:
		return "Durable"
	default:
		return "Unknown"
	}
}

type DatabaseInfo struct {
	SizeBytes         int            `json:"size_bytes"`
	DbType            Implementation `json:"db_type"`
	SupportedFeatures []Feature      `json:"supported_features"`
	Metadata          interface{}    `json:"metadata"`
}

// --------------------------------------------------------------------------
// Database Interface
// --------------------------------------------------------------------------

// KVDB defines an interface for ordered key-value storage engines.
// Keys and values are opaque byte strings, keys are ordered lexicographically.
// Implementations must be safe for concurrent use, a single Put or Get is atomic
// but there is no atomicity across calls.
type KVDB interface {

	// --------------------------------------------------------------------------
	// Write Operations
	// --------------------------------------------------------------------------

	// Put inserts or updates the value for key.
	// If the key already exists, the old value is overwritten.
	Put(key, value []byte) (err error)

	// Delete removes the entry for key. Deleting a missing key is not an error.
	Delete(key []byte) (err error)

	// --------------------------------------------------------------------------
	// Query Operations
	// --------------------------------------------------------------------------

	// Get retrieves the value for an exact key.
	// The boolean return value indicates whether a value for the key was found.
	// The returned slice is a copy owned by the caller.
	// A missing key is reported as (nil, false, nil), never as an error.
	Get(key []byte) (value []byte, loaded bool, err error)

	// NewPrefixIterator returns an iterator over all entries whose key starts with prefix,
	// in ascending byte order of the full key. The iterator reads from a snapshot taken
	// when it is created. An empty prefix iterates the whole keyspace.
	NewPrefixIterator(prefix []byte) (it Iterator, err error)

	// --------------------------------------------------------------------------
	// Feature Support
	// --------------------------------------------------------------------------

	// SupportsFeature checks if the database implementation supports the specified feature.
	// Multiple features can be checked at once using bitwise OR (|) operator.
	SupportsFeature(feature Feature) (ok bool)

	// GetInfo returns information about the database.
	GetInfo() (info DatabaseInfo)

	// Close closes the database.
	Close() (err error)
}

// Iterator is a forward-only cursor over a prefix range.
//
// Usage:
//
//	it, err := database.NewPrefixIterator(prefix)
//	if err != nil { ... }
//	defer it.Close()
//	for it.Next() {
//		use(it.Key(), it.Value())
//	}
//	if err := it.Error(); err != nil { ... }
type Iterator interface {
	// Next advances to the next entry. It returns false once the range is exhausted,
	// the iterator was closed or an error occurred.
	Next() bool
	// Key returns a copy of the current key.
	Key() []byte
	// Value returns a copy of the current value.
	Value() []byte
	// Error returns the first error encountered during iteration.
	Error() error
	// Close releases the iterator. It is safe to call Close more than once and
	// before the iterator is exhausted.
	Close() error
}

// PrefixUpperBound returns the smallest key that is greater than every key starting
// with prefix, or nil if no such key exists (empty prefix or all bytes 0xff).
func PrefixUpperBound(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
