package maple

import (
	"bytes"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/ValentinKolb/tKV/lib/db"
	"github.com/ValentinKolb/tKV/lib/db/engines/maple/internal"
	"github.com/cockroachdb/errors"
	gometrics "github.com/rcrowley/go-metrics"
)

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

const (
	samplesPerShard = 100  // entries per shard inspected by GetInfo
	histogramSize   = 1028 // reservoir size of the value size histogram
)

var errClosed = errors.New("maple: db is closed")

// --------------------------------------------------------------------------
// Core Maple database structure
// --------------------------------------------------------------------------

// mapleImpl implements an in-memory database with sharded data
type mapleImpl struct {
	numShards int               // Number of shards
	seed      uint64            // Seed for hash function
	shards    []*internal.Shard // Array of shards
	closed    atomic.Bool
}

// DBOptions configures the mapleImpl behavior during initialization
type DBOptions struct {
	NumShards int // Number of shards (0 = auto)
}

// DefaultOptions returns the default mapleImpl options
func DefaultOptions() *DBOptions {
	return &DBOptions{
		NumShards: runtime.NumCPU(), // Auto-determine based on CPU count
	}
}

// --------------------------------------------------------------------------
// Initialization and Setup
// --------------------------------------------------------------------------

// NewMapleDB creates a new MapleDB instance with the specified options (optional)
func NewMapleDB(opts *DBOptions) db.KVDB {

	// Generate default options if not provided
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.NumShards <= 0 {
		opts.NumShards = runtime.NumCPU()
	}

	shards := make([]*internal.Shard, opts.NumShards)
	for i := 0; i < opts.NumShards; i++ {
		shards[i] = internal.NewShard()
	}

	return &mapleImpl{
		numShards: opts.NumShards,
		seed:      internal.GenerateSeed(),
		shards:    shards,
	}
}

// shardFor returns the shard responsible for key
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (maple *mapleImpl) shardFor(key []byte) *internal.Shard {
	return internal.GetShard(internal.HashKey(key, maple.seed), maple.shards)
}

// --------------------------------------------------------------------------
// Core KVDB Interface Methods - Write Operations
// --------------------------------------------------------------------------

// Put stores a copy of value under key, overwriting any previous value.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (maple *mapleImpl) Put(key, value []byte) error {
	if maple.closed.Load() {
		return errClosed
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	maple.shardFor(key).Data.Store(string(key), stored)
	return nil
}

// Delete removes key. Missing keys are ignored.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (maple *mapleImpl) Delete(key []byte) error {
	if maple.closed.Load() {
		return errClosed
	}
	maple.shardFor(key).Data.Delete(string(key))
	return nil
}

// --------------------------------------------------------------------------
// Core KVDB Interface Methods - Read Operations
// --------------------------------------------------------------------------

// Get returns a copy of the value stored under key.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (maple *mapleImpl) Get(key []byte) ([]byte, bool, error) {
	if maple.closed.Load() {
		return nil, false, errClosed
	}
	val, ok := maple.shardFor(key).Data.Load(string(key))
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, true, nil
}

// NewPrefixIterator collects all entries starting with prefix from every shard and
// sorts them. The collected slice is the iterator's snapshot.
//
// Values are stored as immutable slices (Put always stores a fresh copy), so the
// snapshot can share them without copying until they are handed out.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (maple *mapleImpl) NewPrefixIterator(prefix []byte) (db.Iterator, error) {
	if maple.closed.Load() {
		return nil, errClosed
	}

	p := string(prefix)
	var entries []entry
	for _, shard := range maple.shards {
		shard.Data.Range(func(key string, value []byte) bool {
			if len(key) >= len(p) && key[:len(p)] == p {
				entries = append(entries, entry{key: key, value: value})
			}
			return true
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].key < entries[j].key
	})

	return &sliceIterator{entries: entries, pos: -1}, nil
}

// --------------------------------------------------------------------------
// Feature Support & Info
// --------------------------------------------------------------------------

func (maple *mapleImpl) SupportsFeature(feature db.Feature) bool {
	supported := db.FeaturePut | db.FeatureGet | db.FeatureDelete | db.FeaturePrefixScan
	return feature&supported == feature
}

// GetInfo estimates the database size from a sample of each shard.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (maple *mapleImpl) GetInfo() db.DatabaseInfo {
	histogram := gometrics.NewHistogram(gometrics.NewUniformSample(histogramSize))

	wg := sync.WaitGroup{}
	wg.Add(len(maple.shards))
	var entryCount atomic.Int64

	// concurrently collect samples from all shards
	for _, shard := range maple.shards {
		go func(s *internal.Shard) {
			defer wg.Done()
			count := 0
			s.Data.Range(func(key string, value []byte) bool {
				histogram.Update(int64(len(key) + len(value)))
				count++
				return count < samplesPerShard
			})
			entryCount.Add(int64(s.Data.Size()))
		}(shard)
	}
	wg.Wait()

	snapshot := histogram.Snapshot()
	total := entryCount.Load()

	meta := &struct {
		ShardCount   int     `json:"shard_count"`
		EntryCount   int64   `json:"entry_count"`
		MeanSize     float64 `json:"mean_entry_size"`
		MedianSize   float64 `json:"median_entry_size"`
		MaxSize      int64   `json:"max_entry_size"`
		SampledCount int64   `json:"sampled_count"`
		Info         string  `json:"info"`
	}{
		ShardCount:   len(maple.shards),
		EntryCount:   total,
		MeanSize:     snapshot.Mean(),
		MedianSize:   snapshot.Percentile(0.5),
		MaxSize:      snapshot.Max(),
		SampledCount: snapshot.Count(),
		Info:         "SizeBytes is estimated from a sample of entries.",
	}

	return db.DatabaseInfo{
		SizeBytes: int(snapshot.Mean() * float64(total)),
		DbType:    db.ImplMaple,
		SupportedFeatures: []db.Feature{
			db.FeaturePut, db.FeatureGet, db.FeatureDelete, db.FeaturePrefixScan,
		},
		Metadata: meta,
	}
}

// Close drops all data. Further operations fail.
func (maple *mapleImpl) Close() error {
	if !maple.closed.CompareAndSwap(false, true) {
		return nil
	}
	for _, shard := range maple.shards {
		shard.Data.Clear()
	}
	return nil
}

// --------------------------------------------------------------------------
// Iterator
// --------------------------------------------------------------------------

type entry struct {
	key   string
	value []byte
}

// sliceIterator iterates over a sorted snapshot of entries
type sliceIterator struct {
	entries []entry
	pos     int
}

func (it *sliceIterator) Next() bool {
	if it.pos >= len(it.entries) {
		return false
	}
	it.pos++
	return it.pos < len(it.entries)
}

func (it *sliceIterator) valid() bool {
	return it.pos >= 0 && it.pos < len(it.entries)
}

func (it *sliceIterator) Key() []byte {
	if !it.valid() {
		return nil
	}
	return []byte(it.entries[it.pos].key)
}

func (it *sliceIterator) Value() []byte {
	if !it.valid() {
		return nil
	}
	return bytes.Clone(it.entries[it.pos].value)
}

func (it *sliceIterator) Error() error {
	return nil
}

func (it *sliceIterator) Close() error {
	it.entries = nil
	it.pos = 0
	return nil
}
