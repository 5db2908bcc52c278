package testing

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/ValentinKolb/tKV/lib/db"
)

// RunKVDBBenchmarks runs all benchmarks for a key-value database implementations
func RunKVDBBenchmarks(b *testing.B, name string, factory DBFactory) {

	b.Run("Put", func(b *testing.B) {
		benchmarkPut(b, factory())
	})

	b.Run("PutExisting", func(b *testing.B) {
		benchmarkPutExisting(b, factory())
	})

	b.Run("Get", func(b *testing.B) {
		benchmarkGet(b, factory())
	})

	b.Run("PrefixScan", func(b *testing.B) {
		benchmarkPrefixScan(b, factory())
	})

	b.Run("MixedUsage", func(b *testing.B) {
		benchmarkMixedUsage(b, factory())
	})
}

// --------------------------------------------------------------------------
// Benchmark functions
// --------------------------------------------------------------------------

// Benchmark for Put operation
func benchmarkPut(b *testing.B, database db.KVDB) {

	b.Cleanup(func() {
		database.Close()
	})

	requireFeature(b, database, db.FeaturePut)

	value := []byte("test-value")

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			key := []byte(fmt.Sprintf("test-key-%p-%d", pb, counter))
			_ = database.Put(key, value)
			counter++
		}
	})
}

// Benchmark for overwriting a small set of keys
func benchmarkPutExisting(b *testing.B, database db.KVDB) {

	b.Cleanup(func() {
		database.Close()
	})

	requireFeature(b, database, db.FeaturePut)

	numKeys := 100
	value := []byte("test-value")

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			key := []byte(fmt.Sprintf("test-key-%d", counter%numKeys))
			_ = database.Put(key, value)
			counter++
		}
	})
}

// Benchmark for Get operation
func benchmarkGet(b *testing.B, database db.KVDB) {

	b.Cleanup(func() {
		database.Close()
	})

	requireFeature(b, database, db.FeaturePut|db.FeatureGet)

	// Prepare data
	numKeys := 10000
	for i := 0; i < numKeys; i++ {
		key := []byte(fmt.Sprintf("test-key-%d", i))
		value := []byte(fmt.Sprintf("test-value-%d", i))
		_ = database.Put(key, value)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			key := []byte(fmt.Sprintf("test-key-%d", counter%numKeys))
			_, _, _ = database.Get(key)
			counter++
		}
	})
}

// Benchmark for scanning a prefix with 100 entries
func benchmarkPrefixScan(b *testing.B, database db.KVDB) {

	b.Cleanup(func() {
		database.Close()
	})

	requireFeature(b, database, db.FeaturePut|db.FeaturePrefixScan)

	// Prepare data: 10 prefixes with 100 keys each
	for p := 0; p < 10; p++ {
		for i := 0; i < 100; i++ {
			key := []byte(fmt.Sprintf("prefix-%d/key-%03d", p, i))
			_ = database.Put(key, []byte("value"))
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		it, err := database.NewPrefixIterator([]byte(fmt.Sprintf("prefix-%d/", i%10)))
		if err != nil {
			b.Fatal(err)
		}
		for it.Next() {
			_ = it.Value()
		}
		_ = it.Close()
	}
}

// Benchmark for a mix of Put, Get and Delete operations
func benchmarkMixedUsage(b *testing.B, database db.KVDB) {
	b.Cleanup(func() {
		database.Close()
	})

	requireFeature(b, database, db.FeaturePut|db.FeatureGet|db.FeatureDelete)

	// Number of pre-populated keys
	numKeys := 10000
	if b.N < numKeys {
		numKeys = b.N
	}

	// Prepare initial data
	keys := make([][]byte, numKeys)
	for i := 0; i < numKeys; i++ {
		keys[i] = []byte(fmt.Sprintf("test-key-%d", i))
		_ = database.Put(keys[i], []byte(fmt.Sprintf("test-value-%d", i)))
	}

	// Counter for atomic access
	var counter int64

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		// Local counter for each goroutine
		localCounter := 0

		for pb.Next() {
			idx := int(atomic.AddInt64(&counter, 1)-1) % numKeys
			key := keys[idx]

			switch localCounter % 4 {
			case 0, 1: // Get
				_, _, _ = database.Get(key)
			case 2: // Put
				_ = database.Put(key, []byte(fmt.Sprintf("mixed-value-%d", localCounter)))
			case 3: // Delete
				_ = database.Delete(key)
			}

			localCounter++
		}
	})
}
