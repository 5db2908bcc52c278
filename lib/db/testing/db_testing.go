package testing

import (
	"bytes"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ValentinKolb/tKV/lib/db"
)

// DBFactory is a function that creates a new instance of a KVDB implementation
type DBFactory func() db.KVDB

// RunKVDBTests runs a comprehensive test suite for a KVDB implementation.
func RunKVDBTests(t *testing.T, name string, factory DBFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Put&Get", func(t *testing.T) {
			testPutGet(t, factory())
		})

		t.Run("Delete", func(t *testing.T) {
			testDelete(t, factory())
		})

		t.Run("EdgeCases", func(t *testing.T) {
			testEdgeCases(t, factory())
		})

		t.Run("PrefixScanOrder", func(t *testing.T) {
			testPrefixScanOrder(t, factory())
		})

		t.Run("PrefixScanBounds", func(t *testing.T) {
			testPrefixScanBounds(t, factory())
		})

		t.Run("PrefixScanSnapshot", func(t *testing.T) {
			testPrefixScanSnapshot(t, factory())
		})

		t.Run("PrefixScanEarlyClose", func(t *testing.T) {
			testPrefixScanEarlyClose(t, factory())
		})

		t.Run("RealisticUsage", func(t *testing.T) {
			testRealisticUsage(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// Checks if the database supports the specified feature
// Skip the test if it is not supported
func requireFeature(t testing.TB, database db.KVDB, feature db.Feature) {
	if !database.SupportsFeature(feature) {
		t.Skip()
	}
}

// collect drains an iterator into a list of keys and values
func collect(t *testing.T, it db.Iterator) (keys []string, values [][]byte) {
	t.Helper()
	defer it.Close()
	for it.Next() {
		keys = append(keys, string(it.Key()))
		values = append(values, it.Value())
	}
	if err := it.Error(); err != nil {
		t.Fatalf("Iterator failed: %v", err)
	}
	return keys, values
}

func mustPut(t *testing.T, database db.KVDB, key string, value []byte) {
	t.Helper()
	if err := database.Put([]byte(key), value); err != nil {
		t.Fatalf("Put(%q) failed: %v", key, err)
	}
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testPutGet(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeaturePut|db.FeatureGet)

	testKey := []byte("test-key")
	testValue1 := []byte("test-value1")
	testValue2 := []byte("test-value2")

	mustPut(t, database, string(testKey), testValue1)

	result, exists, err := database.Get(testKey)
	if err != nil || !exists {
		t.Errorf("Expected key %s to exist after Put (err=%v)", testKey, err)
	}
	if !bytes.Equal(result, testValue1) {
		t.Errorf("Expected value %s, got %s", testValue1, result)
	}

	mustPut(t, database, string(testKey), testValue2)

	result, exists, err = database.Get(testKey)
	if err != nil || !exists {
		t.Errorf("Expected key %s to exist after overwrite (err=%v)", testKey, err)
	}
	if !bytes.Equal(result, testValue2) {
		t.Errorf("Expected value %s, got %s", testValue2, result)
	}

	result, exists, err = database.Get([]byte("nonexistent-key"))
	if err != nil {
		t.Errorf("Expected nonexistent key to return no error, got %v", err)
	}
	if exists || result != nil {
		t.Errorf("Expected nonexistent key to return exists=false")
	}

	// the returned value must be a copy
	retrievedValue, _, _ := database.Get(testKey)
	retrievedValue[0] = 'X'

	originalValue, _, _ := database.Get(testKey)
	if bytes.Equal(retrievedValue, originalValue) {
		t.Errorf("Get should return a copy, not a reference to the stored value")
	}

	// the stored value must not alias the input
	input := []byte("input-value")
	mustPut(t, database, "alias-key", input)
	input[0] = 'X'
	stored, _, _ := database.Get([]byte("alias-key"))
	if !bytes.Equal(stored, []byte("input-value")) {
		t.Errorf("Put should not retain the caller's slice, got %s", stored)
	}
}

func testDelete(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeaturePut|db.FeatureGet|db.FeatureDelete)

	mustPut(t, database, "delete-key", []byte("value"))

	if err := database.Delete([]byte("delete-key")); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, exists, _ := database.Get([]byte("delete-key")); exists {
		t.Errorf("Key should not exist after Delete")
	}

	if err := database.Delete([]byte("never-existed")); err != nil {
		t.Errorf("Deleting a missing key should not fail: %v", err)
	}

	mustPut(t, database, "delete-key", []byte("again"))
	if v, exists, _ := database.Get([]byte("delete-key")); !exists || string(v) != "again" {
		t.Errorf("Key should be writable after Delete, got %q exists=%v", v, exists)
	}
}

func testEdgeCases(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeaturePut|db.FeatureGet)

	// an empty value is a value, not an absent key
	mustPut(t, database, "empty-value-key", []byte{})

	result, exists, err := database.Get([]byte("empty-value-key"))
	if err != nil || !exists {
		t.Errorf("Key for empty value not found after Put (err=%v)", err)
	} else if len(result) != 0 {
		t.Errorf("Empty value mismatch: %v", result)
	}

	mustPut(t, database, "nil-value-key", nil)

	result, exists, err = database.Get([]byte("nil-value-key"))
	if err != nil || !exists {
		t.Errorf("Key for nil value not found after Put (err=%v)", err)
	} else if len(result) != 0 {
		t.Errorf("Nil value resulted in non-empty value: %v", result)
	}

	// binary keys including 0x00 and 0xff
	binaryKey := []byte{0x00, 0xff, 0x00, 0x01}
	if err := database.Put(binaryKey, []byte("binary")); err != nil {
		t.Fatalf("Put with binary key failed: %v", err)
	}
	result, exists, _ = database.Get(binaryKey)
	if !exists || string(result) != "binary" {
		t.Errorf("Binary key mismatch: %q exists=%v", result, exists)
	}

	if !t.Failed() {
		largeKey := string(bytes.Repeat([]byte{'k'}, 1000))
		mustPut(t, database, largeKey, []byte("value for large key"))

		result, exists, _ = database.Get([]byte(largeKey))
		if !exists || string(result) != "value for large key" {
			t.Errorf("Large key mismatch")
		}

		largeValue := make([]byte, 4*1024*1024)
		for i := range largeValue {
			largeValue[i] = byte(i % 256)
		}
		mustPut(t, database, "large-value-key", largeValue)

		result, exists, _ = database.Get([]byte("large-value-key"))
		if !exists || !bytes.Equal(result, largeValue) {
			t.Errorf("Large value mismatch: exists=%v size=%d", exists, len(result))
		}
	}
}

func testPrefixScanOrder(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeaturePut|db.FeaturePrefixScan)

	// insert out of order
	for _, suffix := range []string{"c", "a", "b"} {
		mustPut(t, database, "p/"+suffix, []byte("v"+suffix))
	}

	it, err := database.NewPrefixIterator([]byte("p/"))
	if err != nil {
		t.Fatalf("NewPrefixIterator failed: %v", err)
	}
	keys, values := collect(t, it)

	expected := []string{"p/a", "p/b", "p/c"}
	if fmt.Sprint(keys) != fmt.Sprint(expected) {
		t.Errorf("Expected keys %v, got %v", expected, keys)
	}
	for i, v := range values {
		if string(v) != "v"+expected[i][2:] {
			t.Errorf("Expected value for %s to be v%s, got %s", expected[i], expected[i][2:], v)
		}
	}

	// byte order, not numeric order
	for _, k := range []string{"n/10", "n/9", "n/1"} {
		mustPut(t, database, k, nil)
	}
	it, err = database.NewPrefixIterator([]byte("n/"))
	if err != nil {
		t.Fatalf("NewPrefixIterator failed: %v", err)
	}
	keys, _ = collect(t, it)
	if fmt.Sprint(keys) != fmt.Sprint([]string{"n/1", "n/10", "n/9"}) {
		t.Errorf("Expected byte ordered keys, got %v", keys)
	}
}

func testPrefixScanBounds(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeaturePut|db.FeaturePrefixScan)

	mustPut(t, database, "a", nil)
	mustPut(t, database, "ab", nil)
	mustPut(t, database, "abc", nil)
	mustPut(t, database, "abd", nil)
	mustPut(t, database, "ac", nil)
	mustPut(t, database, "b", nil)

	it, err := database.NewPrefixIterator([]byte("ab"))
	if err != nil {
		t.Fatalf("NewPrefixIterator failed: %v", err)
	}
	keys, _ := collect(t, it)
	if fmt.Sprint(keys) != fmt.Sprint([]string{"ab", "abc", "abd"}) {
		t.Errorf("Unexpected keys for prefix ab: %v", keys)
	}

	it, err = database.NewPrefixIterator([]byte("zz"))
	if err != nil {
		t.Fatalf("NewPrefixIterator failed: %v", err)
	}
	keys, _ = collect(t, it)
	if len(keys) != 0 {
		t.Errorf("Expected no keys for unused prefix, got %v", keys)
	}

	it, err = database.NewPrefixIterator(nil)
	if err != nil {
		t.Fatalf("NewPrefixIterator failed: %v", err)
	}
	keys, _ = collect(t, it)
	if len(keys) != 6 {
		t.Errorf("Expected the empty prefix to match all 6 keys, got %v", keys)
	}

	// prefixes ending in 0xff have no simple successor
	ffPrefix := []byte{0x01, 0xff}
	_ = database.Put(append(append([]byte{}, ffPrefix...), 0x00), nil)
	_ = database.Put(append(append([]byte{}, ffPrefix...), 0xff), nil)
	_ = database.Put([]byte{0x02}, nil)

	it, err = database.NewPrefixIterator(ffPrefix)
	if err != nil {
		t.Fatalf("NewPrefixIterator failed: %v", err)
	}
	keys, _ = collect(t, it)
	if len(keys) != 2 {
		t.Errorf("Expected 2 keys under 0x01ff prefix, got %d", len(keys))
	}
}

func testPrefixScanSnapshot(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeaturePut|db.FeaturePrefixScan)

	mustPut(t, database, "s/1", []byte("old"))
	mustPut(t, database, "s/2", []byte("old"))

	it, err := database.NewPrefixIterator([]byte("s/"))
	if err != nil {
		t.Fatalf("NewPrefixIterator failed: %v", err)
	}

	// writes after creation must not be visible
	mustPut(t, database, "s/1", []byte("new"))
	mustPut(t, database, "s/3", []byte("new"))

	keys, values := collect(t, it)
	if fmt.Sprint(keys) != fmt.Sprint([]string{"s/1", "s/2"}) {
		t.Errorf("Iterator should not observe later writes, got keys %v", keys)
	}
	for _, v := range values {
		if string(v) != "old" {
			t.Errorf("Iterator should not observe later writes, got value %s", v)
		}
	}
}

func testPrefixScanEarlyClose(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeaturePut|db.FeaturePrefixScan)

	for i := 0; i < 100; i++ {
		mustPut(t, database, fmt.Sprintf("e/%03d", i), nil)
	}

	it, err := database.NewPrefixIterator([]byte("e/"))
	if err != nil {
		t.Fatalf("NewPrefixIterator failed: %v", err)
	}
	if !it.Next() || string(it.Key()) != "e/000" {
		t.Fatalf("Expected first key e/000")
	}
	if err := it.Close(); err != nil {
		t.Errorf("Close before exhaustion failed: %v", err)
	}
	if err := it.Close(); err != nil {
		t.Errorf("Second Close failed: %v", err)
	}
	if it.Next() {
		t.Errorf("Next after Close should return false")
	}

	// the database stays usable after abandoning an iterator
	mustPut(t, database, "e/after", []byte("ok"))
}

func testRealisticUsage(t *testing.T, database db.KVDB) {
	defer database.Close()

	requireFeature(t, database, db.FeaturePut|db.FeatureGet|db.FeatureDelete)

	numWorkers := 8
	opsPerWorker := 500

	var wg sync.WaitGroup
	wg.Add(numWorkers)

	var errorCount atomic.Int32

	for w := 0; w < numWorkers; w++ {
		go func(workerId int) {
			defer wg.Done()

			for i := 0; i < opsPerWorker; i++ {
				key := []byte(fmt.Sprintf("worker-%d/key-%d", workerId, i%50))
				hotKey := []byte(fmt.Sprintf("hot-key-%d", i%5))

				var err error
				switch i % 10 {
				case 0, 1, 2, 3, 4, 5:
					err = database.Put(key, []byte(fmt.Sprintf("value-%d", i)))
				case 6, 7:
					_, _, err = database.Get(key)
				case 8:
					err = database.Put(hotKey, []byte(fmt.Sprintf("w%d", workerId)))
				case 9:
					err = database.Delete(key)
				}
				if err != nil {
					errorCount.Add(1)
				}
			}
		}(w)
	}

	wg.Wait()

	if n := errorCount.Load(); n > 0 {
		t.Errorf("%d operations failed during concurrent usage", n)
	}

	// last writer wins on hot keys, any worker may be last
	for i := 0; i < 5; i++ {
		v, exists, err := database.Get([]byte(fmt.Sprintf("hot-key-%d", i)))
		if err != nil || !exists || len(v) < 2 || v[0] != 'w' {
			t.Errorf("Hot key %d has unexpected state: %q exists=%v err=%v", i, v, exists, err)
		}
	}
}
