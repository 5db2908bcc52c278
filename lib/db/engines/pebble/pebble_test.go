package pebble

import (
	"path/filepath"
	"testing"

	"github.com/ValentinKolb/tKV/lib/db"
	dbtesting "github.com/ValentinKolb/tKV/lib/db/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTemp opens pebble in a fresh temporary directory. The database is closed
// when the test finishes, Close is idempotent so tests may close it earlier.
func openTemp(t testing.TB, opts *Options) db.KVDB {
	database, err := Open(filepath.Join(t.TempDir(), "pebble"), opts)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, database.Close())
	})
	return database
}

func Test(t *testing.T) {
	dbtesting.RunKVDBTests(t, "PebbleDB", func() db.KVDB {
		return openTemp(t, &Options{Sync: false})
	})
}

func Benchmark(b *testing.B) {
	dbtesting.RunKVDBBenchmarks(b, "PebbleDB", func() db.KVDB {
		return openTemp(b, &Options{Sync: false})
	})
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pebble")

	first, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, first.Put([]byte("persisted"), []byte("yes")))
	require.NoError(t, first.Close())

	second, err := Open(path, nil)
	require.NoError(t, err)
	defer second.Close()

	v, ok, err := second.Get([]byte("persisted"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("yes"), v)
}

func TestGetInfo(t *testing.T) {
	database := openTemp(t, nil)
	defer database.Close()

	require.NoError(t, database.Put([]byte("k"), []byte("v")))

	info := database.GetInfo()
	assert.Equal(t, db.ImplPebble, info.DbType)
	assert.Contains(t, info.SupportedFeatures, db.FeatureDurable)
	assert.True(t, database.SupportsFeature(db.FeatureDurable|db.FeaturePrefixScan))
}

func TestSuiteDatabasesAreClosed(t *testing.T) {
	var opened []db.KVDB
	t.Run("open", func(t *testing.T) {
		opened = append(opened, openTemp(t, &Options{Sync: false}))
	})

	require.Len(t, opened, 1)
	_, _, err := opened[0].Get([]byte("k"))
	assert.ErrorContains(t, err, "is closed")
}

func TestCloseIsIdempotent(t *testing.T) {
	database := openTemp(t, nil)
	require.NoError(t, database.Close())
	assert.NoError(t, database.Close())

	assert.ErrorContains(t, database.Put([]byte("k"), []byte("v")), "is closed")
	_, _, err := database.Get([]byte("k"))
	assert.Error(t, err)
	_, err = database.NewPrefixIterator(nil)
	assert.Error(t, err)
}
