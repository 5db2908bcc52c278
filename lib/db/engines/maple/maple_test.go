package maple

import (
	"fmt"
	"testing"

	"github.com/ValentinKolb/tKV/lib/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInfo(t *testing.T) {
	database := NewMapleDB(&DBOptions{NumShards: 4})
	defer database.Close()

	for i := 0; i < 50; i++ {
		require.NoError(t, database.Put([]byte(fmt.Sprintf("key-%02d", i)), []byte("0123456789")))
	}

	info := database.GetInfo()
	assert.Equal(t, db.ImplMaple, info.DbType)
	assert.Positive(t, info.SizeBytes)
	assert.NotContains(t, info.SupportedFeatures, db.FeatureDurable)
	assert.False(t, database.SupportsFeature(db.FeatureDurable))
	assert.True(t, database.SupportsFeature(db.FeaturePut|db.FeaturePrefixScan))
}

func TestClosedDB(t *testing.T) {
	database := NewMapleDB(nil)
	require.NoError(t, database.Put([]byte("k"), []byte("v")))
	require.NoError(t, database.Close())
	require.NoError(t, database.Close())

	assert.Error(t, database.Put([]byte("k"), []byte("v")))
	_, _, err := database.Get([]byte("k"))
	assert.Error(t, err)
	_, err = database.NewPrefixIterator(nil)
	assert.Error(t, err)
}

func TestShardPlacementIsStable(t *testing.T) {
	database := NewMapleDB(&DBOptions{NumShards: 8}).(*mapleImpl)
	defer database.Close()

	key := []byte("stable-key")
	assert.Same(t, database.shardFor(key), database.shardFor(key))
}
