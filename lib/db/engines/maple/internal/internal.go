package internal

import (
	"crypto/rand"
	"encoding/binary"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

// --------------------------------------------------------------------------
// Shard Type (partition of the database)
// --------------------------------------------------------------------------

// Shard represents a partition of the database.
// Keys are the raw key bytes converted to a string, values are owned by the shard
// and never handed out without copying.
type Shard struct {
	Data *xsync.MapOf[string, []byte]
}

// NewShard creates a new empty shard
func NewShard() *Shard {
	return &Shard{
		Data: xsync.NewMapOf[string, []byte](),
	}
}

// GetShard returns the appropriate shard for a given key hash
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func GetShard[T any](hash uint64, shards []*T) *T {
	// Shift right by 7 bits to use higher-quality bits for distribution
	shiftedKey := hash >> 7
	shardPos := shiftedKey % uint64(len(shards))
	return shards[shardPos]
}

// --------------------------------------------------------------------------
// Hashing
// --------------------------------------------------------------------------

// GenerateSeed returns a random seed so that shard placement differs between instances
func GenerateSeed() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(b[:])
}

// HashKey hashes a key with FNV-1a, mixing the seed into the offset basis
func HashKey(key []byte, seed uint64) uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)

	hash := uint64(offset64) ^ seed
	for _, c := range key {
		hash ^= uint64(c)
		hash *= prime64
	}
	return hash
}
