package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixUpperBound(t *testing.T) {
	tests := []struct {
		name   string
		prefix []byte
		want   []byte
	}{
		{"empty", nil, nil},
		{"simple", []byte("ab"), []byte("ac")},
		{"trailing 0xff", []byte{0x01, 0xff}, []byte{0x02}},
		{"all 0xff", []byte{0xff, 0xff}, nil},
		{"zero byte", []byte{0x00}, []byte{0x01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PrefixUpperBound(tt.prefix))
		})
	}
}

func TestPrefixUpperBoundDoesNotModifyInput(t *testing.T) {
	prefix := []byte("ab")
	_ = PrefixUpperBound(prefix)
	assert.Equal(t, []byte("ab"), prefix)
}

func TestFeatureString(t *testing.T) {
	assert.Equal(t, "PrefixScan", FeaturePrefixScan.String())
	assert.Equal(t, "Unknown", (FeaturePut | FeatureGet).String())
}
