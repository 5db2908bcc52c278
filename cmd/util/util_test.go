package util

import (
	"strings"
	"testing"

	"github.com/ValentinKolb/tKV/lib/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapString(t *testing.T) {
	text := strings.Repeat("word ", 30)
	for _, line := range strings.Split(WrapString(text), "\n") {
		assert.LessOrEqual(t, len(line), Wrap)
	}
	assert.Equal(t, "short text", WrapString("  short   text "))
}

func TestParseBytes(t *testing.T) {
	b, err := ParseBytes("abc", false)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), b)

	b, err = ParseBytes("0x01ff", true)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0xff}, b)

	b, err = ParseBytes("", true)
	require.NoError(t, err)
	assert.Empty(t, b)

	_, err = ParseBytes("zz", true)
	assert.ErrorContains(t, err, `invalid hex argument "zz"`)
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0x01ff", FormatBytes([]byte{0x01, 0xff}, true))
	assert.Equal(t, `"a\x00b"`, FormatBytes([]byte("a\x00b"), false))
	assert.Equal(t, `""`, FormatBytes(nil, false))
}

func TestGetConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	viper.Set("data-dir", t.TempDir())
	viper.Set("engine", "MAPLE")
	viper.Set("log-level", "debug")
	viper.Set("sync", false)

	conf, err := GetConfig()
	require.NoError(t, err)
	assert.Equal(t, common.EngineMaple, conf.Engine)
	assert.False(t, conf.Sync)

	database, err := OpenDB(conf)
	require.NoError(t, err)
	require.NoError(t, database.PrefixStore([]byte("p"), []byte("k"), []byte("v")))
	require.NoError(t, database.Close())

	viper.Set("engine", "rocks")
	_, err = GetConfig()
	assert.ErrorContains(t, err, "invalid engine: rocks")
}
