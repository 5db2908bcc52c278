package kv

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/ValentinKolb/tKV/lib/typeddb"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testRoot     *cobra.Command
	testRootOnce sync.Once
)

// execute runs the kv command group with args. Flag values are reset to their
// defaults first, cobra keeps them between executions.
func execute(t *testing.T, args ...string) error {
	t.Helper()

	testRootOnce.Do(func() {
		testRoot = &cobra.Command{Use: "tkv", SilenceUsage: true, SilenceErrors: true}
		testRoot.AddCommand(KeyValueCommands)
	})

	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	KeyValueCommands.PersistentFlags().VisitAll(reset)
	for _, c := range KeyValueCommands.Commands() {
		c.Flags().VisitAll(reset)
	}

	// RunE errors skip the post run hook
	t.Cleanup(func() { _ = closeStore(nil, nil) })

	testRoot.SetArgs(append([]string{"kv"}, args...))
	return testRoot.Execute()
}

func TestPutGetDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")
	flags := []string{"--data-dir", dir, "--sync=false", "--prefix", "users/"}

	require.NoError(t, execute(t, append([]string{"put", "alice", "admin"}, flags...)...))
	require.NoError(t, execute(t, append([]string{"get", "alice"}, flags...)...))
	require.NoError(t, execute(t, append([]string{"scan", "--limit", "1"}, flags...)...))
	assert.Nil(t, store, "the store is closed after every command")

	database, err := typeddb.Open(dir)
	require.NoError(t, err)
	value, found, err := database.PrefixRetrieve([]byte("users/"), []byte("alice"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("admin"), value)
	require.NoError(t, database.Close())

	require.NoError(t, execute(t, append([]string{"del", "alice"}, flags...)...))

	database, err = typeddb.Open(dir)
	require.NoError(t, err)
	defer database.Close()
	_, found, err = database.PrefixRetrieve([]byte("users/"), []byte("alice"))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPutHex(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")

	require.NoError(t, execute(t, "put", "0x0001", "0xff", "--hex", "--prefix", "0x74", "--data-dir", dir, "--sync=false"))

	database, err := typeddb.Open(dir)
	require.NoError(t, err)
	defer database.Close()

	value, found, err := database.PrefixRetrieve([]byte("t"), []byte{0x00, 0x01})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte{0xff}, value)
}

func TestInvalidArguments(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")

	err := execute(t, "put", "k", "zz", "--hex", "--data-dir", dir)
	assert.ErrorContains(t, err, "invalid hex argument")

	err = execute(t, "get", "k", "--engine", "rocks", "--data-dir", dir)
	assert.ErrorContains(t, err, "invalid engine")

	err = execute(t, "get", "k", "--log-level", "loud", "--data-dir", dir)
	assert.ErrorContains(t, err, "invalid log level")

	err = execute(t, "get", "k", "--data-dir", filepath.Join(dir, "missing", "db"))
	assert.ErrorIs(t, err, typeddb.ErrInvalidPath)
}

func TestInfoAndStats(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")

	require.NoError(t, execute(t, "info", "--engine", "maple", "--data-dir", dir))
	require.NoError(t, execute(t, "stats", "--engine", "maple", "--data-dir", dir))
}
