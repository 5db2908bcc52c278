package typeddb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func canonicalTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func TestResolvePath(t *testing.T) {
	dir := canonicalTempDir(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "real"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(dir, "real"), filepath.Join(dir, "link")))

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"missing final component", filepath.Join(dir, "new"), filepath.Join(dir, "new")},
		{"existing final component", filepath.Join(dir, "real"), filepath.Join(dir, "real")},
		{"symlinked parent", filepath.Join(dir, "link", "db"), filepath.Join(dir, "real", "db")},
		{"dot segments", filepath.Join(dir, "real") + "/../new", filepath.Join(dir, "new")},
		{"trailing separator", filepath.Join(dir, "new") + string(filepath.Separator), filepath.Join(dir, "new")},
		{"dot dot", filepath.Join(dir, "real") + "/..", dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolvePathFinalSymlinkIsKept(t *testing.T) {
	dir := canonicalTempDir(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "real"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(dir, "real"), filepath.Join(dir, "link")))

	got, err := ResolvePath(filepath.Join(dir, "link"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "link"), got)
}

func TestResolvePathMissingParent(t *testing.T) {
	path := filepath.Join(canonicalTempDir(t), "missing", "db")

	_, err := ResolvePath(path)
	require.Error(t, err)

	var dbErr *Error
	require.True(t, errors.As(err, &dbErr))
	assert.Equal(t, ErrCodeInvalidPath, dbErr.Code)
	assert.Equal(t, path, dbErr.Path)
	assert.Contains(t, err.Error(), path)
}

func TestResolvePathParentIsFile(t *testing.T) {
	dir := canonicalTempDir(t)
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	// the parent exists, so resolution succeeds; opening is left to the engine
	got, err := ResolvePath(filepath.Join(file, "db"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(file, "db"), got)
}

func TestResolvePathDotDotAfterSymlink(t *testing.T) {
	dir := canonicalTempDir(t)
	inner := filepath.Join(dir, "deep", "inner")
	require.NoError(t, os.MkdirAll(inner, 0o755))
	require.NoError(t, os.Symlink(inner, filepath.Join(dir, "link")))

	// ".." is taken relative to the symlink target, not lexically
	got, err := ResolvePath(filepath.Join(dir, "link") + "/../db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "deep", "db"), got)
}

func TestResolvePathDotDotOverMissingDir(t *testing.T) {
	dir := canonicalTempDir(t)
	path := filepath.Join(dir, "missing") + "/../db"

	_, err := ResolvePath(path)
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalidPath, CodeOf(err))
	assert.Contains(t, err.Error(), path)
}

func TestResolvePathRelative(t *testing.T) {
	dir := canonicalTempDir(t)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	got, err := ResolvePath("db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "db"), got)

	got, err = ResolvePath("")
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}
