package typeddb

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath canonicalizes the parent directory of path and re-appends the final
// path component. A path without a parent is resolved against the working directory.
// The final component does not have to exist, the parent does; otherwise an
// ErrCodeInvalidPath error carrying path is returned.
//
// The parent is resolved on the filesystem before anything is cleaned, so in
// "link/../db" the ".." applies to the target of link, and every directory named
// in the parent must exist. Paths ending in "." or ".." (and the root) have no final
// component to keep apart, they are canonicalized as a whole.
func ResolvePath(path string) (string, error) {
	sep := string(filepath.Separator)

	trimmed := strings.TrimRight(path, sep)
	switch {
	case path == "":
		trimmed = "."
	case trimmed == "":
		trimmed = sep
	}

	dir, base := filepath.Split(trimmed)
	if base == "" || base == "." || base == ".." {
		resolved, err := canonicalize(trimmed)
		if err != nil {
			return "", invalidPathError(path, err)
		}
		return resolved, nil
	}

	if dir == "" {
		dir = "."
	}
	parent, err := canonicalize(dir)
	if err != nil {
		return "", invalidPathError(path, err)
	}
	return filepath.Join(parent, base), nil
}

// canonicalize returns the absolute path of an existing file with all symlinks
// resolved. Relative paths are joined to the working directory without cleaning,
// filepath.EvalSymlinks then walks the components in order.
func canonicalize(path string) (string, error) {
	if !filepath.IsAbs(path) {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		path = wd + string(filepath.Separator) + path
	}
	return filepath.EvalSymlinks(path)
}
