// Package fsutil provides filesystem utilities used by dpm commands. Paths
// given to commands are interpreted relative to the session's base directory
// through Resolve.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"src.dpm.sh/pkg/glob"
)

// ErrNotFound is returned by FindUp when no ancestor contains the target.
var ErrNotFound = errors.New("not found in any parent directory")

// Resolve interprets path relative to basedir. Absolute paths are returned
// cleaned, and a leading "~" or "~/" is expanded to the home directory of the
// current user.
func Resolve(basedir, path string) string {
	if path == "~" || strings.HasPrefix(path, "~"+string(filepath.Separator)) || strings.HasPrefix(path, "~/") {
		if home, err := GetHome(""); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(basedir, path)
}

// ReadFile reads the whole content of a file relative to basedir.
func ReadFile(basedir, path string) (string, error) {
	bs, err := os.ReadFile(Resolve(basedir, path))
	return string(bs), err
}

// WriteFile writes content to a file relative to basedir, creating or
// truncating it. It returns the number of bytes written.
func WriteFile(basedir, path, content string) (int, error) {
	err := os.WriteFile(Resolve(basedir, path), []byte(content), 0644)
	if err != nil {
		return 0, err
	}
	return len(content), nil
}

// CopyFile copies a regular file and returns the number of bytes copied. The
// destination keeps the permission bits of the source.
func CopyFile(src, dst string) (int64, error) {
	info, err := os.Stat(src)
	if err != nil {
		return 0, err
	}
	if !info.Mode().IsRegular() {
		return 0, &fs.PathError{Op: "copy", Path: src, Err: errors.New("not a regular file")}
	}
	bs, err := os.ReadFile(src)
	if err != nil {
		return 0, err
	}
	err = os.WriteFile(dst, bs, info.Mode().Perm())
	if err != nil {
		return 0, err
	}
	return int64(len(bs)), nil
}

// Glob returns the names of regular files in dir whose name matches a
// wildcard pattern, in lexical order. Symlinks to regular files are included.
func Glob(dir, pattern string) ([]string, error) {
	p := glob.Parse(pattern)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if !p.Match(name) {
			continue
		}
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// FindUp searches start and its ancestors for a directory containing an entry
// named target. It returns that directory.
func FindUp(start, target string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Lstat(filepath.Join(dir, target)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%q %w", target, ErrNotFound)
		}
		dir = parent
	}
}

// Exists reports whether a file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path refers to a directory, following symlinks.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsRegular reports whether path refers to a regular file, following symlinks.
func IsRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
