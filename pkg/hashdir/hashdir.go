// Package hashdir computes content digests of directory trees.
package hashdir

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// ShortLen is the number of hex digits kept by Short.
const ShortLen = 8

// MD5 returns the hex MD5 digest of a directory tree. Every regular file under
// dir is hashed on its own; the hex digests, ordered by file path, are
// concatenated and hashed again. File names and empty directories do not
// contribute to the result other than through the ordering.
func MD5(dir string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", dir)
	}

	var paths []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	sort.Strings(paths)

	all := md5.New()
	for _, path := range paths {
		sum, err := fileMD5(path)
		if err != nil {
			return "", err
		}
		io.WriteString(all, sum)
	}
	return hex.EncodeToString(all.Sum(nil)), nil
}

// Short returns the abbreviated form of a digest.
func Short(sum string) string {
	if len(sum) <= ShortLen {
		return sum
	}
	return sum[:ShortLen]
}

func fileMD5(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
