// Package must wraps fallible calls that tests and fixture setup expect to
// succeed, panicking instead of returning an error.
package must

import (
	"os"
	"path/filepath"
)

// OK panics if err is not nil.
func OK(err error) {
	if err != nil {
		panic(err)
	}
}

// OK1 returns v, or panics if err is not nil.
func OK1[T any](v T, err error) T {
	OK(err)
	return v
}

// OK2 is like OK1 for calls returning two values.
func OK2[T1, T2 any](v1 T1, v2 T2, err error) (T1, T2) {
	OK(err)
	return v1, v2
}

// Pipe wraps os.Pipe.
func Pipe() (*os.File, *os.File) {
	return OK2(os.Pipe())
}

// ReadFileString reads a whole file as a string.
func ReadFileString(fname string) string {
	return string(OK1(os.ReadFile(fname)))
}

// MkdirAll creates each of the directories with their missing ancestors.
func MkdirAll(names ...string) {
	for _, name := range names {
		OK(os.MkdirAll(name, 0700))
	}
}

// WriteFile writes data to a file, creating its missing ancestor
// directories.
func WriteFile(filename, data string) {
	MkdirAll(filepath.Dir(filename))
	OK(os.WriteFile(filename, []byte(data), 0600))
}
