// Package testutil contains helpers shared by the tests of dpm packages:
// temporary directories and homes, environment variables and package-level
// variables that are restored when a test finishes.
package testutil

import "os"

// Cleanuper is the subset of [testing.TB] the helpers need.
type Cleanuper interface {
	Cleanup(func())
}

// Set sets *p to v until the test finishes.
func Set[T any](c Cleanuper, p *T, v T) {
	old := *p
	*p = v
	c.Cleanup(func() { *p = old })
}

// Setenv sets an environment variable until the test finishes, and returns
// value.
func Setenv(c Cleanuper, name, value string) string {
	restoreEnv(c, name)
	os.Setenv(name, value)
	return value
}

// Unsetenv unsets an environment variable until the test finishes.
func Unsetenv(c Cleanuper, name string) {
	restoreEnv(c, name)
	os.Unsetenv(name)
}

func restoreEnv(c Cleanuper, name string) {
	if old, ok := os.LookupEnv(name); ok {
		c.Cleanup(func() { os.Setenv(name, old) })
	} else {
		c.Cleanup(func() { os.Unsetenv(name) })
	}
}
