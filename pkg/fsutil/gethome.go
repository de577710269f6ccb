package fsutil

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// GetHome finds the home directory of a specified user. When given an empty
// string, it finds the home directory of the current user.
func GetHome(uname string) (string, error) {
	if uname == "" {
		return os.UserHomeDir()
	}
	u, err := user.Lookup(uname)
	if err != nil {
		return "", fmt.Errorf("can't resolve ~%s: %w", uname, err)
	}
	return strings.TrimRight(u.HomeDir, string(filepath.Separator)), nil
}
