package shell

import (
	"fmt"
	"os"
	"path/filepath"

	"src.dpm.sh/pkg/config"
)

// Returns the rc path from -rc, or the default one. Failing to determine the
// default is reported as a warning.
func (p *Program) rcPath(fds [3]*os.File) string {
	if p.rc != "" {
		return p.rc
	}
	rc, err := config.RCPath()
	if err != nil {
		fmt.Fprintln(fds[2], "Warning:", err)
		return ""
	}
	return rc
}

// Returns the path of the store database, in order of precedence from -db,
// the config file, and the default path, creating its parent directory.
func dbPath(flag string, cfg *config.Config) (string, error) {
	db := flag
	if db == "" {
		db = cfg.DB
	}
	if db == "" {
		var err error
		db, err = config.DBPath()
		if err != nil {
			return "", err
		}
	}
	err := os.MkdirAll(filepath.Dir(db), 0700)
	if err != nil {
		return "", err
	}
	return db, nil
}
