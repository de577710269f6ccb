package config

import (
	"os"
	"path/filepath"

	"src.dpm.sh/pkg/env"
	"src.dpm.sh/pkg/fsutil"
)

var configNames = []string{"config.yaml", "config.yml", "config.toml"}

// ConfigHome returns the directory of dpm's configuration: $XDG_CONFIG_HOME/dpm
// or ~/.config/dpm.
func ConfigHome() (string, error) {
	return xdgHome(env.XDG_CONFIG_HOME, ".config")
}

// DataHome returns the directory of dpm's data: $XDG_DATA_HOME/dpm or
// ~/.local/share/dpm.
func DataHome() (string, error) {
	return xdgHome(env.XDG_DATA_HOME, filepath.Join(".local", "share"))
}

func xdgHome(envName, fallback string) (string, error) {
	if dir := os.Getenv(envName); dir != "" {
		return filepath.Join(dir, "dpm"), nil
	}
	home, err := fsutil.GetHome("")
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, "dpm"), nil
}

// Find returns the path of the configuration file: $DPM_CONFIG if set,
// otherwise the first of config.yaml, config.yml and config.toml that exists
// in ConfigHome. It returns "" when there is none.
func Find() (string, error) {
	if p := os.Getenv(env.DPM_CONFIG); p != "" {
		return p, nil
	}
	dir, err := ConfigHome()
	if err != nil {
		return "", err
	}
	for _, name := range configNames {
		p := filepath.Join(dir, name)
		if fsutil.IsRegular(p) {
			return p, nil
		}
	}
	return "", nil
}

// LoadDefault loads the file returned by Find, or returns the zero Config when
// there is no configuration file.
func LoadDefault() (*Config, error) {
	p, err := Find()
	if err != nil || p == "" {
		return &Config{}, err
	}
	return Load(p)
}

// RCPath returns the path of the rc file evaluated before line mode starts.
func RCPath() (string, error) {
	dir, err := ConfigHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "rc.dpm"), nil
}

// DBPath returns the path of the store database: $DPM_DB if set, otherwise
// db.bolt in DataHome.
func DBPath() (string, error) {
	if p := os.Getenv(env.DPM_DB); p != "" {
		return p, nil
	}
	dir, err := DataHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "db.bolt"), nil
}
