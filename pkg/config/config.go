// Package config loads the dpm configuration file.
//
// The file is YAML or TOML, chosen by its extension. Values in the file are
// defaults: command-line flags override them.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"src.dpm.sh/pkg/fsutil"
	"src.dpm.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[config] ")

// Config is the content of a configuration file.
type Config struct {
	// Basedir is the initial base directory. Relative paths are resolved
	// against the directory of the configuration file.
	Basedir string `yaml:"basedir" toml:"basedir"`
	Debug   bool   `yaml:"debug" toml:"debug"`
	// History controls whether line mode records commands in the store. It
	// defaults to true.
	History *bool  `yaml:"history" toml:"history"`
	DB      string `yaml:"db" toml:"db"`
	Log     string `yaml:"log" toml:"log"`
	// Variables are set in the context before anything is evaluated.
	Variables map[string]string `yaml:"variables" toml:"variables"`
	// Prelude is a list of expressions evaluated before the driver runs.
	Prelude []string `yaml:"prelude" toml:"prelude"`

	// Path is the file the configuration was loaded from, empty for the
	// zero configuration.
	Path string `yaml:"-" toml:"-"`
}

// HistoryEnabled returns whether command history should be recorded.
func (c *Config) HistoryEnabled() bool {
	return c.History == nil || *c.History
}

// ErrUnknownFormat is returned by Load for files whose extension is neither
// YAML nor TOML.
var ErrUnknownFormat = errors.New("unknown config format")

// Load reads a configuration file.
func Load(path string) (*Config, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(bs))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && err != io.EOF {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	case ".toml":
		md, err := toml.Decode(string(bs), c)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
		}
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	c.Path = path
	if c.Basedir != "" {
		c.Basedir = fsutil.Resolve(filepath.Dir(path), c.Basedir)
	}
	logger.Printf("loaded %s", path)
	return c, nil
}
