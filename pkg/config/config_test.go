package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.dpm.sh/pkg/env"
	"src.dpm.sh/pkg/testutil"
)

func boolPtr(b bool) *bool { return &b }

func TestLoad(t *testing.T) {
	dir := testutil.TempDir(t)
	testutil.ApplyDirIn(testutil.Dir{
		"c.yaml": "basedir: project\ndebug: true\nhistory: false\n" +
			"variables:\n  region: eu\nprelude:\n  - (set-var \"x\" 1)\n",
		"c.toml": "basedir = \"/srv\"\ndb = \"/tmp/db\"\nlog = \"/tmp/log\"\n" +
			"prelude = [\"(print 1)\"]\n[variables]\nregion = \"us\"\n",
		"empty.yml": "",
		"bad.yaml":  "nope: 1\n",
		"bad.toml":  "nope = 1\n",
		"c.json":    "{}",
	}, dir)

	tests := []struct {
		file string
		want *Config
	}{
		{"c.yaml", &Config{
			Basedir: filepath.Join(dir, "project"), Debug: true, History: boolPtr(false),
			Variables: map[string]string{"region": "eu"},
			Prelude:   []string{`(set-var "x" 1)`},
		}},
		{"c.toml", &Config{
			Basedir: "/srv", DB: "/tmp/db", Log: "/tmp/log",
			Variables: map[string]string{"region": "us"},
			Prelude:   []string{"(print 1)"},
		}},
		{"empty.yml", &Config{}},
	}
	for _, test := range tests {
		path := filepath.Join(dir, test.file)
		test.want.Path = path
		got, err := Load(path)
		if err != nil {
			t.Errorf("Load(%s) -> error %v", test.file, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Load(%s) (-want +got):\n%s", test.file, diff)
		}
	}

	for _, file := range []string{"bad.yaml", "bad.toml", "missing.yaml"} {
		if _, err := Load(filepath.Join(dir, file)); err == nil {
			t.Errorf("Load(%s) -> nil error", file)
		}
	}
	if _, err := Load(filepath.Join(dir, "c.json")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Load(c.json) -> %v, want ErrUnknownFormat", err)
	}
}

func TestHistoryEnabled(t *testing.T) {
	if !(&Config{}).HistoryEnabled() {
		t.Errorf("history disabled by default")
	}
	if (&Config{History: boolPtr(false)}).HistoryEnabled() {
		t.Errorf("history: false not respected")
	}
}

func TestFind(t *testing.T) {
	home := testutil.TempHome(t)
	testutil.Unsetenv(t, env.DPM_CONFIG)
	testutil.Unsetenv(t, env.XDG_CONFIG_HOME)

	if p, err := Find(); p != "" || err != nil {
		t.Errorf("Find with no file -> %q, %v", p, err)
	}
	c, err := LoadDefault()
	if err != nil || c.Path != "" {
		t.Errorf("LoadDefault with no file -> %+v, %v", c, err)
	}

	testutil.ApplyDirIn(testutil.Dir{
		".config": testutil.Dir{"dpm": testutil.Dir{"config.toml": "debug = true\n"}},
	}, home)
	want := filepath.Join(home, ".config", "dpm", "config.toml")
	if p, _ := Find(); p != want {
		t.Errorf("Find -> %q, want %q", p, want)
	}
	if c, err := LoadDefault(); err != nil || !c.Debug {
		t.Errorf("LoadDefault -> %+v, %v", c, err)
	}

	xdg := testutil.TempDir(t)
	testutil.Setenv(t, env.XDG_CONFIG_HOME, xdg)
	testutil.ApplyDirIn(testutil.Dir{"dpm": testutil.Dir{"config.yml": "debug: true\n"}}, xdg)
	if p, _ := Find(); p != filepath.Join(xdg, "dpm", "config.yml") {
		t.Errorf("Find with XDG_CONFIG_HOME -> %q", p)
	}

	testutil.Setenv(t, env.DPM_CONFIG, "/etc/dpm.yaml")
	if p, _ := Find(); p != "/etc/dpm.yaml" {
		t.Errorf("Find with DPM_CONFIG -> %q", p)
	}
}

func TestPaths(t *testing.T) {
	home := testutil.TempHome(t)
	testutil.Unsetenv(t, env.XDG_CONFIG_HOME)
	testutil.Unsetenv(t, env.XDG_DATA_HOME)
	testutil.Unsetenv(t, env.DPM_DB)

	check := func(name string, f func() (string, error), want string) {
		t.Helper()
		if got, err := f(); got != want || err != nil {
			t.Errorf("%s -> %q, %v, want %q", name, got, err, want)
		}
	}
	check("RCPath", RCPath, filepath.Join(home, ".config", "dpm", "rc.dpm"))
	check("DBPath", DBPath, filepath.Join(home, ".local", "share", "dpm", "db.bolt"))

	testutil.Setenv(t, env.XDG_DATA_HOME, "/data")
	check("DataHome", DataHome, filepath.Join("/data", "dpm"))
	testutil.Setenv(t, env.DPM_DB, "/db")
	check("DBPath", DBPath, "/db")
}
