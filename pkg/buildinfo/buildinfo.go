// Package buildinfo contains build information.
//
// Some of the exposed information may be specified when compiling dpm:
//
//   - -ldflags '-X src.dpm.sh/pkg/buildinfo.VCSOverride=...' overrides the
//     VCS part of a development version.
//   - -ldflags '-X src.dpm.sh/pkg/buildinfo.BuildVariant=...' names the
//     packager of the build.
package buildinfo

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"src.dpm.sh/pkg/prog"
)

// VersionBase is the version of dpm without any suffix. On development
// commits, it identifies the next release.
const VersionBase = "0.3.0"

// IsRelease identifies whether this is a released version.
const IsRelease = false

// VCSOverride may be set during compilation to override the VCS part of the
// version. It should have the format "<timestamp>-<commit hash>".
var VCSOverride string

// BuildVariant may be set during compilation to identify a particular build.
var BuildVariant string

// Type contains all the build information fields.
type Type struct {
	Version      string `json:"version"`
	GoVersion    string `json:"goversion"`
	BuildVariant string `json:"buildvariant"`
}

// Value contains all the build information.
var Value = Type{
	Version:      addVariant(devVersionIfNotRelease(), BuildVariant),
	GoVersion:    runtime.Version(),
	BuildVariant: BuildVariant,
}

func devVersionIfNotRelease() string {
	if IsRelease {
		return VersionBase
	}
	return devVersion(VersionBase, VCSOverride, debug.ReadBuildInfo)
}

func addVariant(version, variant string) string {
	if variant == "" {
		return version
	}
	return version + "+" + variant
}

func devVersion(next, vcsOverride string, f func() (*debug.BuildInfo, bool)) string {
	if vcsOverride != "" {
		return next + "-dev.0." + vcsOverride
	}
	fallback := next + "-dev.unknown"
	bi, ok := f()
	if !ok {
		return fallback
	}
	// If the main module's version is known, use it, but without the "v"
	// prefix.
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		return strings.TrimPrefix(v, "v")
	}
	// Otherwise, try to build a pseudo-version from VCS information.
	var revision, timestamp, modified string
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.time":
			timestamp = setting.Value
		case "vcs.modified":
			modified = setting.Value
		}
	}
	if revision == "" {
		return fallback
	}
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return fallback
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	version := next + "-dev.0." + t.UTC().Format("20060102150405") + "-" + revision
	if modified == "true" {
		version += "-dirty"
	}
	return version
}

// Program is the buildinfo subprogram.
type Program struct {
	version, buildinfo bool
	json               *bool
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.version, "version", false,
		"show version and quit")
	fs.BoolVar(&p.buildinfo, "buildinfo", false,
		"show build info and quit")
	p.json = fs.JSON()
}

func (p *Program) Run(fds [3]*os.File, _ []string) error {
	switch {
	case p.buildinfo:
		if *p.json {
			fmt.Fprintln(fds[1], mustToJSON(Value))
		} else {
			fmt.Fprintln(fds[1], "Version:", Value.Version)
			fmt.Fprintln(fds[1], "Go version:", Value.GoVersion)
			if Value.BuildVariant != "" {
				fmt.Fprintln(fds[1], "Build variant:", Value.BuildVariant)
			}
		}
	case p.version:
		if *p.json {
			fmt.Fprintln(fds[1], mustToJSON(Value.Version))
		} else {
			fmt.Fprintln(fds[1], Value.Version)
		}
	default:
		return prog.ErrNotSuitable
	}
	return nil
}

func mustToJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
