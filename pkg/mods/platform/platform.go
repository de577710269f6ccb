// Package platform provides commands that describe the platform dpm is
// running on, such as the OS name and CPU architecture.
package platform

import (
	"os"
	"runtime"
	"strings"

	"src.dpm.sh/pkg/eval"
	"src.dpm.sh/pkg/eval/errs"
	"src.dpm.sh/pkg/eval/vals"
)

var osHostname = os.Hostname // to allow mocking in unit tests

const (
	isWindows = runtime.GOOS == "windows"
	isUnix    = runtime.GOOS != "windows" && runtime.GOOS != "plan9" && runtime.GOOS != "js"
)

// Commands returns the platform commands.
func Commands() []eval.Command {
	return []eval.Command{
		eval.NewFunc("platform-arch", "Get the CPU architecture, as in Go's GOARCH", constant(vals.Str(runtime.GOARCH))).
			WithHelp("(platform-arch)", "  (platform-arch)  ; Returns \"amd64\", \"arm64\", ...").
			WithTag(eval.TagSystem),
		eval.NewFunc("platform-os", "Get the operating system name, as in Go's GOOS", constant(vals.Str(runtime.GOOS))).
			WithHelp("(platform-os)", "  (platform-os)  ; Returns \"linux\", \"darwin\", \"windows\", ...").
			WithTag(eval.TagSystem),
		eval.NewFunc("platform-is-unix", "Check whether the platform is Unix-like", constant(vals.Bool(isUnix))).
			WithHelp("(platform-is-unix)", "  (platform-is-unix)  ; Returns #t on Linux and macOS").
			WithTag(eval.TagSystem),
		eval.NewFunc("platform-is-windows", "Check whether the platform is Windows", constant(vals.Bool(isWindows))).
			WithHelp("(platform-is-windows)", "  (platform-is-windows)").
			WithTag(eval.TagSystem),
		eval.NewFunc("hostname", "Get the hostname of the system", hostname).
			WithHelp("(hostname [strip-domain])",
				"  (hostname)     ; Returns \"lothlorien.example.com\"\n"+
					"  (hostname #t)  ; Returns \"lothlorien\"").
			WithTag(eval.TagSystem),
	}
}

func constant(v vals.Value) func([]vals.Value, *eval.Context) (vals.Value, error) {
	return func(args []vals.Value, _ *eval.Context) (vals.Value, error) {
		if err := errs.CheckArity("arguments", 0, 0, len(args)); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// hostname outputs the hostname. With a truthy argument, the part after the
// first dot is stripped.
func hostname(args []vals.Value, _ *eval.Context) (vals.Value, error) {
	if err := errs.CheckArity("arguments to hostname", 0, 1, len(args)); err != nil {
		return nil, err
	}
	name, err := osHostname()
	if err != nil {
		return nil, err
	}
	if len(args) == 1 && vals.Truthy(args[0]) {
		name, _, _ = strings.Cut(name, ".")
	}
	return vals.Str(name), nil
}
