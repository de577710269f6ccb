// Package runtime provides the runtime-paths command, which reports the files
// the running session uses.
package runtime

import (
	"os"

	"src.dpm.sh/pkg/eval"
	"src.dpm.sh/pkg/eval/vals"
)

var osExecutable = os.Executable

// Paths are the files of the running session. Empty fields are reported as
// #nil.
type Paths struct {
	// Config is the configuration file that was loaded.
	Config string
	// RC is the rc file evaluated before line mode.
	RC string
	// DB is the store database.
	DB string
}

// Commands returns the runtime commands.
func Commands(p Paths) []eval.Command {
	return []eval.Command{
		eval.NewFunc("runtime-paths", "List the executable, configuration, rc and store paths of the session",
			func(args []vals.Value, _ *eval.Context) (vals.Value, error) {
				if err := eval.NoArgs("runtime-paths", args); err != nil {
					return nil, err
				}
				dpmPath, err := osExecutable()
				if err != nil {
					dpmPath = ""
				}
				return vals.MakeList(
					pair("dpm-path", dpmPath),
					pair("config-path", p.Config),
					pair("rc-path", p.RC),
					pair("db-path", p.DB),
				), nil
			}).
			WithHelp("(runtime-paths)",
				"  (runtime-paths)  ; Returns ((\"dpm-path\" \"/usr/bin/dpm\") (\"config-path\" #nil) ...)").
			WithTag(eval.TagSystem),
	}
}

func pair(name, path string) vals.Value {
	return vals.MakeList(vals.Str(name), nonEmptyOrNil(path))
}

func nonEmptyOrNil(s string) vals.Value {
	if s == "" {
		return vals.Nil
	}
	return vals.Str(s)
}
