// Package mods collects the command modules.
package mods

import (
	"src.dpm.sh/pkg/eval"
	"src.dpm.sh/pkg/mods/basedir"
	"src.dpm.sh/pkg/mods/file"
	"src.dpm.sh/pkg/mods/git"
	"src.dpm.sh/pkg/mods/hash"
	"src.dpm.sh/pkg/mods/math"
	"src.dpm.sh/pkg/mods/os"
	"src.dpm.sh/pkg/mods/path"
	"src.dpm.sh/pkg/mods/platform"
	"src.dpm.sh/pkg/mods/re"
	"src.dpm.sh/pkg/mods/runtime"
	"src.dpm.sh/pkg/mods/str"
	"src.dpm.sh/pkg/mods/unix"
	"src.dpm.sh/pkg/mods/vars"
	"src.dpm.sh/pkg/proc"
	"src.dpm.sh/pkg/store/storedefs"

	storemod "src.dpm.sh/pkg/mods/store"
)

// Services are the collaborators of the modules that need them. A nil Runner
// is replaced with proc.OS; the store commands are only added when Store is
// not nil.
type Services struct {
	Runner proc.Runner
	Store  storedefs.Store
	// Paths are reported by runtime-paths.
	Paths runtime.Paths
}

// AddTo registers the core commands and the commands of all modules in the
// registry.
func AddTo(r *eval.Registry, s Services) {
	if s.Runner == nil {
		s.Runner = proc.OS{}
	}
	r.RegisterAll(eval.Builtins()...)
	r.RegisterAll(vars.Commands()...)
	r.RegisterAll(basedir.Commands()...)
	r.RegisterAll(file.Commands()...)
	r.RegisterAll(path.Commands()...)
	r.RegisterAll(os.Commands(s.Runner)...)
	r.RegisterAll(platform.Commands()...)
	r.RegisterAll(math.Commands()...)
	r.RegisterAll(str.Commands()...)
	r.RegisterAll(re.Commands()...)
	r.RegisterAll(hash.Commands()...)
	r.RegisterAll(git.Commands()...)
	r.RegisterAll(runtime.Commands(s.Paths)...)
	if unix.ExposeUnixCommands {
		r.RegisterAll(unix.Commands()...)
	}
	if s.Store != nil {
		r.RegisterAll(storemod.Commands(s.Store)...)
	}
}
