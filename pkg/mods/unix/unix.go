//go:build unix

// Package unix provides commands that deal with features unique to Unix-like
// operating systems. On other platforms, Commands returns nil.
package unix

import (
	"golang.org/x/sys/unix"

	"src.dpm.sh/pkg/eval"
	"src.dpm.sh/pkg/eval/vals"
)

// ExposeUnixCommands indicates whether this package provides any commands.
const ExposeUnixCommands = true

// Commands returns the Unix commands.
func Commands() []eval.Command {
	return []eval.Command{
		eval.NewFunc("host-ids", "Get the user and group IDs of the dpm process", hostIDs).
			WithHelp("(host-ids)",
				"  (host-ids)  ; Returns (uid gid euid egid), e.g. (1000 1000 1000 1000)").
			WithTag(eval.TagSystem),
		eval.NewFunc("umask", "Get or set the file mode creation mask", umask).
			WithHelp("(umask [mask])",
				"  (umask)         ; Returns the current mask, e.g. \"0o022\"\n"+
					"  (umask \"027\")   ; Strings are octal\n"+
					"  (umask 18)      ; Same as (umask \"022\")").
			WithTag(eval.TagSystem),
	}
}

func hostIDs(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
	if err := eval.NoArgs("host-ids", args); err != nil {
		return nil, err
	}
	uid, gid := unix.Getuid(), unix.Getgid()
	ctx.Debugf("host-ids", "uid=%d gid=%d", uid, gid)
	return vals.Ints(int64(uid), int64(gid), int64(unix.Geteuid()), int64(unix.Getegid())), nil
}
