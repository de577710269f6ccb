// Package basedir provides commands that manage the base directory, against
// which commands resolve relative paths.
package basedir

import (
	"errors"
	"fmt"
	"path/filepath"

	"src.dpm.sh/pkg/eval"
	"src.dpm.sh/pkg/eval/errs"
	"src.dpm.sh/pkg/eval/vals"
	"src.dpm.sh/pkg/fsutil"
)

// DefaultRootMarker is the entry basedir-root searches for when no target is
// given.
const DefaultRootMarker = ".git"

// Commands returns the base directory commands.
func Commands() []eval.Command {
	return []eval.Command{
		eval.NewFunc("basedir", "Set the base directory for subsequent operations", setBasedir).
			WithHelp("(basedir path)",
				"  (basedir \"/home/user/project\")  ; Set absolute path\n"+
					"  (basedir \"../project\")         ; Relative to the current base directory").
			WithTag(eval.TagCommands),
		eval.NewFunc("get-basedir", "Get the current base directory from the context", getBasedir).
			WithHelp("(get-basedir)",
				"  (get-basedir)                 ; Get the current base directory path").
			WithTag(eval.TagCommands),
		eval.NewFunc("basedir-root", "Find and set base directory by searching up the filesystem for a target file/folder", basedirRoot).
			WithHelp("(basedir-root [target])",
				"  (basedir-root)           ; Search for .git folder (default)\n"+
					"  (basedir-root \"package.json\") ; Search for package.json file\n"+
					"  (basedir-root \"src\")      ; Search for src folder").
			WithTag(eval.TagCommands),
	}
}

// Abs returns the base directory of the context as an absolute path.
func Abs(ctx *eval.Context) (string, error) {
	return filepath.Abs(ctx.Basedir())
}

func setBasedir(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
	ctx.Debugf("basedir", "executing basedir command")
	if err := errs.CheckArity("arguments to basedir", 1, 1, len(args)); err != nil {
		return nil, err
	}
	path, err := eval.StrArg("basedir", "path", args[0])
	if err != nil {
		return nil, err
	}
	dir, err := filepath.Abs(fsutil.Resolve(ctx.Basedir(), path))
	if err != nil {
		return nil, err
	}
	ctx.Debugf("basedir", "resolved base path: %s", dir)
	if !fsutil.Exists(dir) {
		return nil, fmt.Errorf("path does not exist: %s", dir)
	}
	if !fsutil.IsDir(dir) {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}
	ctx.SetBasedir(dir)
	return vals.Str("Base directory set to: " + dir), nil
}

func getBasedir(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
	if err := eval.NoArgs("get-basedir", args); err != nil {
		return nil, err
	}
	ctx.Debugf("get-basedir", "returning basedir: %s", ctx.Basedir())
	return vals.Str(ctx.Basedir()), nil
}

func basedirRoot(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
	targets, err := eval.StrArgs("basedir-root", "target", 0, 1, args)
	if err != nil {
		return nil, err
	}
	target := DefaultRootMarker
	if len(targets) == 1 {
		target = targets[0]
	}
	start, err := Abs(ctx)
	if err != nil {
		return nil, err
	}
	ctx.Debugf("basedir", "searching for %s starting from %s", target, start)
	dir, err := fsutil.FindUp(start, target)
	if errors.Is(err, fsutil.ErrNotFound) {
		return nil, fmt.Errorf("target '%s' not found in any parent directory of %s", target, start)
	} else if err != nil {
		return nil, err
	}
	ctx.SetBasedir(dir)
	return vals.Str(fmt.Sprintf("Found '%s' at: %s\nBase directory set to: %s",
		target, filepath.Join(dir, target), dir)), nil
}
