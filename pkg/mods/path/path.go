// Package path provides commands for manipulating filesystem path names.
package path

import (
	"path/filepath"

	"src.dpm.sh/pkg/eval"
	"src.dpm.sh/pkg/eval/vals"
	"src.dpm.sh/pkg/fsutil"
)

// Commands returns the path commands.
func Commands() []eval.Command {
	return []eval.Command{
		eval.NewFunc("path-join", "Join path components together", join).
			WithHelp("(path-join base component1 component2 ...)",
				"  (path-join \"/home\" \"user\" \"documents\")  ; Returns /home/user/documents\n"+
					"  (path-join \"..\" \"project\" \"src\")  ; Returns ../project/src").
			WithTag(eval.TagSystem),
		pathFn("path-parent", "Get the parent directory of a path", parent,
			"  (path-parent \"/home/user/file.txt\")  ; Returns /home/user\n"+
				"  (path-parent \"/\")  ; Returns nil"),
		pathFn("path-filename", "Get the filename component of a path", filename,
			"  (path-filename \"/home/user/file.txt\")  ; Returns file.txt"),
		pathFn("path-ext", "Get the file extension of a path", ext,
			"  (path-ext \"file.txt\")  ; Returns txt\n"+
				"  (path-ext \"archive.tar.gz\")  ; Returns gz"),
		basedirFn("path-abs", "Get the absolute form of a path relative to the base directory", abs,
			"  (path-abs \"src\")  ; Returns /home/user/project/src"),
		basedirFn("path-is-dir", "Check if a path is a directory", isDir,
			"  (path-is-dir \"src\")  ; Returns #t if src is a directory"),
		basedirFn("path-is-file", "Check if a path is a regular file", isFile,
			"  (path-is-file \"go.mod\")  ; Returns #t if go.mod is a regular file"),
	}
}

// pathFn builds a command that takes one path and transforms it without
// touching the filesystem.
func pathFn(name, desc string, f func(string) vals.Value, examples string) eval.Command {
	return eval.NewFunc(name, desc, func(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
		ss, err := eval.StrArgs(name, "path", 1, 1, args)
		if err != nil {
			return nil, err
		}
		ctx.Debugf("path", "%s %s", name, ss[0])
		return f(ss[0]), nil
	}).WithHelp("("+name+" path)", examples).WithTag(eval.TagSystem)
}

// basedirFn builds a command that takes one path, which is resolved against
// the base directory.
func basedirFn(name, desc string, f func(string) (vals.Value, error), examples string) eval.Command {
	return eval.NewFunc(name, desc, func(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
		ss, err := eval.StrArgs(name, "path", 1, 1, args)
		if err != nil {
			return nil, err
		}
		path := fsutil.Resolve(ctx.Basedir(), ss[0])
		ctx.Debugf("path", "%s %s", name, path)
		return f(path)
	}).WithHelp("("+name+" path)", examples).WithTag(eval.TagSystem)
}

func join(args []vals.Value, _ *eval.Context) (vals.Value, error) {
	parts, err := eval.StrArgs("path-join", "component", 1, -1, args)
	if err != nil {
		return nil, err
	}
	return vals.Str(filepath.Join(parts...)), nil
}

func parent(path string) vals.Value {
	if path == "" {
		return vals.Nil
	}
	clean := filepath.Clean(path)
	dir := filepath.Dir(clean)
	if dir == clean {
		// A root has no parent.
		return vals.Nil
	}
	return vals.Str(dir)
}

func filename(path string) vals.Value {
	base := filepath.Base(path)
	switch base {
	case ".", "..", string(filepath.Separator):
		return vals.Nil
	}
	return vals.Str(base)
}

func ext(path string) vals.Value {
	base := filepath.Base(path)
	e := filepath.Ext(base)
	if e == "" || e == base {
		return vals.Nil
	}
	return vals.Str(e[1:])
}

func abs(path string) (vals.Value, error) {
	a, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return vals.Str(a), nil
}

func isDir(path string) (vals.Value, error) { return vals.Bool(fsutil.IsDir(path)), nil }

func isFile(path string) (vals.Value, error) { return vals.Bool(fsutil.IsRegular(path)), nil }
