// Package file provides commands that read and modify files. All paths are
// resolved against the base directory.
package file

import (
	"fmt"
	"os"

	"src.dpm.sh/pkg/eval"
	"src.dpm.sh/pkg/eval/vals"
	"src.dpm.sh/pkg/fsutil"
)

// Commands returns the file commands.
func Commands() []eval.Command {
	return []eval.Command{
		eval.NewFunc("fs-list", "List files in the base directory matching a wildcard pattern", list).
			WithHelp("(fs-list pattern)",
				"  (fs-list \"*.rs\")        ; List Rust source files\n"+
					"  (fs-list \"config.*\")    ; List files starting with 'config.'").
			WithTag(eval.TagCommands),
		eval.NewFunc("fs-read", "Read the entire contents of a file into a string", read).
			WithHelp("(fs-read path)",
				"  (fs-read \"config.txt\")  ; Read file contents as string").
			WithTag(eval.TagSystem),
		eval.NewFunc("fs-write", "Write a string to a file, creating the file if it doesn't exist", write).
			WithHelp("(fs-write path content)",
				"  (fs-write \"output.txt\" \"Hello, World!\")  ; Write string to file").
			WithTag(eval.TagSystem),
		eval.NewFunc("fs-exists", "Check if a path exists", exists).
			WithHelp("(fs-exists path)",
				"  (fs-exists \"nonexistent.txt\")  ; Returns #f").
			WithTag(eval.TagSystem),
		eval.NewFunc("fs-mkdir", "Create a new directory", mkdir).
			WithHelp("(fs-mkdir path)",
				"  (fs-mkdir \"new_folder\")  ; Create directory").
			WithTag(eval.TagSystem),
		eval.NewFunc("fs-remove", "Remove a file from the filesystem", remove).
			WithHelp("(fs-remove path)",
				"  (fs-remove \"temp.txt\")  ; Remove file").
			WithTag(eval.TagSystem),
		eval.NewFunc("fs-copy", "Copy a file from source to destination", copyFile).
			WithHelp("(fs-copy source destination)",
				"  (fs-copy \"source.txt\" \"backup.txt\")  ; Copy file").
			WithTag(eval.TagSystem),
	}
}

func list(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
	ss, err := eval.StrArgs("fs-list", "pattern", 1, 1, args)
	if err != nil {
		return nil, err
	}
	ctx.Debugf("fs-list", "received pattern: %s", ss[0])
	names, err := fsutil.Glob(ctx.Basedir(), ss[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read directory '%s': %w", ctx.Basedir(), err)
	}
	ctx.Debugf("fs-list", "matched %d files", len(names))
	return vals.Strings(names...), nil
}

func read(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
	ss, err := eval.StrArgs("fs-read", "path", 1, 1, args)
	if err != nil {
		return nil, err
	}
	content, err := fsutil.ReadFile(ctx.Basedir(), ss[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read file '%s': %w", ss[0], err)
	}
	ctx.Debugf("fs", "read %d bytes from %s", len(content), ss[0])
	return vals.Str(content), nil
}

func write(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
	ss, err := eval.StrArgs("fs-write", "argument", 2, 2, args)
	if err != nil {
		return nil, err
	}
	n, err := fsutil.WriteFile(ctx.Basedir(), ss[0], ss[1])
	if err != nil {
		return nil, fmt.Errorf("failed to write to file '%s': %w", ss[0], err)
	}
	return vals.Str(fmt.Sprintf("Successfully wrote %d bytes to '%s'", n, ss[0])), nil
}

func exists(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
	ss, err := eval.StrArgs("fs-exists", "path", 1, 1, args)
	if err != nil {
		return nil, err
	}
	return vals.Bool(fsutil.Exists(fsutil.Resolve(ctx.Basedir(), ss[0]))), nil
}

func mkdir(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
	ss, err := eval.StrArgs("fs-mkdir", "path", 1, 1, args)
	if err != nil {
		return nil, err
	}
	if err := os.Mkdir(fsutil.Resolve(ctx.Basedir(), ss[0]), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory '%s': %w", ss[0], err)
	}
	return vals.Str(fmt.Sprintf("Successfully created directory '%s'", ss[0])), nil
}

func remove(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
	ss, err := eval.StrArgs("fs-remove", "path", 1, 1, args)
	if err != nil {
		return nil, err
	}
	path := fsutil.Resolve(ctx.Basedir(), ss[0])
	if fsutil.IsDir(path) {
		return nil, fmt.Errorf("failed to remove file '%s': is a directory", ss[0])
	}
	if err := os.Remove(path); err != nil {
		return nil, fmt.Errorf("failed to remove file '%s': %w", ss[0], err)
	}
	return vals.Str(fmt.Sprintf("Successfully removed file '%s'", ss[0])), nil
}

func copyFile(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
	ss, err := eval.StrArgs("fs-copy", "path", 2, 2, args)
	if err != nil {
		return nil, err
	}
	src, dst := ss[0], ss[1]
	ctx.Debugf("fs", "copying file from '%s' to '%s'", src, dst)
	n, err := fsutil.CopyFile(fsutil.Resolve(ctx.Basedir(), src), fsutil.Resolve(ctx.Basedir(), dst))
	if err != nil {
		return nil, fmt.Errorf("failed to copy from '%s' to '%s': %w", src, dst, err)
	}
	return vals.Str(fmt.Sprintf("Successfully copied %d bytes from '%s' to '%s'", n, src, dst)), nil
}
