// Package hash provides commands that compute content digests of directories.
package hash

import (
	"fmt"

	"src.dpm.sh/pkg/eval"
	"src.dpm.sh/pkg/eval/vals"
	"src.dpm.sh/pkg/fsutil"
	"src.dpm.sh/pkg/hashdir"
)

// Commands returns the hash commands.
func Commands() []eval.Command {
	return []eval.Command{
		eval.NewFunc("dir-md5", "Compute the MD5 digest of the files in a directory tree",
			digest("dir-md5", func(s string) string { return s })).
			WithHelp("(dir-md5 [path])",
				"  (dir-md5)           ; Digest of the base directory\n"+
					"  (dir-md5 \"src\")     ; Digest of src relative to basedir").
			WithTag(eval.TagCommands),
		eval.NewFunc("dir-md5-short", "Compute the short MD5 digest of a directory tree, as used in version tags",
			digest("dir-md5-short", hashdir.Short)).
			WithHelp("(dir-md5-short [path])",
				"  (dir-md5-short \"docker/app\")  ; Returns e.g. \"c84c934a\"").
			WithTag(eval.TagCommands),
	}
}

func digest(name string, format func(string) string) func([]vals.Value, *eval.Context) (vals.Value, error) {
	return func(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
		ss, err := eval.StrArgs(name, "path", 0, 1, args)
		if err != nil {
			return nil, err
		}
		path := "."
		if len(ss) == 1 {
			path = ss[0]
		}
		dir := fsutil.Resolve(ctx.Basedir(), path)
		sum, err := hashdir.MD5(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to hash directory '%s': %w", path, err)
		}
		ctx.Debugf(name, "%s -> %s", dir, sum)
		return vals.Str(format(sum)), nil
	}
}
