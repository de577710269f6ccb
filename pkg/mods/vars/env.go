package vars

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"src.dpm.sh/pkg/eval"
	"src.dpm.sh/pkg/eval/vals"
	"src.dpm.sh/pkg/fsutil"
)

const envFileHeader = "# Environment variables written by write-env command\n" +
	"# Generated automatically - do not edit manually\n\n"

func envFileCommands() []eval.Command {
	return []eval.Command{
		eval.NewFunc("read-env", "Read environment variables from a file and store them in the context", readEnv).
			WithHelp("(read-env path)",
				"  (read-env \"config.env\")     ; Read from config.env relative to basedir\n"+
					"  (read-env \"../shared.env\")  ; Read from parent directory").
			WithTag(eval.TagCommands),
		eval.NewFunc("write-env", "Write all context variables to a file", writeEnv).
			WithHelp("(write-env path)",
				"  (write-env \"config.env\")     ; Write to config.env relative to basedir\n"+
					"  (write-env \"../shared.env\")  ; Write to parent directory").
			WithTag(eval.TagCommands),
	}
}

// readEnv loads KEY=VALUE lines. Blank lines, lines starting with # and
// lines without = are skipped. Values are interpolated against the variables
// loaded so far.
func readEnv(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
	ss, err := eval.StrArgs("read-env", "path", 1, 1, args)
	if err != nil {
		return nil, err
	}
	path := fsutil.Resolve(ctx.Basedir(), ss[0])
	ctx.Debugf("read-env", "resolved file path: %s", path)
	if !fsutil.Exists(path) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	lines := strings.Split(strings.TrimSuffix(string(bs), "\n"), "\n")
	if len(bs) == 0 {
		lines = nil
	}
	loaded := 0
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			ctx.Debugf("read-env", "skipping line %d", i+1)
			continue
		}
		value = Interpolate(strings.TrimSpace(value), ctx)
		ctx.Debugf("read-env", "found variable: %s = %s", key, value)
		ctx.SetVariable(key, vals.Str(value))
		loaded++
	}
	return vals.Str(fmt.Sprintf("Loaded %d variables from %s (processed %d lines)",
		loaded, path, len(lines))), nil
}

func writeEnv(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
	ss, err := eval.StrArgs("write-env", "path", 1, 1, args)
	if err != nil {
		return nil, err
	}
	path := fsutil.Resolve(ctx.Basedir(), ss[0])
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create parent directories for %s: %w", path, err)
	}

	var sb strings.Builder
	sb.WriteString(envFileHeader)
	names := ctx.VariableNames()
	for _, name := range names {
		v, _ := ctx.Variable(name)
		fmt.Fprintf(&sb, "%s=%s\n", name, vals.ToString(v))
	}
	if len(names) == 0 {
		sb.WriteString("# No variables to write\n")
	}
	if _, err := fsutil.WriteFile("", path, sb.String()); err != nil {
		return nil, fmt.Errorf("failed to write file %s: %w", path, err)
	}
	ctx.Debugf("write-env", "wrote %d variables", len(names))
	return vals.Str(fmt.Sprintf("Wrote %d variables to %s", len(names), path)), nil
}
