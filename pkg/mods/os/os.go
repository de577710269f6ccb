// Package os provides commands that access the operating system: running
// external programs and reading the process environment.
package os

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"src.dpm.sh/pkg/eval"
	"src.dpm.sh/pkg/eval/vals"
	"src.dpm.sh/pkg/fsutil"
	"src.dpm.sh/pkg/proc"
)

// Commands returns the OS commands. External programs are run with r.
func Commands(r proc.Runner) []eval.Command {
	return []eval.Command{
		eval.NewFunc("process-command", "Execute a system command and return the exit status",
			func(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
				return processCommand(r, args, ctx)
			}).
			WithHelp("(process-command program arg1 arg2 ...)",
				"  (process-command \"ls\" \"-la\")  ; Returns (#t 0) on success\n"+
					"  (process-command \"echo\" \"Hello World\")  ; Echo a message").
			WithTag(eval.TagSystem),
		eval.NewFunc("process-output", "Execute a system command and return the output (stdout, stderr, success, code)",
			func(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
				return processOutput(r, args, ctx)
			}).
			WithHelp("(process-output program arg1 arg2 ...)",
				"  (process-output \"echo\" \"Hello\")  ; Returns (\"Hello\\n\" \"\" #t 0)").
			WithTag(eval.TagSystem),
		eval.NewFunc("env-var", "Get the value of an environment variable", envVar).
			WithHelp("(env-var name)",
				"  (env-var \"PATH\")  ; Get PATH environment variable, or nil if unset").
			WithTag(eval.TagSystem),
		eval.NewFunc("env-vars", "Get all environment variables as a list of (name value) pairs", envVars).
			WithHelp("(env-vars)", "  (env-vars)  ; Returns ((\"HOME\" \"/home/user\") ...)").
			WithTag(eval.TagSystem),
		eval.NewFunc("current-dir", "Get the current working directory", currentDir).
			WithHelp("(current-dir)", "  (current-dir)  ; Returns current working directory path").
			WithTag(eval.TagSystem),
		eval.NewFunc("current-exe", "Get the path of the running executable", currentExe).
			WithHelp("(current-exe)", "  (current-exe)  ; Returns the path of the dpm binary").
			WithTag(eval.TagSystem),
		eval.NewFunc("home-dir", "Get the user's home directory", homeDir).
			WithHelp("(home-dir)", "  (home-dir)  ; Returns user's home directory path").
			WithTag(eval.TagSystem),
	}
}

func spec(name string, args []vals.Value, ctx *eval.Context) (proc.Spec, error) {
	ss, err := eval.StrArgs(name, "argument", 1, -1, args)
	if err != nil {
		return proc.Spec{}, err
	}
	return proc.Spec{Dir: ctx.Basedir(), Name: ss[0], Args: ss[1:]}, nil
}

func processCommand(r proc.Runner, args []vals.Value, ctx *eval.Context) (vals.Value, error) {
	s, err := spec("process-command", args, ctx)
	if err != nil {
		return nil, err
	}
	s.Stdout, s.Stderr = ctx.Stdout, ctx.Stderr
	ctx.Debugf("process", "executing %s", s)
	st, err := r.Run(s)
	if err != nil {
		return nil, fmt.Errorf("failed to execute command '%s': %w", s.Name, err)
	}
	ctx.Debugf("process", "command completed with success=%t, code=%d", st.Success, st.Code)
	return vals.MakeList(vals.Bool(st.Success), vals.Int(st.Code)), nil
}

func processOutput(r proc.Runner, args []vals.Value, ctx *eval.Context) (vals.Value, error) {
	s, err := spec("process-output", args, ctx)
	if err != nil {
		return nil, err
	}
	ctx.Debugf("process", "executing %s with output capture", s)
	out, err := r.Output(s)
	if err != nil {
		return nil, fmt.Errorf("failed to execute command '%s': %w", s.Name, err)
	}
	ctx.Debugf("process", "command completed with success=%t, code=%d, stdout=%d bytes, stderr=%d bytes",
		out.Success, out.Code, len(out.Stdout), len(out.Stderr))
	return vals.MakeList(vals.Str(out.Stdout), vals.Str(out.Stderr),
		vals.Bool(out.Success), vals.Int(out.Code)), nil
}

func envVar(args []vals.Value, _ *eval.Context) (vals.Value, error) {
	ss, err := eval.StrArgs("env-var", "name", 1, 1, args)
	if err != nil {
		return nil, err
	}
	if v, ok := os.LookupEnv(ss[0]); ok {
		return vals.Str(v), nil
	}
	return vals.Nil, nil
}

func envVars(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
	if err := eval.NoArgs("env-vars", args); err != nil {
		return nil, err
	}
	environ := os.Environ()
	sort.Strings(environ)
	pairs := make([]vals.Value, 0, len(environ))
	for _, kv := range environ {
		k, v, _ := strings.Cut(kv, "=")
		pairs = append(pairs, vals.Strings(k, v))
	}
	ctx.Debugf("env", "collected %d environment variables", len(pairs))
	return vals.MakeList(pairs...), nil
}

func currentDir(args []vals.Value, _ *eval.Context) (vals.Value, error) {
	if err := eval.NoArgs("current-dir", args); err != nil {
		return nil, err
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return vals.Str(wd), nil
}

func currentExe(args []vals.Value, _ *eval.Context) (vals.Value, error) {
	if err := eval.NoArgs("current-exe", args); err != nil {
		return nil, err
	}
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get current executable: %w", err)
	}
	return vals.Str(exe), nil
}

func homeDir(args []vals.Value, _ *eval.Context) (vals.Value, error) {
	if err := eval.NoArgs("home-dir", args); err != nil {
		return nil, err
	}
	home, err := fsutil.GetHome("")
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return vals.Str(home), nil
}
