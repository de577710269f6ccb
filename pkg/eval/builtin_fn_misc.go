package eval

import (
	"errors"
	"fmt"
	"strings"

	"src.dpm.sh/pkg/eval/errs"
	"src.dpm.sh/pkg/eval/vals"
)

var errDebugArg = errors.New("debug command argument must be 'true' or 'false'")

func debug(args []vals.Value, ctx *Context) (vals.Value, error) {
	if err := errs.CheckArity("arguments to debug", 0, 1, len(args)); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		info := ctx.DebugInfo()
		fmt.Fprint(ctx.Stdout, info)
		return vals.Str(info), nil
	}

	var on bool
	switch arg := args[0].(type) {
	case vals.Bool:
		on = bool(arg)
	case vals.Str:
		switch strings.ToLower(string(arg)) {
		case "true":
			on = true
		case "false":
			on = false
		default:
			return nil, errDebugArg
		}
	default:
		return nil, errDebugArg
	}
	ctx.SetDebugPrint(on)
	msg := "Debug printing disabled"
	if on {
		msg = "Debug printing enabled"
	}
	fmt.Fprintln(ctx.Stdout, msg)
	return vals.Str(msg), nil
}

func help(args []vals.Value, ctx *Context) (vals.Value, error) {
	if err := errs.CheckArity("arguments to help", 0, 0, len(args)); err != nil {
		return nil, err
	}
	var sb strings.Builder
	sb.WriteString("Available commands:\n\n")
	for _, g := range ctx.Registry.GroupedByTag() {
		fmt.Fprintf(&sb, "=== %s ===\n", g.Tag.Text)
		for _, c := range g.Commands {
			fmt.Fprintf(&sb, "  %-12s - %s\n", c.Name, c.Description)
		}
		sb.WriteString("\n")
	}
	text := sb.String()
	fmt.Fprintln(ctx.Stdout, text)
	return vals.Str(text), nil
}

const generalUsage = `=== GENERAL USAGE ===
All commands use Lisp-style syntax with parentheses:
  (command-name arg1 arg2 ...)

Commands can be nested:
  (print (sum 1 2 3))  ; Prints the result of sum

Multiple expressions can be evaluated:
  dpm '(sum 1 2 3)' '(print "Hello")'
`

func helpLong(args []vals.Value, ctx *Context) (vals.Value, error) {
	if err := errs.CheckArity("arguments to help-long", 0, 0, len(args)); err != nil {
		return nil, err
	}
	var sb strings.Builder
	sb.WriteString("=== DETAILED COMMAND REFERENCE ===\n\n")
	for _, g := range ctx.Registry.GroupedByTagWithHelp() {
		fmt.Fprintf(&sb, "=== %s ===\n\n", g.Tag.Text)
		for _, c := range g.Commands {
			fmt.Fprintf(&sb, "Command: %s\n", c.Name)
			fmt.Fprintf(&sb, "Description: %s\n", c.Description)
			fmt.Fprintf(&sb, "Syntax: %s\n", c.Syntax)
			fmt.Fprintf(&sb, "Examples:\n%s\n\n", c.Examples)
		}
		sb.WriteString("\n")
	}
	sb.WriteString(generalUsage)
	text := sb.String()
	fmt.Fprintln(ctx.Stdout, text)
	return vals.Str(text), nil
}
