package eval

import (
	"errors"
	"fmt"
	"strings"

	"src.dpm.sh/pkg/eval/errs"
	"src.dpm.sh/pkg/eval/vals"
	"src.dpm.sh/pkg/parse"
)

// Builtins returns the core commands. They are not registered in a Registry
// by default; use Registry.RegisterAll.
func Builtins() []Command {
	return []Command{
		NewFunc("print", "Print arguments to stdout", print).
			WithHelp("(print arg1 arg2 ...)",
				"  (print \"Hello World\")\n  (print \"Sum is:\" (sum 1 2 3))"),
		NewFunc("sum", "Sum a list of integers", sum).
			WithHelp("(sum number1 number2 ...)",
				"  (sum 1 2 3)        ; Returns 6\n  (sum (list 10 20))  ; Returns 30"),
		NewFunc("multiply", "Multiply two numbers", multiply).
			WithHelp("(multiply number1 number2)",
				"  (multiply 6 7)      ; Returns 42"),
		NewFunc("concat", "Concatenate strings", concat).
			WithHelp("(concat string1 string2 ...)",
				"  (concat \"Hello\" \" \" \"World\") ; Returns \"Hello World\""),
		NewFunc("list", "Create a list from arguments", list).
			WithHelp("(list element1 element2 ...)",
				"  (list 1 2 3)       ; Returns (1 2 3)"),
		NewFunc("list-first", "Get first element of a list", listFirst).
			WithHelp("(list-first list)",
				"  (list-first (list 1 2 3))  ; Returns 1"),
		NewFunc("list-rest", "Get all but first element of a list", listRest).
			WithHelp("(list-rest list)",
				"  (list-rest (list 1 2 3))   ; Returns (2 3)"),
		NewFunc("list-len", "Get the number of elements of a list", listLen).
			WithHelp("(list-len list)",
				"  (list-len (list 1 2 3))    ; Returns 3"),
		NewFunc("pipe", "Execute a pipeline of commands, passing results between them", pipe).
			WithHelp("(pipe initial-value (list \"command\" arg ...) ...)",
				"  (pipe (sum 1 2) (list \"multiply\" 10))  ; Returns 30"),
		NewFunc("eval-string", "Parse and evaluate a string of code", evalString).
			WithHelp("(eval-string code)",
				"  (eval-string \"(sum 1 2)\")  ; Returns 3"),
		NewFunc("debug", "Print current program state or set debug printing true/false", debug).
			WithHelp("(debug) or (debug \"true\"|\"false\")",
				"  (debug)          ; Print session variables\n"+
					"  (debug \"true\")    ; Enable debug printing\n"+
					"  (debug \"false\")   ; Disable debug printing"),
		NewFunc("help", "Show short help for all commands", help).
			WithHelp("(help)", "  (help)              ; Shows short help"),
		NewFunc("help-long", "Show detailed help with syntax and examples", helpLong).
			WithHelp("(help-long)", "  (help-long)         ; Shows this detailed help"),
	}
}

func print(args []vals.Value, ctx *Context) (vals.Value, error) {
	output := joinStrings(args, " ")
	fmt.Fprintln(ctx.Stdout, output)
	return vals.Str(output), nil
}

func sum(args []vals.Value, _ *Context) (vals.Value, error) {
	var total int64
	add := func(v vals.Value) error {
		i, ok := v.(vals.Int)
		if !ok {
			return fmt.Errorf("cannot sum non-integer value: %s", vals.ToString(v))
		}
		total += int64(i)
		return nil
	}
	for _, arg := range args {
		if l, ok := arg.(vals.List); ok {
			for _, item := range l.Items() {
				if err := add(item); err != nil {
					return nil, err
				}
			}
		} else if err := add(arg); err != nil {
			return nil, err
		}
	}
	return vals.Int(total), nil
}

func multiply(args []vals.Value, _ *Context) (vals.Value, error) {
	if err := errs.CheckArity("arguments to multiply", 2, 2, len(args)); err != nil {
		return nil, err
	}
	a, err := vals.ToInt(args[0])
	if err != nil {
		return nil, err
	}
	b, err := vals.ToInt(args[1])
	if err != nil {
		return nil, err
	}
	return vals.Int(a * b), nil
}

func concat(args []vals.Value, _ *Context) (vals.Value, error) {
	return vals.Str(joinStrings(args, "")), nil
}

func list(args []vals.Value, _ *Context) (vals.Value, error) {
	return vals.MakeList(args...), nil
}

func listArg(name string, args []vals.Value) (vals.List, error) {
	if err := errs.CheckArity("arguments to "+name, 1, 1, len(args)); err != nil {
		return vals.List{}, err
	}
	l, ok := args[0].(vals.List)
	if !ok {
		return vals.List{}, errs.BadValue{
			What: "argument to " + name, Valid: "list", Actual: vals.Kind(args[0])}
	}
	return l, nil
}

func listFirst(args []vals.Value, _ *Context) (vals.Value, error) {
	l, err := listArg("list-first", args)
	if err != nil {
		return nil, err
	}
	if l.Len() == 0 {
		return vals.Nil, nil
	}
	return l.Index(0), nil
}

func listRest(args []vals.Value, _ *Context) (vals.Value, error) {
	l, err := listArg("list-rest", args)
	if err != nil {
		return nil, err
	}
	if l.Len() <= 1 {
		return vals.MakeList(), nil
	}
	return vals.MakeList(l.Items()[1:]...), nil
}

func listLen(args []vals.Value, _ *Context) (vals.Value, error) {
	l, err := listArg("list-len", args)
	if err != nil {
		return nil, err
	}
	return vals.Int(l.Len()), nil
}

var errPipeStage = errors.New("pipe arguments must be command lists")

// pipe threads a value through stages. Each stage is a list whose first
// element names a command. The stage is converted back to a form and
// evaluated afresh, so nested lists in it are command calls; the result of the
// previous stage is passed as one more argument. Empty stages are skipped.
func pipe(args []vals.Value, ctx *Context) (vals.Value, error) {
	if len(args) == 0 {
		return vals.Nil, nil
	}
	ev := &evaler{ctx: ctx}
	result := args[0]
	for _, stage := range args[1:] {
		l, ok := stage.(vals.List)
		if !ok {
			return nil, errPipeStage
		}
		if l.Len() == 0 {
			continue
		}
		form, ok := vals.ToNode(l).(*parse.Form)
		if !ok {
			return nil, errPipeStage
		}
		var err error
		result, err = ev.evalForm(form, result)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func evalString(args []vals.Value, ctx *Context) (vals.Value, error) {
	if err := errs.CheckArity("arguments to eval-string", 1, 1, len(args)); err != nil {
		return nil, err
	}
	code, err := vals.ToStr(args[0])
	if err != nil {
		return nil, err
	}
	return EvalString(code, ctx)
}

func joinStrings(args []vals.Value, sep string) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = vals.ToString(arg)
	}
	return strings.Join(parts, sep)
}
