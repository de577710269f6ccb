// Package vars provides commands that manage session variables.
package vars

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"src.dpm.sh/pkg/eval"
	"src.dpm.sh/pkg/eval/errs"
	"src.dpm.sh/pkg/eval/vals"
)

// Commands returns the variable commands.
func Commands() []eval.Command {
	return append([]eval.Command{
		eval.NewFunc("get-var", "Get a variable from the context with the given key", getVar).
			WithHelp("(get-var key)",
				"  (get-var \"name\")        ; Get variable 'name'\n"+
					"  (get-var \"count\")       ; Get variable 'count'").
			WithTag(eval.TagCommands),
		eval.NewFunc("set-var", "Set a variable in the context with the given key and value", setVar).
			WithHelp("(set-var key value)",
				"  (set-var \"name\" \"John\")           ; Set variable 'name' to 'John'\n"+
					"  (set-var \"path\" \"${HOME}/src\")    ; Interpolate variables\n"+
					"  (set-var \"nums\" (list 1 2))       ; Store a list").
			WithTag(eval.TagCommands),
		eval.NewFunc("unset-var", "Remove a variable from the context", unsetVar).
			WithHelp("(unset-var key)",
				"  (unset-var \"name\")      ; Returns #t if 'name' was set").
			WithTag(eval.TagCommands),
		eval.NewFunc("vars", "List the names of all variables in the context", listVars).
			WithHelp("(vars)", "  (vars)                  ; Returns (\"a\" \"b\")").
			WithTag(eval.TagCommands),
		eval.NewFunc("vars-yaml", "Render all variables in the context as a YAML document", varsYAML).
			WithHelp("(vars-yaml)", "  (print (vars-yaml))").
			WithTag(eval.TagCommands),
	}, envFileCommands()...)
}

func getVar(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
	ctx.Debugf("get-var", "executing get-var command")
	if err := errs.CheckArity("arguments to get-var", 1, 1, len(args)); err != nil {
		return nil, err
	}
	key, err := eval.StrArg("get-var", "key", args[0])
	if err != nil {
		return nil, err
	}
	v, ok := ctx.Variable(key)
	if !ok {
		ctx.Debugf("get-var", "variable %s not found", key)
		return nil, fmt.Errorf("variable '%s' not found", key)
	}
	ctx.Debugf("get-var", "found variable: %s = %s", key, vals.ToString(v))
	return v, nil
}

func setVar(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
	ctx.Debugf("set-var", "executing set-var command")
	if err := errs.CheckArity("arguments to set-var", 2, 2, len(args)); err != nil {
		return nil, err
	}
	key, err := eval.StrArg("set-var", "key", args[0])
	if err != nil {
		return nil, err
	}
	value := args[1]
	if s, ok := value.(vals.Str); ok {
		value = vals.Str(Interpolate(string(s), ctx))
		ctx.Debugf("set-var", "interpolated value: %s = %s", key, value)
	}
	ctx.SetVariable(key, value)
	return vals.Str(fmt.Sprintf("Variable '%s' set to '%s'", key, vals.ToString(value))), nil
}

func unsetVar(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
	if err := errs.CheckArity("arguments to unset-var", 1, 1, len(args)); err != nil {
		return nil, err
	}
	key, err := eval.StrArg("unset-var", "key", args[0])
	if err != nil {
		return nil, err
	}
	return vals.Bool(ctx.DeleteVariable(key)), nil
}

func listVars(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
	if err := eval.NoArgs("vars", args); err != nil {
		return nil, err
	}
	return vals.Strings(ctx.VariableNames()...), nil
}

func varsYAML(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
	if err := eval.NoArgs("vars-yaml", args); err != nil {
		return nil, err
	}
	m := make(map[string]any)
	for _, name := range ctx.VariableNames() {
		v, _ := ctx.Variable(name)
		m[name] = ToGo(v)
	}
	if len(m) == 0 {
		return vals.Str(""), nil
	}
	bs, err := yaml.Marshal(m)
	if err != nil {
		return nil, err
	}
	return vals.Str(bs), nil
}

// ToGo converts a value to the plain Go value used for serialization.
func ToGo(v vals.Value) any {
	switch v := v.(type) {
	case vals.Int:
		return int64(v)
	case vals.Str:
		return string(v)
	case vals.Bool:
		return bool(v)
	case vals.List:
		items := v.Items()
		l := make([]any, len(items))
		for i, item := range items {
			l[i] = ToGo(item)
		}
		return l
	default:
		return nil
	}
}

var interpolation = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate replaces each ${NAME} in s with the display form of the context
// variable NAME or, failing that, the environment variable NAME. References
// to undefined names are kept as is. Substituted text is not interpolated
// again.
func Interpolate(s string, ctx *eval.Context) string {
	return interpolation.ReplaceAllStringFunc(s, func(ref string) string {
		name := ref[2 : len(ref)-1]
		if v, ok := ctx.Variable(name); ok {
			return vals.ToString(v)
		}
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return ref
	})
}
