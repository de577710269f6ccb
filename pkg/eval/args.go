package eval

import (
	"src.dpm.sh/pkg/eval/errs"
	"src.dpm.sh/pkg/eval/vals"
)

// StrArg returns the string held by v, or a BadValue error naming the command
// and the argument.
func StrArg(cmd, what string, v vals.Value) (string, error) {
	s, ok := v.(vals.Str)
	if !ok {
		return "", errs.BadValue{What: cmd + " " + what, Valid: "string", Actual: vals.Kind(v)}
	}
	return string(s), nil
}

// StrArgs checks that a command received between low and high arguments (high
// being -1 for no upper bound) that are all strings, and returns them.
func StrArgs(cmd, what string, low, high int, args []vals.Value) ([]string, error) {
	if err := errs.CheckArity("arguments to "+cmd, low, high, len(args)); err != nil {
		return nil, err
	}
	ss := make([]string, len(args))
	for i, arg := range args {
		s, err := StrArg(cmd, what, arg)
		if err != nil {
			return nil, err
		}
		ss[i] = s
	}
	return ss, nil
}

// NoArgs returns an ArityMismatch if a command that takes no arguments got
// some.
func NoArgs(cmd string, args []vals.Value) error {
	return errs.CheckArity("arguments to "+cmd, 0, 0, len(args))
}
