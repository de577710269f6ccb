// Package math provides integer arithmetic commands beyond sum and multiply.
package math

import (
	"errors"

	"src.dpm.sh/pkg/eval"
	"src.dpm.sh/pkg/eval/errs"
	"src.dpm.sh/pkg/eval/vals"
)

var errDivideByZero = errors.New("division by zero")

// Commands returns the math commands.
func Commands() []eval.Command {
	return []eval.Command{
		eval.NewFunc("math-abs", "Get the absolute value of an integer", abs).
			WithHelp("(math-abs n)", "  (math-abs -3)  ; Returns 3"),
		eval.NewFunc("math-max", "Get the largest of one or more integers", extreme("math-max", func(a, b int64) bool { return a > b })).
			WithHelp("(math-max n ...)", "  (math-max 3 9 1)  ; Returns 9"),
		eval.NewFunc("math-min", "Get the smallest of one or more integers", extreme("math-min", func(a, b int64) bool { return a < b })).
			WithHelp("(math-min n ...)", "  (math-min 3 9 1)  ; Returns 1"),
		eval.NewFunc("math-sub", "Subtract integers from the first one", sub).
			WithHelp("(math-sub n m ...)", "  (math-sub 10 3 2)  ; Returns 5"),
		eval.NewFunc("math-div", "Divide two integers, truncating toward zero", binary("math-div", func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, errDivideByZero
			}
			return a / b, nil
		})).
			WithHelp("(math-div a b)", "  (math-div 7 2)  ; Returns 3"),
		eval.NewFunc("math-mod", "Get the remainder of dividing two integers", binary("math-mod", func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, errDivideByZero
			}
			return a % b, nil
		})).
			WithHelp("(math-mod a b)", "  (math-mod 7 2)  ; Returns 1"),
		eval.NewFunc("math-pow", "Raise an integer to a non-negative integer power", binary("math-pow", pow)).
			WithHelp("(math-pow base exp)", "  (math-pow 2 10)  ; Returns 1024"),
	}
}

func ints(name string, args []vals.Value) ([]int64, error) {
	ns := make([]int64, len(args))
	for i, arg := range args {
		n, ok := arg.(vals.Int)
		if !ok {
			return nil, errs.BadValue{What: "argument to " + name, Valid: "integer", Actual: vals.Kind(arg)}
		}
		ns[i] = int64(n)
	}
	return ns, nil
}

func abs(args []vals.Value, _ *eval.Context) (vals.Value, error) {
	if err := errs.CheckArity("arguments to math-abs", 1, 1, len(args)); err != nil {
		return nil, err
	}
	ns, err := ints("math-abs", args)
	if err != nil {
		return nil, err
	}
	if ns[0] < 0 {
		return vals.Int(-ns[0]), nil
	}
	return vals.Int(ns[0]), nil
}

func extreme(name string, better func(a, b int64) bool) func([]vals.Value, *eval.Context) (vals.Value, error) {
	return func(args []vals.Value, _ *eval.Context) (vals.Value, error) {
		if err := errs.CheckArity("arguments to "+name, 1, -1, len(args)); err != nil {
			return nil, err
		}
		ns, err := ints(name, args)
		if err != nil {
			return nil, err
		}
		result := ns[0]
		for _, n := range ns[1:] {
			if better(n, result) {
				result = n
			}
		}
		return vals.Int(result), nil
	}
}

func sub(args []vals.Value, _ *eval.Context) (vals.Value, error) {
	if err := errs.CheckArity("arguments to math-sub", 1, -1, len(args)); err != nil {
		return nil, err
	}
	ns, err := ints("math-sub", args)
	if err != nil {
		return nil, err
	}
	if len(ns) == 1 {
		return vals.Int(-ns[0]), nil
	}
	result := ns[0]
	for _, n := range ns[1:] {
		result -= n
	}
	return vals.Int(result), nil
}

func binary(name string, f func(a, b int64) (int64, error)) func([]vals.Value, *eval.Context) (vals.Value, error) {
	return func(args []vals.Value, _ *eval.Context) (vals.Value, error) {
		if err := errs.CheckArity("arguments to "+name, 2, 2, len(args)); err != nil {
			return nil, err
		}
		ns, err := ints(name, args)
		if err != nil {
			return nil, err
		}
		n, err := f(ns[0], ns[1])
		if err != nil {
			return nil, err
		}
		return vals.Int(n), nil
	}
}

func pow(base, exp int64) (int64, error) {
	if exp < 0 {
		return 0, errs.BadValue{What: "exponent", Valid: "non-negative integer", Actual: vals.Int(exp).String()}
	}
	result := int64(1)
	for ; exp > 0; exp >>= 1 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
	}
	return result, nil
}
