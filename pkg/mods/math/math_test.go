package math

import (
	"testing"

	. "src.dpm.sh/pkg/eval/evaltest"
	"src.dpm.sh/pkg/eval/errs"
	"src.dpm.sh/pkg/eval/vals"
	"src.dpm.sh/pkg/tt"
)

var use = Use(Commands()...)

func TestMath(t *testing.T) {
	TestWithSetup(t, use,
		That("(math-abs -3)").Puts(vals.Int(3)),
		That("(math-abs 3)").Puts(vals.Int(3)),
		That(`(math-abs "3")`).Throws(errs.BadValue{
			What: "argument to math-abs", Valid: "integer", Actual: "string"}),

		That("(math-max 3 9 1)").Puts(vals.Int(9)),
		That("(math-min 3 9 1)").Puts(vals.Int(1)),
		That("(math-min -2)").Puts(vals.Int(-2)),
		That("(math-max)").Throws(errs.ArityMismatch{
			What: "arguments to math-max", ValidLow: 1, ValidHigh: -1, Actual: 0}),

		That("(math-sub 10 3 2)").Puts(vals.Int(5)),
		That("(math-sub 4)").Puts(vals.Int(-4)),

		That("(math-div 7 2)").Puts(vals.Int(3)),
		That("(math-div -7 2)").Puts(vals.Int(-3)),
		That("(math-div 1 0)").Throws(errDivideByZero),
		That("(math-mod 7 2)").Puts(vals.Int(1)),
		That("(math-mod 1 0)").Throws(errDivideByZero),

		That("(math-pow 2 10)").Puts(vals.Int(1024)),
		That("(math-pow 2 -1)").Throws(errs.BadValue{
			What: "exponent", Valid: "non-negative integer", Actual: "-1"}),
	)
}

func TestPow(t *testing.T) {
	tt.Test(t, tt.Fn("pow", pow), tt.Table{
		tt.Args(int64(2), int64(0)).Rets(int64(1), nil),
		tt.Args(int64(3), int64(3)).Rets(int64(27), nil),
		tt.Args(int64(-2), int64(3)).Rets(int64(-8), nil),
		tt.Args(int64(0), int64(5)).Rets(int64(0), nil),
	})
}
