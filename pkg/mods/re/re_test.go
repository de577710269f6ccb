package re

import (
	"regexp/syntax"
	"testing"

	. "src.dpm.sh/pkg/eval/evaltest"
	"src.dpm.sh/pkg/eval/errs"
	"src.dpm.sh/pkg/eval/vals"
)

var use = Use(Commands()...)

func TestRe(t *testing.T) {
	TestWithSetup(t, use,
		That(`(re-quote "a.b")`).Puts(vals.Str(`a\.b`)),
		That(`(re-quote "(x)")`).Puts(vals.Str(`\(x\)`)),

		That(`(re-match "a" "a")`).Puts(vals.Bool(true)),
		That(`(re-match "a" "b")`).Puts(vals.Bool(false)),
		That(`(re-match "[a" "a")`).Throws(ErrorWithType(&syntax.Error{})),
		That(`(re-match "a")`).Throws(errs.ArityMismatch{
			What: "arguments to re-match", ValidLow: 2, ValidHigh: 2, Actual: 1}),

		That(`(re-find "(\\w+)=(\\w+)" "a=1 b=2")`).Puts(vals.MakeList(
			vals.Strings("a=1", "a", "1"), vals.Strings("b=2", "b", "2"))),
		That(`(re-find "\\d" "a1b2c3" 2)`).Puts(vals.MakeList(
			vals.Strings("1"), vals.Strings("2"))),
		That(`(re-find "(a)|(b)" "b")`).Puts(vals.MakeList(
			vals.MakeList(vals.Str("b"), vals.Nil, vals.Str("b")))),
		That(`(re-find "x" "abc")`).Puts(vals.MakeList()),
		That(`(re-find "x" "abc" "1")`).Throws(errs.BadValue{
			What: "re-find max", Valid: "integer", Actual: "string"}),

		That(`(re-replace "(\\d+)" "<$1>" "a1b22")`).Puts(vals.Str("a<1>b<22>")),
		That(`(re-replace "x" "y" "abc")`).Puts(vals.Str("abc")),

		That(`(re-split "[,;]" "a,b;c")`).Puts(vals.Strings("a", "b", "c")),
		That(`(re-split "," "a,b,c" 2)`).Puts(vals.Strings("a", "b,c")),
	)
}
