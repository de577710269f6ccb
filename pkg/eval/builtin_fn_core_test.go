package eval_test

import (
	"testing"

	. "src.dpm.sh/pkg/eval/evaltest"

	"src.dpm.sh/pkg/eval/errs"
	"src.dpm.sh/pkg/eval/vals"
)

func TestPrint(t *testing.T) {
	Test(t,
		That(`(print "Hello" 1 #t (list 1 2))`).
			Puts(vals.Str("Hello 1 true (1 2)")).Prints("Hello 1 true (1 2)\n"),
		That("(print)").Puts(vals.Str("")).Prints("\n"),
	)
}

func TestSum(t *testing.T) {
	Test(t,
		That("(sum 1 2 3)").Puts(vals.Int(6)),
		That("(sum)").Puts(vals.Int(0)),
		That("(sum 1 (list 2 3) 4)").Puts(vals.Int(10)),
		That("(sum -5 2)").Puts(vals.Int(-3)),
		That(`(sum 1 "x")`).Throws(ErrorWithMessage("cannot sum non-integer value: x")),
		That(`(sum (list 1 "y"))`).Throws(ErrorWithMessage("cannot sum non-integer value: y")),
	)
}

func TestMultiply(t *testing.T) {
	Test(t,
		That("(multiply 6 7)").Puts(vals.Int(42)),
		That("(multiply -2 (sum 1 2))").Puts(vals.Int(-6)),
		That("(multiply 6)").Throws(errs.ArityMismatch{
			What: "arguments to multiply", ValidLow: 2, ValidHigh: 2, Actual: 1}),
		That(`(multiply 6 "7")`).Throws(ErrorWithMessage("expected integer, got: 7")),
	)
}

func TestConcat(t *testing.T) {
	Test(t,
		That(`(concat "Hello" " " "World")`).Puts(vals.Str("Hello World")),
		That(`(concat "a" 1 #f (list 1 2))`).Puts(vals.Str("a1false(1 2)")),
		That("(concat)").Puts(vals.Str("")),
	)
}

func TestListCommands(t *testing.T) {
	Test(t,
		That(`(list 1 "a" (list))`).Puts(vals.MakeList(vals.Int(1), vals.Str("a"), vals.MakeList())),
		That("(list)").Puts(vals.MakeList()),

		That("(list-first (list 1 2 3))").Puts(vals.Int(1)),
		That("(list-first (list))").Puts(vals.Nil),
		That("(list-first 1)").Throws(errs.BadValue{
			What: "argument to list-first", Valid: "list", Actual: "int"}),
		That("(list-first)").ThrowsMessage("arity mismatch"),

		That("(list-rest (list 1 2 3))").Puts(vals.Ints(2, 3)),
		That("(list-rest (list 1))").Puts(vals.MakeList()),
		That("(list-rest (list))").Puts(vals.MakeList()),
		That(`(list-rest "abc")`).ThrowsMessage("must be list"),

		That("(list-len (list 1 2 3))").Puts(vals.Int(3)),
		That("(list-len (list))").Puts(vals.Int(0)),
	)
}

func TestPipe(t *testing.T) {
	Test(t,
		That(`(pipe (sum 1 2) (list "multiply" 10))`).Puts(vals.Int(30)),
		That(`(pipe 5 (list "sum" 1) (list) (list "list"))`).Puts(vals.Ints(6)),
		That(`(pipe "x" (list "concat" "a" "b") (list "print" "got"))`).
			Puts(vals.Str("got abx")).Prints("got abx\n"),
		// Stages are evaluated again, so nested lists are command calls.
		That(`(pipe 0 (list "sum" (list "multiply" 2 3) 1))`).Puts(vals.Int(7)),
		That(`(pipe 2 (list "multiply" (list "sum" 1 (list "sum" 1 1))))`).Puts(vals.Int(6)),
		// The previous result is passed as a value, not evaluated again.
		That(`(pipe (list 1 2) (list "list-len"))`).Puts(vals.Int(2)),
		That(`(pipe 1 (list "sum" (list "nope")))`).Throws(ErrorWithMessage("unknown command: nope")),
		That("(pipe 7)").Puts(vals.Int(7)),
		That("(pipe)").Puts(vals.Nil),
		That("(pipe 1 2)").Throws(ErrorWithMessage("pipe arguments must be command lists")),
		That(`(pipe 1 (list "nope"))`).Throws(ErrorWithMessage("unknown command: nope")),
		That(`(pipe 1 (list 2))`).Throws(ErrorWithMessage("first element of a list must be a command name")),
	)
}

func TestEvalStringCommand(t *testing.T) {
	Test(t,
		That(`(eval-string "(sum 1 2) (multiply 2 3)")`).Puts(vals.Int(6)),
		That(`(eval-string "")`).Puts(vals.Nil),
		That(`(eval-string 1)`).Throws(ErrorWithMessage("expected string, got: 1")),
		That(`(eval-string "(sum")`).Throws(AnyParseError),
	)
}
