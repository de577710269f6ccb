// Package str provides string commands backed by Go's strings package.
package str

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"src.dpm.sh/pkg/eval"
	"src.dpm.sh/pkg/eval/errs"
	"src.dpm.sh/pkg/eval/vals"
)

// Tag groups the string commands in help output.
var Tag = eval.Tag{Name: "str", Order: 600, Text: "String Library"}

type strFn struct {
	name, desc, syntax, examples string
	fn                           func([]vals.Value, *eval.Context) (vals.Value, error)
}

var fns = []strFn{
	{"str-compare", "Compare two strings, returning -1, 0 or 1", "(str-compare a b)",
		"  (str-compare \"a\" \"b\")  ; Returns -1", strStrInt("str-compare", strings.Compare)},
	{"str-contains", "Check whether a string contains a substring", "(str-contains s substr)",
		"  (str-contains \"abcd\" \"bc\")  ; Returns #t", strStrBool("str-contains", strings.Contains)},
	{"str-contains-any", "Check whether a string contains any of the given characters", "(str-contains-any s chars)",
		"  (str-contains-any \"abcd\" \"xby\")  ; Returns #t", strStrBool("str-contains-any", strings.ContainsAny)},
	{"str-count", "Count non-overlapping instances of a substring", "(str-count s substr)",
		"  (str-count \"abcdefabcdef\" \"bc\")  ; Returns 2", strStrInt("str-count", strings.Count)},
	{"str-equal-fold", "Compare two strings ignoring case", "(str-equal-fold a b)",
		"  (str-equal-fold \"ABC\" \"abc\")  ; Returns #t", strStrBool("str-equal-fold", strings.EqualFold)},
	{"str-has-prefix", "Check whether a string starts with a prefix", "(str-has-prefix s prefix)",
		"  (str-has-prefix \"foobar\" \"foo\")  ; Returns #t", strStrBool("str-has-prefix", strings.HasPrefix)},
	{"str-has-suffix", "Check whether a string ends with a suffix", "(str-has-suffix s suffix)",
		"  (str-has-suffix \"foo.rs\" \".rs\")  ; Returns #t", strStrBool("str-has-suffix", strings.HasSuffix)},
	{"str-index", "Get the byte index of the first instance of a substring, or -1", "(str-index s substr)",
		"  (str-index \"chicken\" \"ken\")  ; Returns 4", strStrInt("str-index", strings.Index)},
	{"str-last-index", "Get the byte index of the last instance of a substring, or -1", "(str-last-index s substr)",
		"  (str-last-index \"go gopher\" \"go\")  ; Returns 3", strStrInt("str-last-index", strings.LastIndex)},
	{"str-to-lower", "Convert a string to lower case", "(str-to-lower s)",
		"  (str-to-lower \"ABC\")  ; Returns \"abc\"", strStr("str-to-lower", strings.ToLower)},
	{"str-to-upper", "Convert a string to upper case", "(str-to-upper s)",
		"  (str-to-upper \"abc\")  ; Returns \"ABC\"", strStr("str-to-upper", strings.ToUpper)},
	{"str-trim-space", "Remove leading and trailing white space", "(str-trim-space s)",
		"  (str-trim-space \"  a b \")  ; Returns \"a b\"", strStr("str-trim-space", strings.TrimSpace)},
	{"str-trim", "Remove leading and trailing characters in a cutset", "(str-trim s cutset)",
		"  (str-trim \"¡¡¡Hello!!!\" \"!¡\")  ; Returns \"Hello\"", strStrStr("str-trim", strings.Trim)},
	{"str-trim-left", "Remove leading characters in a cutset", "(str-trim-left s cutset)",
		"  (str-trim-left \"xxabc\" \"x\")  ; Returns \"abc\"", strStrStr("str-trim-left", strings.TrimLeft)},
	{"str-trim-right", "Remove trailing characters in a cutset", "(str-trim-right s cutset)",
		"  (str-trim-right \"abcxx\" \"x\")  ; Returns \"abc\"", strStrStr("str-trim-right", strings.TrimRight)},
	{"str-trim-prefix", "Remove a leading prefix", "(str-trim-prefix s prefix)",
		"  (str-trim-prefix \"v1.2.3\" \"v\")  ; Returns \"1.2.3\"", strStrStr("str-trim-prefix", strings.TrimPrefix)},
	{"str-trim-suffix", "Remove a trailing suffix", "(str-trim-suffix s suffix)",
		"  (str-trim-suffix \"main.rs\" \".rs\")  ; Returns \"main\"", strStrStr("str-trim-suffix", strings.TrimSuffix)},
	{"str-join", "Join a list of strings with a separator", "(str-join sep list)",
		"  (str-join \",\" (list \"a\" \"b\"))  ; Returns \"a,b\"", join},
	{"str-split", "Split a string around a separator", "(str-split sep s [max])",
		"  (str-split \",\" \"a,b,c\")    ; Returns (\"a\" \"b\" \"c\")\n" +
			"  (str-split \",\" \"a,b,c\" 2)  ; Returns (\"a\" \"b,c\")", split},
	{"str-replace", "Replace instances of a substring", "(str-replace old new s [max])",
		"  (str-replace \"o\" \"0\" \"foo\")    ; Returns \"f00\"\n" +
			"  (str-replace \"o\" \"0\" \"foo\" 1)  ; Returns \"f0o\"", replace},
	{"str-repeat", "Repeat a string a number of times", "(str-repeat s n)",
		"  (str-repeat \"ab\" 3)  ; Returns \"ababab\"", repeat},
	{"str-from-codepoints", "Build a string from Unicode codepoints", "(str-from-codepoints n ...)",
		"  (str-from-codepoints 72 105)  ; Returns \"Hi\"", fromCodepoints},
	{"str-to-codepoints", "Get the Unicode codepoints of a string", "(str-to-codepoints s)",
		"  (str-to-codepoints \"Hi\")  ; Returns (72 105)", toCodepoints},
}

// Commands returns the string commands.
func Commands() []eval.Command {
	cmds := make([]eval.Command, len(fns))
	for i, f := range fns {
		cmds[i] = eval.NewFunc(f.name, f.desc, f.fn).WithHelp(f.syntax, f.examples).WithTag(Tag)
	}
	return cmds
}

func strStr(name string, f func(string) string) func([]vals.Value, *eval.Context) (vals.Value, error) {
	return func(args []vals.Value, _ *eval.Context) (vals.Value, error) {
		ss, err := eval.StrArgs(name, "argument", 1, 1, args)
		if err != nil {
			return nil, err
		}
		return vals.Str(f(ss[0])), nil
	}
}

func strStrStr(name string, f func(string, string) string) func([]vals.Value, *eval.Context) (vals.Value, error) {
	return func(args []vals.Value, _ *eval.Context) (vals.Value, error) {
		ss, err := eval.StrArgs(name, "argument", 2, 2, args)
		if err != nil {
			return nil, err
		}
		return vals.Str(f(ss[0], ss[1])), nil
	}
}

func strStrBool(name string, f func(string, string) bool) func([]vals.Value, *eval.Context) (vals.Value, error) {
	return func(args []vals.Value, _ *eval.Context) (vals.Value, error) {
		ss, err := eval.StrArgs(name, "argument", 2, 2, args)
		if err != nil {
			return nil, err
		}
		return vals.Bool(f(ss[0], ss[1])), nil
	}
}

func strStrInt(name string, f func(string, string) int) func([]vals.Value, *eval.Context) (vals.Value, error) {
	return func(args []vals.Value, _ *eval.Context) (vals.Value, error) {
		ss, err := eval.StrArgs(name, "argument", 2, 2, args)
		if err != nil {
			return nil, err
		}
		return vals.Int(f(ss[0], ss[1])), nil
	}
}

// optMax returns the optional integer argument at index i, or -1 if absent.
func optMax(name string, args []vals.Value, i int) (int, error) {
	if len(args) <= i {
		return -1, nil
	}
	n, ok := args[i].(vals.Int)
	if !ok {
		return 0, errs.BadValue{What: name + " max", Valid: "integer", Actual: vals.Kind(args[i])}
	}
	return int(n), nil
}

func join(args []vals.Value, _ *eval.Context) (vals.Value, error) {
	if err := errs.CheckArity("arguments to str-join", 2, 2, len(args)); err != nil {
		return nil, err
	}
	sep, err := eval.StrArg("str-join", "separator", args[0])
	if err != nil {
		return nil, err
	}
	l, ok := args[1].(vals.List)
	if !ok {
		return nil, errs.BadValue{What: "str-join list", Valid: "list", Actual: vals.Kind(args[1])}
	}
	parts := make([]string, l.Len())
	for i, v := range l.Items() {
		s, ok := v.(vals.Str)
		if !ok {
			return nil, errs.BadValue{
				What: "input to str-join", Valid: "string", Actual: vals.Kind(v)}
		}
		parts[i] = string(s)
	}
	return vals.Str(strings.Join(parts, sep)), nil
}

func split(args []vals.Value, _ *eval.Context) (vals.Value, error) {
	if err := errs.CheckArity("arguments to str-split", 2, 3, len(args)); err != nil {
		return nil, err
	}
	ss, err := eval.StrArgs("str-split", "argument", 2, 2, args[:2])
	if err != nil {
		return nil, err
	}
	limit, err := optMax("str-split", args, 2)
	if err != nil {
		return nil, err
	}
	return vals.Strings(strings.SplitN(ss[1], ss[0], limit)...), nil
}

func replace(args []vals.Value, _ *eval.Context) (vals.Value, error) {
	if err := errs.CheckArity("arguments to str-replace", 3, 4, len(args)); err != nil {
		return nil, err
	}
	ss, err := eval.StrArgs("str-replace", "argument", 3, 3, args[:3])
	if err != nil {
		return nil, err
	}
	limit, err := optMax("str-replace", args, 3)
	if err != nil {
		return nil, err
	}
	return vals.Str(strings.Replace(ss[2], ss[0], ss[1], limit)), nil
}

func repeat(args []vals.Value, _ *eval.Context) (vals.Value, error) {
	if err := errs.CheckArity("arguments to str-repeat", 2, 2, len(args)); err != nil {
		return nil, err
	}
	s, err := eval.StrArg("str-repeat", "argument", args[0])
	if err != nil {
		return nil, err
	}
	n, ok := args[1].(vals.Int)
	if !ok || n < 0 {
		return nil, errs.BadValue{
			What: "str-repeat count", Valid: "non-negative integer", Actual: vals.Repr(args[1])}
	}
	return vals.Str(strings.Repeat(s, int(n))), nil
}

func fromCodepoints(args []vals.Value, _ *eval.Context) (vals.Value, error) {
	var b strings.Builder
	for _, arg := range args {
		num, ok := arg.(vals.Int)
		if !ok {
			return nil, errs.BadValue{
				What: "argument to str-from-codepoints", Valid: "integer", Actual: vals.Kind(arg)}
		}
		if num < 0 || num > unicode.MaxRune {
			return nil, errs.OutOfRange{
				What: "codepoint", ValidLow: 0, ValidHigh: unicode.MaxRune, Actual: hex(int64(num))}
		}
		if !utf8.ValidRune(rune(num)) {
			return nil, errs.BadValue{
				What:   "argument to str-from-codepoints",
				Valid:  "valid Unicode codepoint",
				Actual: hex(int64(num)),
			}
		}
		b.WriteRune(rune(num))
	}
	return vals.Str(b.String()), nil
}

func hex(i int64) string {
	if i < 0 {
		return "-0x" + strconv.FormatInt(-i, 16)
	}
	return "0x" + strconv.FormatInt(i, 16)
}

func toCodepoints(args []vals.Value, _ *eval.Context) (vals.Value, error) {
	ss, err := eval.StrArgs("str-to-codepoints", "argument", 1, 1, args)
	if err != nil {
		return nil, err
	}
	var cps []int64
	for _, r := range ss[0] {
		cps = append(cps, int64(r))
	}
	return vals.Ints(cps...), nil
}
