// Package re provides regular expression commands backed by Go's regexp
// package.
package re

import (
	"regexp"

	"src.dpm.sh/pkg/eval"
	"src.dpm.sh/pkg/eval/errs"
	"src.dpm.sh/pkg/eval/vals"
	"src.dpm.sh/pkg/mods/str"
)

// Commands returns the regular expression commands. They share the help
// group of the string commands.
func Commands() []eval.Command {
	return []eval.Command{
		eval.NewFunc("re-quote", "Quote a string so that it matches literally", quote).
			WithHelp("(re-quote s)", "  (re-quote \"a.b\")  ; Returns \"a\\\\.b\"").
			WithTag(str.Tag),
		eval.NewFunc("re-match", "Check whether a string matches a pattern", match).
			WithHelp("(re-match pattern s)", "  (re-match \"^v[0-9]+\" \"v12\")  ; Returns #t").
			WithTag(str.Tag),
		eval.NewFunc("re-find", "Find matches of a pattern; each match is a list of the text and its groups", find).
			WithHelp("(re-find pattern s [max])",
				"  (re-find \"(\\\\w+)=(\\\\w+)\" \"a=1 b=2\")  ; Returns ((\"a=1\" \"a\" \"1\") (\"b=2\" \"b\" \"2\"))").
			WithTag(str.Tag),
		eval.NewFunc("re-replace", "Replace matches of a pattern; $1 in the replacement refers to a group", replace).
			WithHelp("(re-replace pattern repl s)",
				"  (re-replace \"(\\\\d+)\" \"<$1>\" \"a1b22\")  ; Returns \"a<1>b<22>\"").
			WithTag(str.Tag),
		eval.NewFunc("re-split", "Split a string around matches of a pattern", split).
			WithHelp("(re-split pattern s [max])", "  (re-split \"[,;]\" \"a,b;c\")  ; Returns (\"a\" \"b\" \"c\")").
			WithTag(str.Tag),
	}
}

func quote(args []vals.Value, _ *eval.Context) (vals.Value, error) {
	ss, err := eval.StrArgs("re-quote", "argument", 1, 1, args)
	if err != nil {
		return nil, err
	}
	return vals.Str(regexp.QuoteMeta(ss[0])), nil
}

func match(args []vals.Value, _ *eval.Context) (vals.Value, error) {
	ss, err := eval.StrArgs("re-match", "argument", 2, 2, args)
	if err != nil {
		return nil, err
	}
	pattern, err := regexp.Compile(ss[0])
	if err != nil {
		return nil, err
	}
	return vals.Bool(pattern.MatchString(ss[1])), nil
}

// patternAndSource parses the (pattern source [max]) arguments shared by
// re-find and re-split.
func patternAndSource(name string, args []vals.Value) (*regexp.Regexp, string, int, error) {
	if err := errs.CheckArity("arguments to "+name, 2, 3, len(args)); err != nil {
		return nil, "", 0, err
	}
	ss, err := eval.StrArgs(name, "argument", 2, 2, args[:2])
	if err != nil {
		return nil, "", 0, err
	}
	limit := -1
	if len(args) == 3 {
		n, ok := args[2].(vals.Int)
		if !ok {
			return nil, "", 0, errs.BadValue{What: name + " max", Valid: "integer", Actual: vals.Kind(args[2])}
		}
		limit = int(n)
	}
	pattern, err := regexp.Compile(ss[0])
	if err != nil {
		return nil, "", 0, err
	}
	return pattern, ss[1], limit, nil
}

func find(args []vals.Value, _ *eval.Context) (vals.Value, error) {
	pattern, source, limit, err := patternAndSource("re-find", args)
	if err != nil {
		return nil, err
	}
	var matches []vals.Value
	for _, m := range pattern.FindAllStringSubmatchIndex(source, limit) {
		groups := make([]vals.Value, 0, len(m)/2)
		for i := 0; i < len(m); i += 2 {
			// Groups that did not participate in the match have negative
			// indices.
			if m[i] < 0 {
				groups = append(groups, vals.Nil)
			} else {
				groups = append(groups, vals.Str(source[m[i]:m[i+1]]))
			}
		}
		matches = append(matches, vals.MakeList(groups...))
	}
	return vals.MakeList(matches...), nil
}

func replace(args []vals.Value, _ *eval.Context) (vals.Value, error) {
	ss, err := eval.StrArgs("re-replace", "argument", 3, 3, args)
	if err != nil {
		return nil, err
	}
	pattern, err := regexp.Compile(ss[0])
	if err != nil {
		return nil, err
	}
	return vals.Str(pattern.ReplaceAllString(ss[2], ss[1])), nil
}

func split(args []vals.Value, _ *eval.Context) (vals.Value, error) {
	pattern, source, limit, err := patternAndSource("re-split", args)
	if err != nil {
		return nil, err
	}
	return vals.Strings(pattern.Split(source, limit)...), nil
}
