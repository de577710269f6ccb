// Package parse implements the reader for dpm's S-expression syntax.
//
// A program is a sequence of datums. Each top-level datum is normally a form
// like (command arg1 arg2); atoms evaluate to themselves.
package parse

import (
	"fmt"
	"strings"

	"src.dpm.sh/pkg/diag"
)

// Source describes a piece of source code.
type Source struct {
	Name string
	Code string
}

// SourceForTest returns a Source used for testing.
func SourceForTest(code string) Source {
	return Source{Name: "[test]", Code: code}
}

const errorType = "parse error"

// Error is the type of all errors returned by this package.
type Error = diag.Error

func newError(src Source, r diag.Ranging, format string, args ...any) *Error {
	return &Error{
		Type:    errorType,
		Message: fmt.Sprintf(format, args...),
		Context: *diag.NewContext(src.Name, src.Code, r),
	}
}

// UnpackErrors returns the parse errors contained in err.
func UnpackErrors(err error) []*Error {
	var errs []*Error
	for _, e := range diag.UnpackErrors(err) {
		if e.Type == errorType {
			errs = append(errs, e)
		}
	}
	return errs
}

// Parse parses all the datums in src after normalizing it: ; comments outside
// string literals are removed, every line is trimmed, and the non-empty lines
// are joined with single spaces. Ranges in the returned nodes and errors refer
// to the original source.
//
// Input that consists only of whitespace and comments parses to no nodes and
// no error.
func Parse(src Source) ([]Node, error) {
	code, offsets := normalize(src.Code)
	if code == "" {
		return nil, nil
	}
	nodes, err := ParseRaw(Source{Name: src.Name, Code: code})
	if err != nil {
		if e, ok := err.(*Error); ok {
			e.Context = *diag.NewContext(src.Name, src.Code, offsets.mapRange(e.Context.Ranging))
		}
		return nil, err
	}
	for _, n := range nodes {
		offsets.remap(n)
	}
	return nodes, nil
}

// ParseRaw parses all the datums in src without normalizing it.
//
// The whole trimmed input is first read as a single datum. If that fails, the
// input is scanned character by character, keeping track of parenthesis
// depth and string literals; every time the depth returns to zero, the text
// accumulated so far is read as one datum.
func ParseRaw(src Source) ([]Node, error) {
	from, to := trimmedBounds(src.Code)
	if from == to {
		return nil, nil
	}
	if n, err := parseOneAt(src, from, to); err == nil && n != nil {
		return []Node{n}, nil
	}

	var nodes []Node
	code := src.Code
	bufStart := from
	depth := 0
	inString, escapeNext := false, false
	for i := from; i < to; i++ {
		if escapeNext {
			escapeNext = false
			continue
		}
		switch c := code[i]; {
		case c == '\\' && inString:
			escapeNext = true
		case c == '"':
			inString = !inString
		case c == '(' && !inString:
			depth++
		case c == ')' && !inString:
			if depth == 0 {
				f, t := trimmedBounds(code[bufStart:to])
				return nil, newError(src, diag.Ranging{From: i, To: i + 1},
					"unbalanced parentheses: %s", code[bufStart+f:bufStart+t])
			}
			depth--
			if depth == 0 {
				f, t := trimmedBounds(code[bufStart : i+1])
				n, err := parseOneAt(src, bufStart+f, bufStart+t)
				if err != nil {
					return nil, newError(src, err.Range(), "in expression '%s': %s",
						code[bufStart+f:bufStart+t], err.Message)
				}
				if n != nil {
					nodes = append(nodes, n)
				}
				bufStart = i + 1
			}
		}
	}

	f, t := trimmedBounds(code[bufStart:to])
	if f < t {
		rg := diag.Ranging{From: bufStart + f, To: bufStart + t}
		if depth != 0 {
			return nil, newError(src, rg, "unbalanced parentheses: %s", code[rg.From:rg.To])
		}
		n, err := parseOneAt(src, rg.From, rg.To)
		if err != nil {
			return nil, err
		}
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	if len(nodes) == 0 {
		return nil, newError(src, diag.Ranging{From: from, To: to}, "no valid expressions found")
	}
	return nodes, nil
}

// ParseOne reads exactly one datum from src. Surrounding whitespace and
// comments are allowed.
func ParseOne(src Source) (Node, error) {
	n, err := parseOneAt(src, 0, len(src.Code))
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, newError(src, diag.PointRanging(len(src.Code)), "unexpected end of input")
	}
	return n, nil
}

// parseOneAt reads one datum from src.Code[from:to]. It returns a nil Node and
// a nil error if the range only contains whitespace and comments.
func parseOneAt(src Source, from, to int) (Node, *Error) {
	r := &reader{src: src, pos: from, end: to}
	r.skipSpace()
	if r.eof() {
		return nil, nil
	}
	n, err := r.readDatum()
	if err != nil {
		return nil, err
	}
	r.skipSpace()
	if !r.eof() {
		return nil, r.errorf(r.pos, to, "trailing characters")
	}
	return n, nil
}

func trimmedBounds(s string) (int, int) {
	from := len(s) - len(strings.TrimLeft(s, " \t\n\r\f\v"))
	to := len(strings.TrimRight(s, " \t\n\r\f\v"))
	if to < from {
		to = from
	}
	return from, to
}
