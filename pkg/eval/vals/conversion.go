package vals

import (
	"fmt"
	"math"

	"src.dpm.sh/pkg/parse"
)

// UnsupportedLiteralError is returned by FromNode for literals that have no
// corresponding Value.
type UnsupportedLiteralError struct {
	Literal *parse.Literal
}

func (e *UnsupportedLiteralError) Error() string {
	return fmt.Sprintf("unsupported literal: %s %s", e.Literal.Kind, e.Literal)
}

// FromNode converts a syntax node to a Value. Symbols become strings, forms
// become lists (the tail of a dotted form is appended as the last element) and
// floats are truncated toward zero, saturating at the bounds of Int.
func FromNode(n parse.Node) (Value, error) {
	switch n := n.(type) {
	case *parse.Literal:
		switch n.Kind {
		case parse.IntLiteral:
			return Int(n.Int), nil
		case parse.FloatLiteral:
			return Int(truncate(n.Float)), nil
		case parse.StringLiteral, parse.SymbolLiteral:
			return Str(n.Text), nil
		case parse.BoolLiteral:
			return Bool(n.Bool), nil
		case parse.NilLiteral:
			return Nil, nil
		}
		return nil, &UnsupportedLiteralError{n}
	case *parse.Form:
		elems := make([]Value, 0, len(n.Items)+1)
		for _, item := range n.Items {
			v, err := FromNode(item)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
		if n.Tail != nil {
			v, err := FromNode(n.Tail)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
		return List{elems}, nil
	}
	return nil, fmt.Errorf("unsupported node %T", n)
}

func truncate(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

// ToNode converts a Value to a syntax node. A string at the head of a list is
// converted to a symbol when it is a valid one, so that the resulting form can
// be evaluated as a command call.
func ToNode(v Value) parse.Node {
	switch v := v.(type) {
	case Int:
		return parse.IntNode(int64(v))
	case Str:
		return parse.StringNode(string(v))
	case Bool:
		return parse.BoolNode(bool(v))
	case List:
		items := make([]parse.Node, len(v.elems))
		for i, elem := range v.elems {
			items[i] = ToNode(elem)
		}
		if len(items) > 0 {
			if s, ok := v.elems[0].(Str); ok && parse.IsValidSymbol(string(s)) {
				items[0] = parse.SymbolNode(string(s))
			}
		}
		return parse.FormNode(items...)
	}
	return parse.NilNode()
}

// ToInt returns the integer in v, or an error if v is not an Int.
func ToInt(v Value) (int64, error) {
	if i, ok := v.(Int); ok {
		return int64(i), nil
	}
	return 0, fmt.Errorf("expected integer, got: %s", ToString(v))
}

// ToStr returns the string in v, or an error if v is not a Str.
func ToStr(v Value) (string, error) {
	if s, ok := v.(Str); ok {
		return string(s), nil
	}
	return "", fmt.Errorf("expected string, got: %s", ToString(v))
}

// ToList returns a copy of the elements of v, or an error if v is not a List.
func ToList(v Value) ([]Value, error) {
	if l, ok := v.(List); ok {
		return l.Items(), nil
	}
	return nil, fmt.Errorf("expected list, got: %s", ToString(v))
}

// ToBool returns the boolean in v, or an error if v is not a Bool.
func ToBool(v Value) (bool, error) {
	if b, ok := v.(Bool); ok {
		return bool(b), nil
	}
	return false, fmt.Errorf("expected boolean, got: %s", ToString(v))
}

// Strings returns a List of Str values.
func Strings(ss ...string) List {
	elems := make([]Value, len(ss))
	for i, s := range ss {
		elems[i] = Str(s)
	}
	return List{elems}
}

// Ints returns a List of Int values.
func Ints(is ...int64) List {
	elems := make([]Value, len(is))
	for i, n := range is {
		elems[i] = Int(n)
	}
	return List{elems}
}

// Bools returns a List of Bool values.
func Bools(bs ...bool) List {
	elems := make([]Value, len(bs))
	for i, b := range bs {
		elems[i] = Bool(b)
	}
	return List{elems}
}
