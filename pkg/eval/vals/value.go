// Package vals contains the value model of the interpreter.
//
// A Value is one of Int, Str, Bool, List and Nil. The set is closed: no other
// package can add a variant.
package vals

import (
	"strconv"
	"strings"

	"src.dpm.sh/pkg/parse"
)

// Value is a runtime value.
type Value interface {
	// Kind returns the name of the variant.
	Kind() string
	// String returns the display form of the value, as printed by commands
	// like print.
	String() string
	// Repr returns a form of the value that reads back as an equal value.
	Repr() string
	value()
}

// Int is a 64-bit signed integer.
type Int int64

// Str is a string.
type Str string

// Bool is a boolean.
type Bool bool

// NilType is the type of Nil.
type NilType struct{}

// Nil is the absence of a value. It is the result of evaluating an empty
// program.
var Nil = NilType{}

// List is an ordered sequence of values. The zero value is an empty list.
// Lists never share their backing storage: MakeList and Items both copy.
type List struct {
	elems []Value
}

func (Int) value()     {}
func (Str) value()     {}
func (Bool) value()    {}
func (NilType) value() {}
func (List) value()    {}

func (Int) Kind() string     { return "int" }
func (Str) Kind() string     { return "string" }
func (Bool) Kind() string    { return "bool" }
func (NilType) Kind() string { return "nil" }
func (List) Kind() string    { return "list" }

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }
func (s Str) String() string { return string(s) }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (NilType) String() string { return "nil" }
func (l List) String() string  { return l.join(Value.String) }

func (i Int) Repr() string { return i.String() }
func (s Str) Repr() string { return parse.Quote(string(s)) }
func (b Bool) Repr() string {
	if b {
		return "#t"
	}
	return "#f"
}
func (NilType) Repr() string { return "#nil" }
func (l List) Repr() string  { return l.join(Value.Repr) }

func (l List) join(f func(Value) string) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, v := range l.elems {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(f(v))
	}
	sb.WriteByte(')')
	return sb.String()
}

// MakeList returns a List containing deep copies of the given values.
func MakeList(vs ...Value) List {
	if len(vs) == 0 {
		return List{}
	}
	elems := make([]Value, len(vs))
	for i, v := range vs {
		elems[i] = Copy(v)
	}
	return List{elems}
}

// Len returns the number of elements.
func (l List) Len() int { return len(l.elems) }

// Index returns the i-th element. It panics if i is out of range.
func (l List) Index(i int) Value { return l.elems[i] }

// Items returns a copy of the elements.
func (l List) Items() []Value {
	if len(l.elems) == 0 {
		return nil
	}
	vs := make([]Value, len(l.elems))
	for i, v := range l.elems {
		vs[i] = Copy(v)
	}
	return vs
}

// Copy returns a deep copy of v. A nil Value is turned into Nil.
func Copy(v Value) Value {
	switch v := v.(type) {
	case nil:
		return Nil
	case List:
		return MakeList(v.elems...)
	default:
		return v
	}
}

// Kind returns the kind of v. A nil Value has kind "nil".
func Kind(v Value) string {
	if v == nil {
		return Nil.Kind()
	}
	return v.Kind()
}

// ToString returns the display form of v: integers in decimal, strings as is,
// booleans as true or false, lists as (a b c) and Nil as nil.
func ToString(v Value) string {
	if v == nil {
		return Nil.String()
	}
	return v.String()
}

// Repr returns the re-readable form of v. Note that the empty list is shown
// as (), which reads back as Nil.
func Repr(v Value) string {
	if v == nil {
		return Nil.Repr()
	}
	return v.Repr()
}

// Truthy reports whether v counts as true. Nil, Int(0) and Bool(false) are
// false; everything else, including the empty string and the empty list, is
// true.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case nil, NilType:
		return false
	case Int:
		return v != 0
	case Bool:
		return bool(v)
	default:
		return true
	}
}

// Equal reports whether two values are structurally equal. A nil Value is
// equal to Nil.
func Equal(a, b Value) bool {
	if a == nil {
		a = Nil
	}
	if b == nil {
		b = Nil
	}
	switch a := a.(type) {
	case List:
		b, ok := b.(List)
		if !ok || len(a.elems) != len(b.elems) {
			return false
		}
		for i := range a.elems {
			if !Equal(a.elems[i], b.elems[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
