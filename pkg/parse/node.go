package parse

import (
	"strconv"
	"strings"

	"src.dpm.sh/pkg/diag"
)

// Node is a node in the syntax tree. It is either a *Literal or a *Form.
type Node interface {
	diag.Ranger
	// String returns the source representation of the node, which reads back
	// as an equal node.
	String() string
	node()
}

// LiteralKind is the kind of a Literal.
type LiteralKind int

// Possible values for LiteralKind.
const (
	IntLiteral LiteralKind = iota
	FloatLiteral
	StringLiteral
	BoolLiteral
	SymbolLiteral
	NilLiteral
	CharLiteral
	KeywordLiteral
)

var literalKindNames = [...]string{
	IntLiteral:     "integer",
	FloatLiteral:   "float",
	StringLiteral:  "string",
	BoolLiteral:    "boolean",
	SymbolLiteral:  "symbol",
	NilLiteral:     "nil",
	CharLiteral:    "character",
	KeywordLiteral: "keyword",
}

func (k LiteralKind) String() string {
	if 0 <= k && int(k) < len(literalKindNames) {
		return literalKindNames[k]
	}
	return "LiteralKind(" + strconv.Itoa(int(k)) + ")"
}

// Literal is an atomic datum. Only the field matching Kind is meaningful; Text
// holds the value of strings, the name of symbols and keywords, and the
// character of char literals.
type Literal struct {
	diag.Ranging
	Kind  LiteralKind
	Int   int64
	Float float64
	Bool  bool
	Text  string
}

func (*Literal) node() {}

func (l *Literal) String() string {
	switch l.Kind {
	case IntLiteral:
		return strconv.FormatInt(l.Int, 10)
	case FloatLiteral:
		s := strconv.FormatFloat(l.Float, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEn") {
			s += ".0"
		}
		return s
	case StringLiteral:
		return Quote(l.Text)
	case BoolLiteral:
		if l.Bool {
			return "#t"
		}
		return "#f"
	case SymbolLiteral:
		return l.Text
	case NilLiteral:
		return "()"
	case CharLiteral:
		return `#\` + l.Text
	case KeywordLiteral:
		return "#:" + l.Text
	}
	return "#<" + l.Kind.String() + ">"
}

// Form is a parenthesized sequence. Items holds the elements; Tail is non-nil
// for an improper (dotted) form like (a b . c).
type Form struct {
	diag.Ranging
	Items []Node
	Tail  Node
}

func (*Form) node() {}

func (f *Form) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, item := range f.Items {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(item.String())
	}
	if f.Tail != nil {
		sb.WriteString(" . ")
		sb.WriteString(f.Tail.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// Head returns the first item of the form, or nil if the form is empty.
func (f *Form) Head() Node {
	if len(f.Items) == 0 {
		return nil
	}
	return f.Items[0]
}

// Constructors for nodes that don't come from source code, for example when a
// value is converted back into syntax. The nodes have zero ranges.

// IntNode returns an integer literal.
func IntNode(i int64) *Literal { return &Literal{Kind: IntLiteral, Int: i} }

// FloatNode returns a float literal.
func FloatNode(f float64) *Literal { return &Literal{Kind: FloatLiteral, Float: f} }

// StringNode returns a string literal.
func StringNode(s string) *Literal { return &Literal{Kind: StringLiteral, Text: s} }

// BoolNode returns a boolean literal.
func BoolNode(b bool) *Literal { return &Literal{Kind: BoolLiteral, Bool: b} }

// SymbolNode returns a symbol.
func SymbolNode(name string) *Literal { return &Literal{Kind: SymbolLiteral, Text: name} }

// NilNode returns the nil literal.
func NilNode() *Literal { return &Literal{Kind: NilLiteral} }

// FormNode returns a proper form with the given items.
func FormNode(items ...Node) *Form { return &Form{Items: items} }

// IsSymbol reports whether n is a symbol, and returns its name if it is.
func IsSymbol(n Node) (string, bool) {
	if l, ok := n.(*Literal); ok && l.Kind == SymbolLiteral {
		return l.Text, true
	}
	return "", false
}

// Equal reports whether two nodes are structurally equal, ignoring source
// ranges.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a := a.(type) {
	case *Literal:
		b, ok := b.(*Literal)
		if !ok || a.Kind != b.Kind {
			return false
		}
		switch a.Kind {
		case IntLiteral:
			return a.Int == b.Int
		case FloatLiteral:
			return a.Float == b.Float
		case BoolLiteral:
			return a.Bool == b.Bool
		case NilLiteral:
			return true
		default:
			return a.Text == b.Text
		}
	case *Form:
		b, ok := b.(*Form)
		if !ok || len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return Equal(a.Tail, b.Tail)
	}
	return false
}
