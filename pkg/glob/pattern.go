// Package glob implements wildcard patterns for file names.
//
// A pattern is matched against a single path element. "*" matches any run of
// characters, "?" matches a single character, and a backslash quotes the
// character that follows it. All other characters match themselves.
package glob

// Pattern is a parsed wildcard pattern.
type Pattern struct {
	Segments []Segment
}

// Segment is the building block of Pattern.
type Segment interface {
	isSegment()
}

// Literal is a literal segment.
type Literal struct {
	Data string
}

// Wild is a wildcard segment.
type Wild struct {
	Type WildType
}

// WildType is the type of a Wild.
type WildType int

// Values for WildType.
const (
	Question WildType = iota
	Star
)

func (Literal) isSegment() {}
func (Wild) isSegment()    {}

// IsLiteral returns whether a segment is a Literal.
func IsLiteral(seg Segment) bool {
	_, ok := seg.(Literal)
	return ok
}

// IsWild1 returns whether a segment is a Wild of the given type.
func IsWild1(seg Segment, t WildType) bool {
	w, ok := seg.(Wild)
	return ok && w.Type == t
}

// HasWild returns whether the pattern contains any wildcard.
func (p Pattern) HasWild() bool {
	for _, seg := range p.Segments {
		if !IsLiteral(seg) {
			return true
		}
	}
	return false
}
