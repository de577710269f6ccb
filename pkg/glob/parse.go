package glob

import "strings"

// Parse parses a pattern. Parsing never fails: a trailing backslash stands
// for itself.
func Parse(s string) Pattern {
	var segs []Segment
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, Literal{lit.String()})
			lit.Reset()
		}
	}

	rs := []rune(s)
	for i := 0; i < len(rs); i++ {
		switch r := rs[i]; r {
		case '?':
			flush()
			segs = append(segs, Wild{Question})
		case '*':
			flush()
			// A run of stars matches the same as one star.
			for i+1 < len(rs) && rs[i+1] == '*' {
				i++
			}
			segs = append(segs, Wild{Star})
		case '\\':
			if i+1 < len(rs) {
				i++
			}
			lit.WriteRune(rs[i])
		default:
			lit.WriteRune(r)
		}
	}
	flush()
	if segs == nil {
		segs = []Segment{}
	}
	return Pattern{segs}
}
