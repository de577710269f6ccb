package glob

import "unicode/utf8"

// Match reports whether name matches the pattern in its entirety.
func Match(pattern, name string) bool {
	return Parse(pattern).Match(name)
}

// Match reports whether name matches the pattern in its entirety.
func (p Pattern) Match(name string) bool {
	return matchSegments(p.Segments, name)
}

func matchSegments(segs []Segment, name string) bool {
	if len(segs) == 0 {
		return name == ""
	}
segs:
	for len(segs) > 0 {
		// Find a chunk. A chunk is an optional Star followed by a run of
		// fixed-length segments (Literal and Question).
		var i int
		for i = 1; i < len(segs); i++ {
			if IsWild1(segs[i], Star) {
				break
			}
		}

		chunk := segs[:i]
		startsWithStar := IsWild1(chunk[0], Star)
		if startsWithStar {
			chunk = chunk[1:]
		}
		segs = segs[i:]

		// Match at the current position. If this is the last chunk, we need to
		// make sure name is exhausted by the matching.
		ok, rest := matchFixedLength(chunk, name)
		if ok && (rest == "" || len(segs) > 0) {
			name = rest
			continue
		}

		if startsWithStar {
			for i, r := range name {
				j := i + utf8.RuneLen(r)
				// Match name[:j] with the starting *, and the rest with chunk.
				ok, rest := matchFixedLength(chunk, name[j:])
				if ok && (rest == "" || len(segs) > 0) {
					name = rest
					continue segs
				}
			}
		}
		return false
	}
	return name == ""
}

// matchFixedLength returns whether a run of fixed-length segments (Literal and
// Question) matches a prefix of name. It returns whether the match is
// successful and if if it is, the remaining part of name.
func matchFixedLength(segs []Segment, name string) (bool, string) {
	for _, seg := range segs {
		switch seg := seg.(type) {
		case Literal:
			n := len(seg.Data)
			if len(name) < n || name[:n] != seg.Data {
				return false, ""
			}
			name = name[n:]
		case Wild:
			if seg.Type != Question {
				panic("matchFixedLength given non-question wild segment")
			}
			if name == "" {
				return false, ""
			}
			_, n := utf8.DecodeRuneInString(name)
			name = name[n:]
		}
	}
	return true, name
}
