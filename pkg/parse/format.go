package parse

import (
	"strings"
	"unicode"

	"src.dpm.sh/pkg/diag"
)

// FormatSexpr turns possibly multi-line code into a single line: ; comments
// outside string literals are removed, lines are trimmed, and the non-empty
// ones are joined with single spaces.
func FormatSexpr(code string) string {
	s, _ := normalize(code)
	return s
}

// Quote returns a string literal that reads back as s.
func Quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case 0:
			sb.WriteString(`\0`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// offsetMap maps byte offsets in normalized code back to the code it was
// derived from. It has one more entry than the normalized code.
type offsetMap []int

func (m offsetMap) at(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(m) {
		return m[len(m)-1]
	}
	return m[i]
}

func (m offsetMap) mapRange(r diag.Ranging) diag.Ranging {
	from := m.at(r.From)
	if r.To <= r.From {
		return diag.Ranging{From: from, To: from}
	}
	return diag.Ranging{From: from, To: m.at(r.To-1) + 1}
}

func (m offsetMap) remap(n Node) {
	switch n := n.(type) {
	case *Literal:
		n.Ranging = m.mapRange(n.Ranging)
	case *Form:
		n.Ranging = m.mapRange(n.Ranging)
		for _, item := range n.Items {
			m.remap(item)
		}
		if n.Tail != nil {
			m.remap(n.Tail)
		}
	}
}

// normalize strips comments and joins trimmed non-empty lines with single
// spaces, recording where each output byte came from.
func normalize(code string) (string, offsetMap) {
	var sb strings.Builder
	var offsets offsetMap
	inString, escapeNext := false, false
	lineStart := 0
	for lineStart <= len(code) {
		lineEnd := strings.IndexByte(code[lineStart:], '\n')
		if lineEnd == -1 {
			lineEnd = len(code)
		} else {
			lineEnd += lineStart
		}
		line := code[lineStart:lineEnd]

		cut := len(line)
		for i := 0; i < len(line); i++ {
			c := line[i]
			if escapeNext {
				escapeNext = false
				continue
			}
			if inString {
				switch c {
				case '\\':
					escapeNext = true
				case '"':
					inString = false
				}
				continue
			}
			if c == '"' {
				inString = true
			} else if c == ';' {
				cut = i
				break
			}
		}
		escapeNext = false

		seg := line[:cut]
		left := len(seg) - len(strings.TrimLeftFunc(seg, unicode.IsSpace))
		seg = strings.TrimSpace(seg)
		if seg != "" {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
				offsets = append(offsets, lineStart-1)
			}
			sb.WriteString(seg)
			for k := 0; k < len(seg); k++ {
				offsets = append(offsets, lineStart+left+k)
			}
		}
		lineStart = lineEnd + 1
	}
	if len(offsets) == 0 {
		offsets = append(offsets, 0)
	} else {
		offsets = append(offsets, offsets[len(offsets)-1]+1)
	}
	return sb.String(), offsets
}
