package parse

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"src.dpm.sh/pkg/diag"
)

// reader reads datums from src.Code[pos:end]. All ranges it produces are
// offsets into src.Code.
type reader struct {
	src Source
	pos int
	end int
}

func (r *reader) errorf(from, to int, format string, args ...any) *Error {
	return newError(r.src, diag.Ranging{From: from, To: to}, format, args...)
}

func (r *reader) eof() bool { return r.pos >= r.end }

func (r *reader) peek() byte { return r.src.Code[r.pos] }

// skipSpace skips whitespace and ; comments.
func (r *reader) skipSpace() {
	for !r.eof() {
		c := r.peek()
		switch {
		case c == ';':
			for !r.eof() && r.peek() != '\n' {
				r.pos++
			}
		case isSpace(c):
			r.pos++
		default:
			return
		}
	}
}

// token returns the run of non-delimiter characters starting at r.pos and
// advances past it.
func (r *reader) token() string {
	start := r.pos
	for !r.eof() && !isDelimiter(r.peek()) {
		r.pos++
	}
	return r.src.Code[start:r.pos]
}

// readDatum reads one datum. The caller must have skipped whitespace and made
// sure there is input left.
func (r *reader) readDatum() (Node, *Error) {
	switch r.peek() {
	case '(':
		return r.readForm()
	case ')':
		return nil, r.errorf(r.pos, r.pos+1, "unexpected ')'")
	case '"':
		return r.readString()
	case '#':
		return r.readHash()
	default:
		return r.readAtom()
	}
}

func (r *reader) readForm() (Node, *Error) {
	start := r.pos
	r.pos++
	var items []Node
	for {
		r.skipSpace()
		if r.eof() {
			return nil, r.errorf(start, r.end, "unterminated list")
		}
		switch c := r.peek(); {
		case c == ')':
			r.pos++
			rg := diag.Ranging{From: start, To: r.pos}
			if len(items) == 0 {
				return &Literal{Ranging: rg, Kind: NilLiteral}, nil
			}
			return &Form{Ranging: rg, Items: items}, nil
		case c == '.' && r.atDot():
			dot := r.pos
			if len(items) == 0 {
				return nil, r.errorf(dot, dot+1, "unexpected '.'")
			}
			r.pos++
			r.skipSpace()
			if r.eof() {
				return nil, r.errorf(start, r.end, "unterminated list")
			}
			if r.peek() == ')' {
				return nil, r.errorf(dot, dot+1, "missing datum after '.'")
			}
			tail, err := r.readDatum()
			if err != nil {
				return nil, err
			}
			r.skipSpace()
			if r.eof() {
				return nil, r.errorf(start, r.end, "unterminated list")
			}
			if r.peek() != ')' {
				return nil, r.errorf(r.pos, r.pos+1, "expected ')' after dotted tail")
			}
			r.pos++
			return joinTail(diag.Ranging{From: start, To: r.pos}, items, tail), nil
		}
		item, err := r.readDatum()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}

// atDot reports whether the reader is at a lone '.' that separates a dotted
// tail.
func (r *reader) atDot() bool {
	return r.pos+1 >= r.end || isDelimiter(r.src.Code[r.pos+1])
}

// joinTail builds the form (items . tail), flattening a tail that is itself a
// proper list so that (a . (b c)) and (a b c) read the same.
func joinTail(rg diag.Ranging, items []Node, tail Node) Node {
	switch t := tail.(type) {
	case *Literal:
		if t.Kind == NilLiteral {
			return &Form{Ranging: rg, Items: items}
		}
	case *Form:
		return &Form{Ranging: rg, Items: append(items, t.Items...), Tail: t.Tail}
	}
	return &Form{Ranging: rg, Items: items, Tail: tail}
}

func (r *reader) readString() (Node, *Error) {
	start := r.pos
	r.pos++
	var sb strings.Builder
	for {
		if r.eof() {
			return nil, r.errorf(start, r.end, "unterminated string")
		}
		c := r.peek()
		switch c {
		case '"':
			r.pos++
			return &Literal{Ranging: diag.Ranging{From: start, To: r.pos},
				Kind: StringLiteral, Text: sb.String()}, nil
		case '\\':
			if r.pos+1 >= r.end {
				return nil, r.errorf(start, r.end, "unterminated string")
			}
			switch e := r.src.Code[r.pos+1]; e {
			case '"', '\\':
				sb.WriteByte(e)
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '0':
				sb.WriteByte(0)
			default:
				return nil, r.errorf(r.pos, r.pos+2, "invalid escape sequence \\%c", e)
			}
			r.pos += 2
		default:
			sb.WriteByte(c)
			r.pos++
		}
	}
}

var charNames = map[string]string{
	"space":   " ",
	"newline": "\n",
	"tab":     "\t",
	"return":  "\r",
	"nul":     "\x00",
}

func (r *reader) readHash() (Node, *Error) {
	start := r.pos
	if r.pos+1 < r.end && r.src.Code[r.pos+1] == '\\' {
		p := r.pos + 2
		if p >= r.end {
			return nil, r.errorf(start, r.end, "missing character after #\\")
		}
		_, size := utf8.DecodeRuneInString(r.src.Code[p:r.end])
		r.pos = p + size
		r.token()
		name := r.src.Code[p:r.pos]
		rg := diag.Ranging{From: start, To: r.pos}
		if utf8.RuneCountInString(name) == 1 {
			return &Literal{Ranging: rg, Kind: CharLiteral, Text: name}, nil
		}
		if ch, ok := charNames[name]; ok {
			return &Literal{Ranging: rg, Kind: CharLiteral, Text: ch}, nil
		}
		return nil, r.errorf(start, r.pos, "unknown character name %q", name)
	}
	tok := r.token()
	rg := diag.Ranging{From: start, To: r.pos}
	switch tok {
	case "#t", "#true":
		return &Literal{Ranging: rg, Kind: BoolLiteral, Bool: true}, nil
	case "#f", "#false":
		return &Literal{Ranging: rg, Kind: BoolLiteral, Bool: false}, nil
	case "#nil":
		return &Literal{Ranging: rg, Kind: NilLiteral}, nil
	}
	if strings.HasPrefix(tok, "#:") && len(tok) > 2 {
		return &Literal{Ranging: rg, Kind: KeywordLiteral, Text: tok[2:]}, nil
	}
	return nil, r.errorf(start, r.pos, "invalid syntax %q", tok)
}

func (r *reader) readAtom() (Node, *Error) {
	start := r.pos
	tok := r.token()
	rg := diag.Ranging{From: start, To: r.pos}
	if tok == "." {
		return nil, r.errorf(start, r.pos, "unexpected '.'")
	}
	if !looksNumeric(tok) {
		return &Literal{Ranging: rg, Kind: SymbolLiteral, Text: tok}, nil
	}
	if isIntToken(tok) {
		if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
			return &Literal{Ranging: rg, Kind: IntLiteral, Int: i}, nil
		}
		// Out of the int64 range; keep the magnitude as a float.
	} else if !isFloatToken(tok) {
		return nil, r.errorf(start, r.pos, "invalid number %q", tok)
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil && !isRangeError(err) {
		return nil, r.errorf(start, r.pos, "invalid number %q", tok)
	}
	return &Literal{Ranging: rg, Kind: FloatLiteral, Float: f}, nil
}

func isRangeError(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isDelimiter(c byte) bool {
	return isSpace(c) || c == '(' || c == ')' || c == '"' || c == ';'
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// looksNumeric reports whether a token is meant to be a number: it starts with
// a digit, or with a sign or '.' that is followed by a digit.
func looksNumeric(tok string) bool {
	switch {
	case tok == "":
		return false
	case isDigit(tok[0]):
		return true
	case tok[0] == '.':
		return len(tok) > 1 && isDigit(tok[1])
	case tok[0] == '+' || tok[0] == '-':
		if len(tok) > 1 && isDigit(tok[1]) {
			return true
		}
		return len(tok) > 2 && tok[1] == '.' && isDigit(tok[2])
	}
	return false
}

func skipSign(s string) string {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		return s[1:]
	}
	return s
}

func skipDigits(s string) (string, int) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[i:], i
}

func isIntToken(tok string) bool {
	rest, n := skipDigits(skipSign(tok))
	return n > 0 && rest == ""
}

// isFloatToken accepts [sign] digits [. digits] [e [sign] digits], with at
// least one digit in the mantissa.
func isFloatToken(tok string) bool {
	rest, n := skipDigits(skipSign(tok))
	if strings.HasPrefix(rest, ".") {
		var m int
		rest, m = skipDigits(rest[1:])
		n += m
	}
	if n == 0 {
		return false
	}
	if rest != "" && (rest[0] == 'e' || rest[0] == 'E') {
		var m int
		rest, m = skipDigits(skipSign(rest[1:]))
		if m == 0 {
			return false
		}
	}
	return rest == ""
}

// IsValidSymbol reports whether s reads back as a symbol with the same name.
func IsValidSymbol(s string) bool {
	if s == "" || s == "." || s[0] == '#' || looksNumeric(s) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if isDelimiter(s[i]) {
			return false
		}
	}
	return true
}
