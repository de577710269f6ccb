package diag

import (
	"fmt"
	"strings"
)

// Context is a range of text in a named source. It is used for errors that can
// be associated with a part of the source code, like parse errors.
type Context struct {
	Name   string
	Source string
	Ranging
}

// NewContext creates a new Context.
func NewContext(name, source string, r Ranger) *Context {
	return &Context{name, source, r.Range()}
}

// Position returns the 1-based line and column of the start of the range.
// Columns count runes, not bytes.
func (c *Context) Position() (line, col int) {
	from := clamp(c.From, len(c.Source))
	before := c.Source[:from]
	line = strings.Count(before, "\n") + 1
	col = len([]rune(lastLine(before))) + 1
	return line, col
}

// Culprit returns the text covered by the range.
func (c *Context) Culprit() string {
	from := clamp(c.From, len(c.Source))
	to := clamp(c.To, len(c.Source))
	if to < from {
		to = from
	}
	return c.Source[from:to]
}

// Show shows the context in the form "name:line:col: head<culprit>tail", using
// culpritStart and culpritEnd to mark the culprit.
func (c *Context) Show(culpritStart, culpritEnd string) string {
	from := clamp(c.From, len(c.Source))
	to := clamp(c.To, len(c.Source))
	if to < from {
		to = from
	}
	head := lastLine(c.Source[:from])
	culprit := c.Source[from:to]
	tail := firstLine(c.Source[to:])
	if i := strings.IndexByte(culprit, '\n'); i != -1 {
		culprit, tail = culprit[:i], ""
	}
	line, col := c.Position()
	return fmt.Sprintf("%s:%d:%d: %s%s%s%s%s",
		c.Name, line, col, head, culpritStart, culprit, culpritEnd, tail)
}

func clamp(i, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i != -1 {
		return s[:i]
	}
	return s
}

func lastLine(s string) string {
	// When s does not contain '\n', LastIndexByte returns -1, which happens to
	// be what we want.
	return s[strings.LastIndexByte(s, '\n')+1:]
}
