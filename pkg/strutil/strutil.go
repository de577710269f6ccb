// Package strutil provides string helpers for reading source code line by
// line and completing command names.
package strutil

import "strings"

// ChopLineEnding removes one trailing "\n" or "\r\n" from s.
func ChopLineEnding(s string) string {
	s, found := strings.CutSuffix(s, "\n")
	if found {
		s = strings.TrimSuffix(s, "\r")
	}
	return s
}

// FindFirstEOL returns the index of the first '\n' in s, or len(s).
func FindFirstEOL(s string) int {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return i
	}
	return len(s)
}

// Characters that end a symbol.
const symbolDelims = " \t\r\n()\"';"

// SymbolStart returns the index where the symbol at the end of s starts. It
// returns len(s) if s ends with a delimiter.
func SymbolStart(s string) int {
	return strings.LastIndexAny(s, symbolDelims) + 1
}
