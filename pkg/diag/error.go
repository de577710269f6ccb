package diag

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Error represents an error with context that can be shown.
type Error struct {
	Type    string
	Message string
	Context Context
}

// Error returns a plain text representation of the error, without position
// information.
func (e *Error) Error() string {
	return e.Type + ": " + e.Message
}

// Range returns the range of the error.
func (e *Error) Range() Ranging {
	return e.Context.Range()
}

// Show shows the error with the position and the relevant source line, with
// the culprit wrapped in the given markers.
func (e *Error) Show(culpritStart, culpritEnd string) string {
	return fmt.Sprintf("%s: %s\n  %s",
		title(e.Type), e.Message, e.Context.Show(culpritStart, culpritEnd))
}

// Shower is implemented by errors that can show themselves with source
// context.
type Shower interface {
	error
	Show(culpritStart, culpritEnd string) string
}

// UnpackErrors returns all the *Error values contained in err, following
// errors.Join trees and wrapping.
func UnpackErrors(err error) []*Error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var errs []*Error
		for _, e := range joined.Unwrap() {
			errs = append(errs, UnpackErrors(e)...)
		}
		return errs
	}
	var e *Error
	if errors.As(err, &e) {
		return []*Error{e}
	}
	return nil
}

func title(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.TrimPrefix(s, s[:n])
}
