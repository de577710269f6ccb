package evaltest

import (
	"fmt"
	"reflect"
	"strings"

	"src.dpm.sh/pkg/parse"
)

type errorMatcher interface{ matchError(error) bool }

// AnyError is an error that can be passed to Case.Throws to match any error.
var AnyError = anyError{}

type anyError struct{}

func (anyError) Error() string           { return "any error" }
func (anyError) matchError(e error) bool { return e != nil }

// AnyParseError is an error that can be passed to the Case.Throws to match any
// parse error.
var AnyParseError anyParseError

type anyParseError struct{}

func (anyParseError) Error() string           { return "any parse error" }
func (anyParseError) matchError(e error) bool { return parse.UnpackErrors(e) != nil }

// ErrorWithType returns an error that can be passed to the Case.Throws to match
// any error with the same type as the argument.
func ErrorWithType(v error) error { return errWithType{v} }

// An errorMatcher for any error with the given type.
type errWithType struct{ v error }

func (e errWithType) Error() string { return fmt.Sprintf("error with type %T", e.v) }

func (e errWithType) matchError(e2 error) bool {
	return reflect.TypeOf(e.v) == reflect.TypeOf(e2)
}

// ErrorWithMessage returns an error that can be passed to Case.Throws to match
// any error with the given message.
func ErrorWithMessage(msg string) error { return errWithMessage{msg} }

// An errorMatcher for any error with the given message.
type errWithMessage struct{ msg string }

func (e errWithMessage) Error() string { return "error with message " + e.msg }

func (e errWithMessage) matchError(e2 error) bool {
	return e2 != nil && e.msg == e2.Error()
}

// An errorMatcher for any error whose message contains a text.
type errContaining struct{ substr string }

func (e errContaining) Error() string { return "error containing " + e.substr }

func (e errContaining) matchError(e2 error) bool {
	return e2 != nil && strings.Contains(e2.Error(), e.substr)
}

func matchErr(want, got error) bool {
	if want == nil {
		return got == nil
	}
	if matcher, ok := want.(errorMatcher); ok {
		return matcher.matchError(got)
	}
	return reflect.DeepEqual(want, got)
}
