// Package evaltest provides a framework for testing dpm code.
//
// The entry point for the framework is the Test function, which accepts a
// *testing.T and any number of test cases.
//
// Test cases are constructed using the That function, followed by method calls
// that add additional information to it.
//
// Example:
//
//	Test(t,
//	    That("(sum 1 2)").Puts(vals.Int(3)),
//	    That(`(print "x")`).Puts(vals.Str("x")).Prints("x\n"))
//
// If some setup is needed, use the TestWithSetup function instead.
package evaltest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.dpm.sh/pkg/eval"
	"src.dpm.sh/pkg/eval/vals"
	"src.dpm.sh/pkg/parse"
)

// SessionID is the session ID of contexts created by Test.
const SessionID = "test-session"

// Case is a test case that can be used in Test.
type Case struct {
	codes  []string
	setup  func(ctx *eval.Context)
	verify func(t *testing.T, ctx *eval.Context)
	want   result
}

type result struct {
	checkValue bool
	Value      vals.Value
	BytesOut   []byte
	StderrOut  []byte
	Exception  error
}

// That returns a new Case with the specified source code. Multiple arguments
// are joined with newlines. To specify multiple pieces of code that are
// executed separately, use the Then method to append code pieces.
//
// When combined with subsequent method calls, a test case reads like English.
// For example, a test for the fact that "(sum 1 2)" evaluates to 3 reads:
//
//	That("(sum 1 2)").Puts(vals.Int(3))
func That(lines ...string) Case {
	return Case{codes: []string{strings.Join(lines, "\n")}}
}

// Then returns a new Case that executes the given code in addition. Multiple
// arguments are joined with newlines.
func (c Case) Then(lines ...string) Case {
	c.codes = append(c.codes, strings.Join(lines, "\n"))
	return c
}

// WithSetup returns a new Case with the given setup function executed on the
// Context before the code is executed.
func (c Case) WithSetup(f func(*eval.Context)) Case {
	c.setup = f
	return c
}

// DoesNothing returns c unchanged. It is useful to mark tests that don't have
// any side effects, for example:
//
//	That("()").DoesNothing()
func (c Case) DoesNothing() Case {
	return c
}

// Passes returns an altered Case that runs an additional verification
// function after the code is executed.
func (c Case) Passes(f func(t *testing.T, ctx *eval.Context)) Case {
	c.verify = f
	return c
}

// Puts returns an altered Case that requires the value of the last piece of
// code to be equal to v.
func (c Case) Puts(v vals.Value) Case {
	c.want.checkValue = true
	c.want.Value = v
	return c
}

// Prints returns an altered Case that requires the source code to write the
// specified output to stdout.
func (c Case) Prints(s string) Case {
	c.want.BytesOut = []byte(s)
	return c
}

// PrintsStderrWith returns an altered Case that requires the stderr output to
// contain the given text.
func (c Case) PrintsStderrWith(s string) Case {
	c.want.StderrOut = []byte(s)
	return c
}

// Throws returns an altered Case that requires the source code to fail with
// the given error. The error supports special matcher values constructed by
// functions like ErrorWithMessage.
func (c Case) Throws(err error) Case {
	c.want.Exception = err
	return c
}

// ThrowsMessage returns an altered Case that requires the source code to fail
// with an error whose message contains the given text.
func (c Case) ThrowsMessage(substr string) Case {
	return c.Throws(errContaining{substr})
}

// Test runs test cases. For each test case, a new Context is created with a
// registry containing the builtin commands.
func Test(t *testing.T, tests ...Case) {
	t.Helper()
	TestWithSetup(t, func(*eval.Context) {}, tests...)
}

// TestWithSetup runs test cases. For each test case, a new Context is created
// and passed to the setup function.
func TestWithSetup(t *testing.T, setup func(*eval.Context), tests ...Case) {
	t.Helper()
	for _, tc := range tests {
		t.Run(strings.Join(tc.codes, "\n"), func(t *testing.T) {
			t.Helper()
			ctx, stdout, stderr := NewTestContext()
			setup(ctx)
			if tc.setup != nil {
				tc.setup(ctx)
			}

			r := evalAndCollect(t, ctx, tc.codes)
			r.BytesOut = stdout.Bytes()
			r.StderrOut = stderr.Bytes()

			if tc.verify != nil {
				tc.verify(t, ctx)
			}
			if tc.want.checkValue && !vals.Equal(tc.want.Value, r.Value) {
				t.Errorf("got value (-want +got):\n%s",
					cmp.Diff(vals.Repr(tc.want.Value), vals.Repr(r.Value)))
			}
			if !bytes.Equal(tc.want.BytesOut, r.BytesOut) {
				t.Errorf("got bytes out %q, want %q", r.BytesOut, tc.want.BytesOut)
			}
			if tc.want.StderrOut == nil {
				if len(r.StderrOut) > 0 {
					t.Errorf("got stderr out %q, want empty", r.StderrOut)
				}
			} else {
				if !bytes.Contains(r.StderrOut, tc.want.StderrOut) {
					t.Errorf("got stderr out %q, want output containing %q",
						r.StderrOut, tc.want.StderrOut)
				}
			}
			if !matchErr(tc.want.Exception, r.Exception) {
				t.Errorf("unexpected exception")
				t.Logf("got: %T: %v", r.Exception, r.Exception)
				t.Errorf("want: %v", tc.want.Exception)
			}
		})
	}
}

// Use returns a setup function that registers the given commands, for use
// with TestWithSetup.
func Use(cmds ...eval.Command) func(*eval.Context) {
	return func(ctx *eval.Context) { ctx.Registry.RegisterAll(cmds...) }
}

// NewTestContext returns a Context with the builtin commands, whose stdout and
// stderr are captured in the returned buffers.
func NewTestContext() (*eval.Context, *bytes.Buffer, *bytes.Buffer) {
	reg := eval.NewRegistry()
	reg.RegisterAll(eval.Builtins()...)
	ctx := eval.NewContext(reg)
	ctx.SessionID = SessionID
	var stdout, stderr bytes.Buffer
	ctx.Stdout, ctx.Stderr = &stdout, &stderr
	return ctx, &stdout, &stderr
}

func evalAndCollect(t *testing.T, ctx *eval.Context, texts []string) result {
	var r result
	for _, text := range texts {
		v, err := eval.EvalSource(parse.Source{Name: "[test]", Code: text}, ctx)
		if err != nil {
			// NOTE: If multiple code pieces fail, only the last error is
			// saved.
			r.Exception = err
		} else {
			r.Value = v
		}
	}
	return r
}
