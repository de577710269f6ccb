// Package progtest provides a framework for testing subprograms.
//
// The entry point for the framework is the Test function, which accepts a
// *testing.T, a Program implementation under test, and any number of test
// cases.
//
// Test cases are constructed using the ThatDpm function, followed by method
// calls that add additional information to it.
//
// Example:
//
//	Test(t, someProgram,
//	    ThatDpm("-c", "(print hello)").WritesStdout("hello\n"))
package progtest

import (
	"io"
	"os"
	"strings"
	"testing"

	"src.dpm.sh/pkg/must"
	"src.dpm.sh/pkg/prog"
)

// Case is a test case that can be used in Test.
type Case struct {
	args  []string
	stdin string
	want  result
}

type result struct {
	exitCode int
	stdout   output
	stderr   output
}

type output struct {
	content string
	partial bool
}

func (o output) String() string {
	if o.partial {
		return "text containing " + o.content
	}
	return o.content
}

// ThatDpm returns a new Case with the specified CLI arguments.
//
// The new Case expects the program run to exit with 0, and write nothing to
// stdout or stderr.
//
// When combined with subsequent method calls, a test case reads like English.
// For example, a test for the fact that "dpm -bad-flag" exits with 2 would
// look like:
//
//	ThatDpm("-bad-flag").ExitsWith(2)
func ThatDpm(args ...string) Case {
	return Case{args: append([]string{"dpm"}, args...)}
}

// WithStdin returns an altered Case that provides the given input to stdin of
// the program.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// DoesNothing returns c itself. It is useful to mark tests that otherwise
// don't have any expectations, for example:
//
//	ThatDpm("-log", "log").DoesNothing()
func (c Case) DoesNothing() Case {
	return c
}

// ExitsWith returns an altered Case that requires the program run to return
// with the given exit code.
func (c Case) ExitsWith(code int) Case {
	c.want.exitCode = code
	return c
}

// WritesStdout returns an altered Case that requires the program run to write
// exactly the given text to stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.stdout = output{content: s}
	return c
}

// WritesStdoutContaining returns an altered Case that requires the program run
// to write output to stdout that contains the given text as a substring.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.stdout = output{content: s, partial: true}
	return c
}

// WritesStderr returns an altered Case that requires the program run to write
// exactly the given text to stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.stderr = output{content: s}
	return c
}

// WritesStderrContaining returns an altered Case that requires the program run
// to write output to stderr that contains the given text as a substring.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.stderr = output{content: s, partial: true}
	return c
}

// Test runs test cases against a given program.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			r := run(p, c.args, c.stdin)
			if r.exitCode != c.want.exitCode {
				t.Errorf("got exit code %v, want %v", r.exitCode, c.want.exitCode)
			}
			if !matchOutput(r.stdout.content, c.want.stdout) {
				t.Errorf("got stdout %q, want %s", r.stdout.content, c.want.stdout)
			}
			if !matchOutput(r.stderr.content, c.want.stderr) {
				t.Errorf("got stderr %q, want %s", r.stderr.content, c.want.stderr)
			}
		})
	}
}

// Run runs a Program with the given arguments. It returns the Program's exit
// code and output to stdout and stderr.
func Run(p prog.Program, args ...string) (exit int, stdout, stderr string) {
	r := run(p, append([]string{"dpm"}, args...), "")
	return r.exitCode, r.stdout.content, r.stderr.content
}

func run(p prog.Program, args []string, stdin string) result {
	r0, w0 := must.Pipe()
	go func() {
		w0.WriteString(stdin)
		w0.Close()
	}()
	defer r0.Close()

	stdout := captureOutput()
	stderr := captureOutput()

	exitCode := prog.Run([3]*os.File{r0, stdout.w, stderr.w}, args, p)
	return result{exitCode, output{content: stdout.get()}, output{content: stderr.get()}}
}

func matchOutput(got string, want output) bool {
	if want.partial {
		return strings.Contains(got, want.content)
	}
	return got == want.content
}

type capturedOutput struct {
	w    *os.File
	done chan string
}

// The output is drained from a goroutine so that a program writing more than a
// pipe buffer's worth of data does not block.
func captureOutput() capturedOutput {
	r, w := must.Pipe()
	done := make(chan string, 1)
	go func() {
		done <- string(must.OK1(io.ReadAll(r)))
		r.Close()
	}()
	return capturedOutput{w, done}
}

func (o capturedOutput) get() string {
	o.w.Close()
	return <-o.done
}
