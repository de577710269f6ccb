// Package proc runs external programs on behalf of commands.
package proc

import (
	"bytes"
	"errors"
	"io"
	"os/exec"
	"strings"

	"src.dpm.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[proc] ")

// Spec describes a program invocation.
type Spec struct {
	// Dir is the working directory of the process. If empty, the process
	// inherits the working directory of dpm.
	Dir  string
	Name string
	Args []string
	// Stdout and Stderr receive the output of the process when it is run with
	// Status. Nil writers discard the output.
	Stdout io.Writer
	Stderr io.Writer
}

func (s Spec) String() string {
	return strings.Join(append([]string{s.Name}, s.Args...), " ")
}

// Status describes how a process exited. Code is -1 when the process was
// terminated by a signal.
type Status struct {
	Success bool
	Code    int
}

// Output is the captured result of a process.
type Output struct {
	Stdout string
	Stderr string
	Status
}

// Runner runs external programs. A process that runs and exits with a
// non-zero status is not an error; errors are reserved for failures to start
// or wait for the process.
type Runner interface {
	// Run runs a process with its output connected to the writers of the
	// Spec and waits for it.
	Run(spec Spec) (Status, error)
	// Output runs a process and captures its output.
	Output(spec Spec) (Output, error)
}

// OS is the Runner backed by the operating system.
type OS struct{}

var _ Runner = OS{}

// Run implements Runner.
func (OS) Run(spec Spec) (Status, error) {
	cmd := command(spec)
	cmd.Stdout = spec.Stdout
	cmd.Stderr = spec.Stderr
	logger.Printf("running %s in %q", spec, spec.Dir)
	return status(cmd.Run())
}

// Output implements Runner.
func (OS) Output(spec Spec) (Output, error) {
	var stdout, stderr bytes.Buffer
	cmd := command(spec)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	logger.Printf("running %s in %q, capturing output", spec, spec.Dir)
	st, err := status(cmd.Run())
	if err != nil {
		return Output{}, err
	}
	return Output{stdout.String(), stderr.String(), st}, nil
}

func command(spec Spec) *exec.Cmd {
	cmd := exec.Command(spec.Name, spec.Args...)
	cmd.Dir = spec.Dir
	return cmd
}

func status(err error) (Status, error) {
	if err == nil {
		return Status{Success: true, Code: 0}, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Status{Success: false, Code: exitErr.ExitCode()}, nil
	}
	return Status{}, err
}
