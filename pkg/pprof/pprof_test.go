package pprof_test

import (
	"fmt"
	"os"
	"testing"

	"src.dpm.sh/pkg/eval"
	"src.dpm.sh/pkg/eval/vals"
	"src.dpm.sh/pkg/pprof"
	"src.dpm.sh/pkg/prog"
	"src.dpm.sh/pkg/prog/progtest"
	"src.dpm.sh/pkg/testutil"
)

var (
	Test    = progtest.Test
	ThatDpm = progtest.ThatDpm
)

func TestProgram(t *testing.T) {
	testutil.InTempDir(t)

	Test(t, prog.Composite(&pprof.Program{}, evalProgram{}),
		ThatDpm("-cpuprofile", "cpuprof", "(sum 1 2)").WritesStdout("3\n"),
		ThatDpm("-cpuprofile", "/a/bad/path").
			WritesStderrContaining("Warning: cannot create CPU profile:"),
		ThatDpm("-allocsprofile", "allocsprof").DoesNothing(),
		ThatDpm("-allocsprofile", "/a/bad/path").
			WritesStderrContaining("Warning: cannot create memory allocation profile:"),
	)

	// Check for the effect of -cpuprofile and -allocsprofile. There isn't much
	// to test beyond a sanity check that the profile files now exist.
	for _, name := range []string{"cpuprof", "allocsprof"} {
		if _, err := os.Stat(name); err != nil {
			t.Errorf("profile file %s does not exist: %v", name, err)
		}
	}
}

// Evaluates each argument and writes the results.
type evalProgram struct{}

func (evalProgram) RegisterFlags(*prog.FlagSet) {}

func (evalProgram) Run(fds [3]*os.File, args []string) error {
	r := eval.NewRegistry()
	r.RegisterAll(eval.Builtins()...)
	ctx := eval.NewContext(r)
	for _, arg := range args {
		v, err := eval.EvalString(arg, ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(fds[1], vals.ToString(v))
	}
	return nil
}
