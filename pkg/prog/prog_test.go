package prog_test

import (
	"os"
	"strings"
	"testing"

	. "src.dpm.sh/pkg/prog"
	"src.dpm.sh/pkg/prog/progtest"
	"src.dpm.sh/pkg/testutil"
)

var (
	Test    = progtest.Test
	ThatDpm = progtest.ThatDpm
)

func TestCommonFlagHandling(t *testing.T) {
	testutil.InTempDir(t)

	Test(t, &testProgram{},
		ThatDpm("-bad-flag").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -bad-flag\nUsage:"),
		// -h is treated as a bad flag
		ThatDpm("-h").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -h\nUsage:"),

		ThatDpm("-help").
			WritesStdoutContaining("Usage: dpm [flags] [expression ...]"),

		ThatDpm("-log", "log").DoesNothing(),
		ThatDpm("-log", "/a/bad/path/log").
			WritesStderrContaining("/a/bad/path/log"),
	)

	if _, err := os.Stat("log"); err != nil {
		t.Errorf("log file does not exist: %v", err)
	}
}

func TestSharedFlags(t *testing.T) {
	p1, p2 := &testProgram{sharedFlags: true}, &testProgram{sharedFlags: true}
	Test(t, Composite(p1, p2),
		ThatDpm("-json", "-db", "x.db").DoesNothing(),
	)
	for _, p := range []*testProgram{p1, p2} {
		if !*p.json || *p.db != "x.db" {
			t.Errorf("got json=%v db=%q", *p.json, *p.db)
		}
	}
}

func TestNoSuitableSubprogram(t *testing.T) {
	Test(t, &testProgram{notSuitable: true},
		ThatDpm().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite(t *testing.T) {
	Test(t,
		Composite(&testProgram{notSuitable: true}, &testProgram{writeOut: "program 2"}),
		ThatDpm().WritesStdout("program 2"),
	)
}

func TestComposite_NoSuitableSubprogram(t *testing.T) {
	Test(t,
		Composite(&testProgram{notSuitable: true}, &testProgram{notSuitable: true}),
		ThatDpm().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite_PreferEarlierSubprogram(t *testing.T) {
	Test(t,
		Composite(
			&testProgram{writeOut: "program 1"}, &testProgram{writeOut: "program 2"}),
		ThatDpm().WritesStdout("program 1"),
	)
}

func TestComposite_NextProgramCleanups(t *testing.T) {
	var order []string
	cleanup := func(name string) func([3]*os.File) {
		return func([3]*os.File) { order = append(order, name) }
	}
	Test(t,
		Composite(
			&testProgram{returnErr: NextProgram(cleanup("a1"), cleanup("a2"))},
			&testProgram{returnErr: NextProgram(cleanup("b"))},
			&testProgram{writeOut: "program 3"}),
		ThatDpm().WritesStdout("program 3"),
	)
	if got := strings.Join(order, " "); got != "b a2 a1" {
		t.Errorf("cleanups run in order %q, want %q", got, "b a2 a1")
	}
}

func TestBadUsageError(t *testing.T) {
	Test(t,
		&testProgram{returnErr: BadUsage("lorem ipsum")},
		ThatDpm().ExitsWith(2).WritesStderrContaining("lorem ipsum\nUsage:"),
	)
}

func TestExitError(t *testing.T) {
	Test(t, &testProgram{returnErr: Exit(3)},
		ThatDpm().ExitsWith(3),
	)
}

func TestExitError_0(t *testing.T) {
	Test(t, &testProgram{returnErr: Exit(0)},
		ThatDpm().ExitsWith(0),
	)
}

type testProgram struct {
	notSuitable bool
	writeOut    string
	returnErr   error

	sharedFlags bool
	json        *bool
	db          *string
}

func (p *testProgram) RegisterFlags(f *FlagSet) {
	if p.sharedFlags {
		p.json = f.JSON()
		p.db = f.DB()
	}
}

func (p *testProgram) Run(fds [3]*os.File, args []string) error {
	if p.notSuitable {
		return ErrNotSuitable
	}
	fds[1].WriteString(p.writeOut)
	return p.returnErr
}
