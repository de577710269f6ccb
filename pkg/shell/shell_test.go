package shell

import (
	"path/filepath"
	"testing"

	"src.dpm.sh/pkg/env"
	"src.dpm.sh/pkg/must"
	. "src.dpm.sh/pkg/prog/progtest"
	"src.dpm.sh/pkg/store"
	"src.dpm.sh/pkg/testutil"
)

// Isolates the test from the configuration and store of the user, and
// changes into a temporary directory, which is returned.
func setupCleanHome(t *testing.T) string {
	testutil.TempHome(t)
	for _, name := range []string{
		env.XDG_CONFIG_HOME, env.XDG_DATA_HOME, env.DPM_CONFIG, env.DPM_DB} {
		testutil.Unsetenv(t, name)
	}
	return testutil.InTempDir(t)
}

func TestArgumentMode(t *testing.T) {
	setupCleanHome(t)

	Test(t, &Program{},
		ThatDpm(`(print "hello")`).WritesStdout("hello\n"),
		// Results are not shown.
		ThatDpm("(sum 1 2)").DoesNothing(),
		// Arguments share one context.
		ThatDpm(`(set-var "x" 2)`, `(print (get-var "x"))`).WritesStdout("2\n"),
		ThatDpm(`(print 1) (print 2)`).WritesStdout("1\n2\n"),

		ThatDpm("(nope)").
			ExitsWith(2).
			WritesStderr("Error: unknown command: nope\n"),
		// The first error stops evaluation.
		ThatDpm("(print 1)", "(nope)", "(print 2)").
			ExitsWith(2).
			WritesStdout("1\n").
			WritesStderr("Error: unknown command: nope\n"),
		ThatDpm("(sum 1 2").
			ExitsWith(2).
			WritesStderrContaining("Error: parse error: unbalanced parentheses"),
	)
}

func TestFileMode(t *testing.T) {
	setupCleanHome(t)
	testutil.ApplyDir(testutil.Dir{
		"prog.dpm":     "(print \"a\")\n; comment\n(print (sum 1\n  2))\n",
		"bad.dpm":      "(print \"a\")\n(nope)\n(print \"b\")\n",
		"invalid.dpm":  "\xff",
		"unclosed.dpm": "(print \"a\"",
	})

	Test(t, &Program{},
		ThatDpm("-f", "prog.dpm").WritesStdout("a\n3\n"),
		ThatDpm("-f", "bad.dpm").
			ExitsWith(2).
			WritesStdout("a\n").
			WritesStderr("Error: unknown command: nope\n"),
		ThatDpm("-f", "unclosed.dpm").
			ExitsWith(2).
			WritesStderrContaining("Error: parse error"),
		ThatDpm("-f", "invalid.dpm").
			ExitsWith(2).
			WritesStderrContaining("cannot read file"),
		ThatDpm("-f", "non-existent.dpm").
			ExitsWith(2).
			WritesStderrContaining("cannot read file"),
		ThatDpm("-f", "prog.dpm", "(print 1)").
			ExitsWith(2).
			WritesStderrContaining("-f can't be used together with expression arguments\nUsage:"),
	)
}

func TestLineMode(t *testing.T) {
	setupCleanHome(t)
	must.WriteFile("rc.dpm", `(set-var "greeting" "hi")`)
	must.WriteFile("bad-rc.dpm", "(nope)")

	Test(t, &Program{},
		ThatDpm().WithStdin("(print 1)\n\n   \n(nope)\n(print 2)").
			WritesStdout("1\n2\n").
			WritesStderr("Error: unknown command: nope\n"),
		// Results are not echoed when not on a terminal.
		ThatDpm().WithStdin("(sum 1 2)\n").DoesNothing(),
		ThatDpm().WithStdin("(sum 1\n").
			WritesStderrContaining("Error: parse error"),

		ThatDpm("-rc", "rc.dpm").WithStdin(`(print (get-var "greeting"))`).
			WritesStdout("hi\n"),
		ThatDpm("-rc", "rc.dpm", "-norc").WithStdin(`(print (get-var "greeting"))`).
			WritesStderrContaining("Error:"),
		ThatDpm("-rc", "bad-rc.dpm").WithStdin("(print 1)\n").
			WritesStdout("1\n").
			WritesStderr("Error: unknown command: nope\n"),
		ThatDpm("-rc", "non-existent.dpm").WithStdin("(print 1)\n").
			WritesStdout("1\n"),
	)
}

func TestLineMode_History(t *testing.T) {
	setupCleanHome(t)

	Test(t, &Program{},
		ThatDpm("-db", "a.db").WithStdin("(print 1)\n\n(nope)\n").
			WritesStdout("1\n").
			WritesStderr("Error: unknown command: nope\n"),
		ThatDpm("-db", "b.db", "-nohistory").WithStdin("(print 1)\n").
			WritesStdout("1\n"),
	)

	a := must.OK1(store.NewStore("a.db"))
	defer a.Close()
	cmds := must.OK1(a.CmdsWithSeq(0, 100))
	if len(cmds) != 2 || cmds[0].Text != "(print 1)" || cmds[1].Text != "(nope)" {
		t.Errorf("got history %v, want (print 1) and (nope)", cmds)
	}
	if cmds[0].Session == "" || cmds[0].Session != cmds[1].Session {
		t.Errorf("history entries don't share a session: %v", cmds)
	}

	b := must.OK1(store.NewStore("b.db"))
	defer b.Close()
	if cmds := must.OK1(b.CmdsWithSeq(0, 100)); len(cmds) != 0 {
		t.Errorf("got history %v with -nohistory", cmds)
	}
}

func TestPersistentVariables(t *testing.T) {
	setupCleanHome(t)

	Test(t, &Program{},
		ThatDpm(`(set-var "x" (list 1 2))`, `(persist-var "x")`),
		ThatDpm(`(recall-var "x")`, `(print (get-var "x"))`).
			WritesStdout("(1 2)\n"),
	)
}

func TestStoreUnavailable(t *testing.T) {
	setupCleanHome(t)
	must.MkdirAll("dir.db")

	Test(t, &Program{},
		ThatDpm("-db", "dir.db", `(print 1)`).
			WritesStdout("1\n").
			WritesStderrContaining("Warning: cannot open store"),
		ThatDpm("-db", "dir.db", `(history)`).
			ExitsWith(2).
			WritesStderrContaining("Error: unknown command: history"),
	)
}

func TestConfig(t *testing.T) {
	dir := setupCleanHome(t)
	must.MkdirAll("sub")
	must.WriteFile("config.yaml", `
basedir: sub
debug: false
variables:
  name: dpm
prelude:
  - (set-var "from-prelude" (sum 1 2))
`)
	must.WriteFile("bad.yaml", "unknown: 1\n")
	must.WriteFile("bad-prelude.toml", `prelude = ["(nope)"]`+"\n")
	cfg := filepath.Join(dir, "config.yaml")

	Test(t, &Program{},
		ThatDpm("-config", cfg,
			`(print (get-var "name") (get-var "from-prelude") (get-basedir))`).
			WritesStdout("dpm 3 " + filepath.Join(dir, "sub") + "\n"),
		// Flags override the config file.
		ThatDpm("-config", cfg, "-basedir", "/", `(print (get-basedir))`).
			WritesStdout("/\n"),
		ThatDpm("-config", "bad.yaml", "(print 1)").
			ExitsWith(2).
			WritesStderrContaining("cannot load config"),
		// Errors in the prelude are shown but not fatal.
		ThatDpm("-config", "bad-prelude.toml", "(print 1)").
			WritesStdout("1\n").
			WritesStderr("Error: unknown command: nope\n"),
	)
}

func TestConfig_FoundInConfigHome(t *testing.T) {
	dir := setupCleanHome(t)
	testutil.Setenv(t, env.XDG_CONFIG_HOME, dir)
	testutil.ApplyDir(testutil.Dir{
		"dpm": testutil.Dir{
			"config.toml": "[variables]\nwho = \"toml\"\n",
			"rc.dpm":      `(set-var "rc" "loaded")`,
		},
	})

	Test(t, &Program{},
		ThatDpm(`(print (get-var "who"))`).WritesStdout("toml\n"),
		ThatDpm().WithStdin(`(print (get-var "rc"))`).WritesStdout("loaded\n"),
	)
}

func TestDebugFlag(t *testing.T) {
	setupCleanHome(t)

	Test(t, &Program{},
		ThatDpm("-debug", "(sum 1 2)").
			WritesStderrContaining("[DEBUG eval] calling sum with 2 arguments"),
	)
}

func TestCompileOnly(t *testing.T) {
	setupCleanHome(t)
	must.WriteFile("ok.dpm", "(nope)")

	Test(t, &Program{},
		// Unknown commands are not detected without evaluating.
		ThatDpm("-compileonly", "(nope)").DoesNothing(),
		ThatDpm("-compileonly", "-f", "ok.dpm").DoesNothing(),
		ThatDpm("-compileonly").WithStdin("(print 1)\n(print 2)\n").DoesNothing(),
		ThatDpm("-compileonly", "(sum 1 2").
			ExitsWith(2).
			WritesStderrContaining("Error: parse error: unbalanced parentheses"),
		ThatDpm("-compileonly", "-json", "(sum 1 2)").
			WritesStdout("[]\n"),
		ThatDpm("-compileonly", "-json", "(sum 1 2").
			ExitsWith(2).
			WritesStdout(`[{"fileName":"[arg 1]","start":0,"end":8,"message":"unbalanced parentheses: (sum 1 2"}]` + "\n"),
		ThatDpm("-compileonly", "-json", "(print 1)", "(sum 1 2").
			ExitsWith(2).
			WritesStdout(`[{"fileName":"[arg 2]","start":0,"end":8,"message":"unbalanced parentheses: (sum 1 2"}]` + "\n"),
	)
}

func TestRuntimePaths(t *testing.T) {
	dir := setupCleanHome(t)
	must.WriteFile("c.yaml", "debug: false\n")

	Test(t, &Program{},
		ThatDpm("-config", "c.yaml", "-db", "x.db",
			`(print (list-first (list-rest (list-first (list-rest (runtime-paths))))))`).
			WritesStdout("c.yaml\n"),
		ThatDpm("-db", filepath.Join(dir, "y.db"),
			`(print (list-rest (list-first (list-rest (list-rest (list-rest (runtime-paths)))))))`).
			WritesStdoutContaining("y.db"),
	)
}
