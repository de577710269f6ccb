package store

import (
	"testing"

	"src.dpm.sh/pkg/eval"
	. "src.dpm.sh/pkg/eval/evaltest"
	"src.dpm.sh/pkg/eval/errs"
	"src.dpm.sh/pkg/eval/vals"
	"src.dpm.sh/pkg/must"
	"src.dpm.sh/pkg/store"
)

func TestHistory(t *testing.T) {
	s := store.MustTempStore(t)
	must.OK1(s.AddCmdInSession("(print 1)", "other"))
	must.OK1(s.AddCmdInSession("(print 2)", "test-session"))
	must.OK1(s.AddCmdInSession("(print 3)", "test-session"))
	entry := func(seq int64, text string) vals.Value {
		return vals.MakeList(vals.Int(seq), vals.Str(text))
	}

	TestWithSetup(t, Use(Commands(s)...),
		That("(history)").Puts(vals.MakeList(
			entry(1, "(print 1)"), entry(2, "(print 2)"), entry(3, "(print 3)"))),
		That("(history 2)").Puts(vals.MakeList(entry(2, "(print 2)"), entry(3, "(print 3)"))),
		That("(history 0)").Puts(vals.MakeList()),
		That("(history -1)").Throws(errs.BadValue{
			What: "history count", Valid: "non-negative integer", Actual: "-1"}),
		That("(session-history)").Puts(vals.MakeList(entry(2, "(print 2)"), entry(3, "(print 3)"))),
		That("(session-history 1)").Puts(vals.MakeList(entry(3, "(print 3)"))),

		That("(history-del 9)").Throws(ErrorWithMessage("no history entry 9")),
		That(`(history-del "1")`).Throws(errs.BadValue{
			What: "history-del seq", Valid: "integer", Actual: "string"}),
		That("(history-del 1)").Then("(history)").
			Puts(vals.MakeList(entry(2, "(print 2)"), entry(3, "(print 3)"))),
	)
}

func TestPersistedVars(t *testing.T) {
	s := store.MustTempStore(t)
	TestWithSetup(t, Use(Commands(s)...),
		That(`(persisted-vars)`).Puts(vals.MakeList()),
		That(`(persist-var "nope")`).Throws(ErrorWithMessage("variable 'nope' not found")),
		That(`(recall-var "nope")`).Throws(ErrorWithMessage("no persisted variable 'nope'")),
		That(`(forget-var "nope")`).Puts(vals.Bool(false)),
	)

	TestWithSetup(t, func(ctx *eval.Context) {
		ctx.Registry.RegisterAll(Commands(s)...)
		ctx.SetVariable("region", vals.Str("eu \"west\""))
		ctx.SetVariable("ports", vals.MakeList(vals.Int(80), vals.Bool(true), vals.Strings("a")))
	},
		That(`(persist-var "region")`).Puts(vals.Str("Variable 'region' persisted")),
		That(`(persist-var "ports")`).Then(`(persisted-vars)`).Puts(vals.Strings("ports", "region")),
	)

	// A fresh context sees the values persisted by the previous ones.
	TestWithSetup(t, Use(Commands(s)...),
		That(`(recall-var "region")`).Puts(vals.Str("eu \"west\"")).
			Passes(func(t *testing.T, ctx *eval.Context) {
				if v, _ := ctx.Variable("region"); !vals.Equal(v, vals.Str("eu \"west\"")) {
					t.Errorf("region = %v", v)
				}
			}),
		That(`(recall-var "ports")`).Puts(
			vals.MakeList(vals.Int(80), vals.Bool(true), vals.Strings("a"))),
		That(`(forget-var "region")`).Then(`(persisted-vars)`).Puts(vals.Strings("ports")),
	)

	must.OK(s.SetSharedVar("broken", "(1 2"))
	TestWithSetup(t, Use(Commands(s)...),
		That(`(recall-var "broken")`).ThrowsMessage("persisted variable 'broken' is corrupt"),
	)
}
