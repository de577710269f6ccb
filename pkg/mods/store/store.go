// Package store provides commands backed by the persistent store: the command
// history and variables that outlive a session.
package store

import (
	"errors"
	"fmt"

	"src.dpm.sh/pkg/eval"
	"src.dpm.sh/pkg/eval/errs"
	"src.dpm.sh/pkg/eval/vals"
	"src.dpm.sh/pkg/parse"
	"src.dpm.sh/pkg/store/storedefs"
)

// Commands returns the store commands operating on s.
func Commands(s storedefs.Store) []eval.Command {
	return []eval.Command{
		eval.NewFunc("history", "List the command history as (seq text) pairs", history(s, false)).
			WithHelp("(history [n])",
				"  (history)    ; All history entries, oldest first\n"+
					"  (history 5)  ; The 5 most recent entries").
			WithTag(eval.TagStore),
		eval.NewFunc("session-history", "List the command history of the current session as (seq text) pairs", history(s, true)).
			WithHelp("(session-history [n])", "  (session-history 5)  ; The 5 most recent entries of this session").
			WithTag(eval.TagStore),
		eval.NewFunc("history-del", "Delete an entry from the command history", historyDel(s)).
			WithHelp("(history-del seq)", "  (history-del 12)  ; Delete entry 12").
			WithTag(eval.TagStore),
		eval.NewFunc("persist-var", "Save a context variable in the persistent store", persistVar(s)).
			WithHelp("(persist-var name)",
				"  (set-var \"region\" \"eu\")\n"+
					"  (persist-var \"region\")  ; Available to later sessions via recall-var").
			WithTag(eval.TagStore),
		eval.NewFunc("recall-var", "Load a persisted variable into the context", recallVar(s)).
			WithHelp("(recall-var name)", "  (recall-var \"region\")  ; Returns \"eu\" and sets the variable").
			WithTag(eval.TagStore),
		eval.NewFunc("forget-var", "Remove a variable from the persistent store", forgetVar(s)).
			WithHelp("(forget-var name)", "  (forget-var \"region\")  ; Returns #t if it was persisted").
			WithTag(eval.TagStore),
		eval.NewFunc("persisted-vars", "List the names of persisted variables", persistedVars(s)).
			WithHelp("(persisted-vars)", "  (persisted-vars)  ; Returns (\"region\")").
			WithTag(eval.TagStore),
	}
}

func history(s storedefs.Store, sessionOnly bool) func([]vals.Value, *eval.Context) (vals.Value, error) {
	name := "history"
	if sessionOnly {
		name = "session-history"
	}
	return func(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
		if err := errs.CheckArity("arguments to "+name, 0, 1, len(args)); err != nil {
			return nil, err
		}
		limit := -1
		if len(args) == 1 {
			n, ok := args[0].(vals.Int)
			if !ok || n < 0 {
				return nil, errs.BadValue{
					What: name + " count", Valid: "non-negative integer", Actual: vals.Repr(args[0])}
			}
			limit = int(n)
		}
		var cmds []storedefs.Cmd
		var err error
		if sessionOnly {
			cmds, err = s.SessionCmds(ctx.SessionID)
		} else {
			var upto int
			upto, err = s.NextCmdSeq()
			if err == nil {
				cmds, err = s.CmdsWithSeq(0, upto)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read history: %w", err)
		}
		entries := make([]vals.Value, len(cmds))
		for i, cmd := range cmds {
			entries[i] = vals.MakeList(vals.Int(cmd.Seq), vals.Str(cmd.Text))
		}
		if limit >= 0 && len(entries) > limit {
			entries = entries[len(entries)-limit:]
		}
		return vals.MakeList(entries...), nil
	}
}

func historyDel(s storedefs.Store) func([]vals.Value, *eval.Context) (vals.Value, error) {
	return func(args []vals.Value, _ *eval.Context) (vals.Value, error) {
		if err := errs.CheckArity("arguments to history-del", 1, 1, len(args)); err != nil {
			return nil, err
		}
		seq, ok := args[0].(vals.Int)
		if !ok {
			return nil, errs.BadValue{
				What: "history-del seq", Valid: "integer", Actual: vals.Kind(args[0])}
		}
		if _, err := s.Cmd(int(seq)); err != nil {
			if errors.Is(err, storedefs.ErrNoMatchingCmd) {
				return nil, fmt.Errorf("no history entry %d", seq)
			}
			return nil, err
		}
		if err := s.DelCmd(int(seq)); err != nil {
			return nil, fmt.Errorf("failed to delete history entry %d: %w", seq, err)
		}
		return vals.Str(fmt.Sprintf("Deleted history entry %d", seq)), nil
	}
}

// Values are stored in their source form and parsed back when recalled.

func persistVar(s storedefs.Store) func([]vals.Value, *eval.Context) (vals.Value, error) {
	return func(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
		ss, err := eval.StrArgs("persist-var", "name", 1, 1, args)
		if err != nil {
			return nil, err
		}
		name := ss[0]
		v, ok := ctx.Variable(name)
		if !ok {
			return nil, fmt.Errorf("variable '%s' not found", name)
		}
		if err := s.SetSharedVar(name, vals.Repr(v)); err != nil {
			return nil, fmt.Errorf("failed to persist variable '%s': %w", name, err)
		}
		ctx.Debugf("persist-var", "%s = %s", name, vals.Repr(v))
		return vals.Str(fmt.Sprintf("Variable '%s' persisted", name)), nil
	}
}

func recallVar(s storedefs.Store) func([]vals.Value, *eval.Context) (vals.Value, error) {
	return func(args []vals.Value, ctx *eval.Context) (vals.Value, error) {
		ss, err := eval.StrArgs("recall-var", "name", 1, 1, args)
		if err != nil {
			return nil, err
		}
		name := ss[0]
		code, err := s.SharedVar(name)
		if err != nil {
			if errors.Is(err, storedefs.ErrNoVar) {
				return nil, fmt.Errorf("no persisted variable '%s'", name)
			}
			return nil, err
		}
		n, err := parse.ParseOne(parse.Source{Name: "[store " + name + "]", Code: code})
		if err != nil {
			return nil, fmt.Errorf("persisted variable '%s' is corrupt: %w", name, err)
		}
		v, err := vals.FromNode(n)
		if err != nil {
			return nil, fmt.Errorf("persisted variable '%s' is corrupt: %w", name, err)
		}
		ctx.SetVariable(name, v)
		return v, nil
	}
}

func forgetVar(s storedefs.Store) func([]vals.Value, *eval.Context) (vals.Value, error) {
	return func(args []vals.Value, _ *eval.Context) (vals.Value, error) {
		ss, err := eval.StrArgs("forget-var", "name", 1, 1, args)
		if err != nil {
			return nil, err
		}
		_, err = s.SharedVar(ss[0])
		switch {
		case errors.Is(err, storedefs.ErrNoVar):
			return vals.Bool(false), nil
		case err != nil:
			return nil, err
		}
		if err := s.DelSharedVar(ss[0]); err != nil {
			return nil, fmt.Errorf("failed to forget variable '%s': %w", ss[0], err)
		}
		return vals.Bool(true), nil
	}
}

func persistedVars(s storedefs.Store) func([]vals.Value, *eval.Context) (vals.Value, error) {
	return func(args []vals.Value, _ *eval.Context) (vals.Value, error) {
		if err := eval.NoArgs("persisted-vars", args); err != nil {
			return nil, err
		}
		names, err := s.SharedVarNames()
		if err != nil {
			return nil, err
		}
		return vals.Strings(names...), nil
	}
}
