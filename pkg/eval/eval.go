// Package eval evaluates parsed code by dispatching forms to registered
// commands.
//
// A form (name arg1 arg2 ...) is evaluated by looking up name in the registry
// of the Context, evaluating the arguments from left to right, and calling the
// command with their values. Any other node evaluates to itself, converted by
// vals.FromNode.
package eval

import (
	"fmt"

	"src.dpm.sh/pkg/diag"
	"src.dpm.sh/pkg/eval/vals"
	"src.dpm.sh/pkg/parse"
)

// DispatchError is returned when a form can't be dispatched to a command.
type DispatchError struct {
	// Name of the command that was not found. Empty if the head of the form
	// was not a symbol.
	Name string
	// Source context of the head of the form. May be nil.
	Context *diag.Context
}

func (e *DispatchError) Error() string {
	if e.Name == "" {
		return "first element of a list must be a command name"
	}
	return "unknown command: " + e.Name
}

// Show shows the error with the offending head highlighted.
func (e *DispatchError) Show(culpritStart, culpritEnd string) string {
	if e.Context == nil {
		return e.Error()
	}
	return fmt.Sprintf("%s\n  %s", e.Error(), e.Context.Show(culpritStart, culpritEnd))
}

var _ diag.Shower = (*DispatchError)(nil)

// Eval evaluates one node.
func Eval(n parse.Node, ctx *Context) (vals.Value, error) {
	return (&evaler{ctx: ctx}).eval(n)
}

// EvalString evaluates code and returns the value of the last top-level
// expression, or Nil if there is none. Evaluation stops at the first error.
func EvalString(code string, ctx *Context) (vals.Value, error) {
	return EvalSource(parse.Source{Name: "[eval]", Code: code}, ctx)
}

// EvalSource is like EvalString, but takes a named source. The code is parsed
// with parse.Parse, falling back to parse.ParseRaw if that fails.
func EvalSource(src parse.Source, ctx *Context) (vals.Value, error) {
	nodes, err := parse.Parse(src)
	if err != nil {
		nodes, err = parse.ParseRaw(src)
		if err != nil {
			return nil, err
		}
	}
	ev := &evaler{ctx: ctx, src: &src}
	var last vals.Value = vals.Nil
	for _, n := range nodes {
		last, err = ev.eval(n)
		if err != nil {
			return nil, err
		}
	}
	return last, nil
}

// Call looks up a command and calls it with the given arguments, which are
// not evaluated again.
func Call(name string, args []vals.Value, ctx *Context) (vals.Value, error) {
	cmd, ok := ctx.Registry.Get(name)
	if !ok {
		return nil, &DispatchError{Name: name}
	}
	return execute(cmd, args, ctx)
}

type evaler struct {
	ctx *Context
	src *parse.Source
}

func (ev *evaler) context(n parse.Node) *diag.Context {
	if ev.src == nil {
		return nil
	}
	return diag.NewContext(ev.src.Name, ev.src.Code, n)
}

func (ev *evaler) eval(n parse.Node) (vals.Value, error) {
	form, ok := n.(*parse.Form)
	if !ok {
		return vals.FromNode(n)
	}
	return ev.evalForm(form)
}

// Calls the command of form with the evaluated arguments followed by extra,
// which are passed as they are.
func (ev *evaler) evalForm(form *parse.Form, extra ...vals.Value) (vals.Value, error) {
	head := form.Head()
	if head == nil {
		return vals.Nil, nil
	}
	name, ok := parse.IsSymbol(head)
	if !ok {
		return nil, &DispatchError{Context: ev.context(head)}
	}
	cmd, ok := ev.ctx.Registry.Get(name)
	if !ok {
		return nil, &DispatchError{Name: name, Context: ev.context(head)}
	}

	args := make([]vals.Value, 0, len(form.Items))
	for _, item := range form.Items[1:] {
		v, err := ev.eval(item)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	if form.Tail != nil {
		v, err := ev.eval(form.Tail)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	args = append(args, extra...)
	return execute(cmd, args, ev.ctx)
}

func execute(cmd Command, args []vals.Value, ctx *Context) (vals.Value, error) {
	ctx.Debugf("eval", "calling %s with %d arguments", cmd.Name(), len(args))
	v, err := cmd.Execute(args, ctx)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return vals.Nil, nil
	}
	return v, nil
}
