package eval

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.dpm.sh/pkg/eval/vals"
	"src.dpm.sh/pkg/logutil"
)

func constFn(v vals.Value) func([]vals.Value, *Context) (vals.Value, error) {
	return func([]vals.Value, *Context) (vals.Value, error) { return v, nil }
}

func TestRegistry_LastRegistrationWins(t *testing.T) {
	var buf bytes.Buffer
	logutil.SetOutput(&buf)
	t.Cleanup(func() { logutil.SetOutput(io.Discard) })

	r := NewRegistry()
	r.Register(NewFunc("x", "first", constFn(vals.Int(1))))
	r.Register(NewFunc("x", "second", constFn(vals.Int(2))))

	cmd, ok := r.Get("x")
	if !ok {
		t.Fatal("x not found")
	}
	if cmd.Description() != "second" {
		t.Errorf("got description %q, want second", cmd.Description())
	}
	if v, _ := cmd.Execute(nil, NewContext(r)); !vals.Equal(v, vals.Int(2)) {
		t.Errorf("got %v, want 2", v)
	}
	if diff := cmp.Diff([]string{"x"}, r.Names()); diff != "" {
		t.Errorf("Names (-want +got):\n%s", diff)
	}
	if !strings.Contains(buf.String(), "command x is registered again") {
		t.Errorf("shadowing not logged, log is %q", buf.String())
	}
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Get("nope"); ok {
		t.Errorf("Get on empty registry found a command")
	}
	r.RegisterAll(NewFunc("b", "B", constFn(nil)), NewFunc("a", "A", constFn(nil)))
	if diff := cmp.Diff([]string{"a", "b"}, r.Names()); diff != "" {
		t.Errorf("Names (-want +got):\n%s", diff)
	}
	want := []CommandInfo{{Name: "a", Description: "A"}, {Name: "b", Description: "B"}}
	if diff := cmp.Diff(want, r.Descriptions()); diff != "" {
		t.Errorf("Descriptions (-want +got):\n%s", diff)
	}
}

func TestRegistry_GroupedByTag(t *testing.T) {
	custom := Tag{Name: "custom", Order: 2, Text: "Custom"}
	r := NewRegistry()
	r.RegisterAll(
		NewFunc("b", "B", constFn(nil)),
		NewFunc("a", "A", constFn(nil)),
		NewFunc("z", "Z", constFn(nil)).WithTag(TagCommands),
		NewFunc("m", "M", constFn(nil)).WithTag(custom).WithHelp("(m)", "  (m)"),
		NewFunc("s", "", constFn(nil)).WithTag(TagSystem),
	)

	want := []TagGroup{
		{Tag: TagCommands, Commands: []CommandInfo{{Name: "z", Description: "Z"}}},
		{Tag: custom, Commands: []CommandInfo{{Name: "m", Description: "M"}}},
		{Tag: TagCore, Commands: []CommandInfo{
			{Name: "a", Description: "A"}, {Name: "b", Description: "B"}}},
		{Tag: TagSystem, Commands: []CommandInfo{
			{Name: "s", Description: "No description available"}}},
	}
	if diff := cmp.Diff(want, r.GroupedByTag()); diff != "" {
		t.Errorf("GroupedByTag (-want +got):\n%s", diff)
	}

	groups := r.GroupedByTagWithHelp()
	if got := groups[1].Commands[0]; got.Syntax != "(m)" || got.Examples != "  (m)" {
		t.Errorf("got %+v, want syntax and examples", got)
	}
	if got := groups[3].Commands[0]; got.Syntax != "Syntax not documented" ||
		got.Examples != "Examples not available" {
		t.Errorf("got %+v, want default syntax and examples", got)
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("cmd%d", i)
			r.Register(NewFunc(name, "", constFn(vals.Int(int64(i)))))
			r.Get(name)
			r.GroupedByTag()
		}(i)
	}
	wg.Wait()
	if n := len(r.Names()); n != 8 {
		t.Errorf("got %d commands, want 8", n)
	}
}

func TestFuncCommand_Defaults(t *testing.T) {
	cmd := NewFunc("x", "", constFn(nil))
	if cmd.Description() != "No description available" ||
		cmd.Syntax() != "Syntax not documented" ||
		cmd.Examples() != "Examples not available" ||
		cmd.Tag() != TagCore {
		t.Errorf("unexpected defaults: %q %q %q %v",
			cmd.Description(), cmd.Syntax(), cmd.Examples(), cmd.Tag())
	}
	if v, err := cmd.Execute(nil, nil); err != nil || !vals.Equal(v, vals.Nil) {
		t.Errorf("nil result not turned into Nil: %v, %v", v, err)
	}
}
