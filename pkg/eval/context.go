package eval

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"

	"src.dpm.sh/pkg/eval/vals"
	"src.dpm.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[eval] ")

// Context is the mutable state of one session. It is created once by the
// driver with NewContext and passed to every command. The variables and the
// base directory of a zero Context are usable, but it has no registry or
// writers.
type Context struct {
	Registry *Registry
	// SessionID identifies the session, for example in the command history.
	SessionID string
	// Stdout and Stderr receive the output of commands.
	Stdout io.Writer
	Stderr io.Writer

	vars       map[string]vals.Value
	debugPrint bool
	basedir    string
}

// NewContext creates a Context using the given registry, writing to the
// process's stdout and stderr. The base directory is ".".
func NewContext(r *Registry) *Context {
	if r == nil {
		r = NewRegistry()
	}
	return &Context{
		Registry:  r,
		SessionID: uuid.NewString(),
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		vars:      make(map[string]vals.Value),
		basedir:   ".",
	}
}

// Variable returns the value of a session variable.
func (ctx *Context) Variable(name string) (vals.Value, bool) {
	v, ok := ctx.vars[name]
	return v, ok
}

// SetVariable sets a session variable.
func (ctx *Context) SetVariable(name string, v vals.Value) {
	if ctx.vars == nil {
		ctx.vars = make(map[string]vals.Value)
	}
	ctx.vars[name] = vals.Copy(v)
}

// DeleteVariable removes a session variable, returning whether it existed.
func (ctx *Context) DeleteVariable(name string) bool {
	_, ok := ctx.vars[name]
	delete(ctx.vars, name)
	return ok
}

// VariableNames returns the names of all session variables, sorted.
func (ctx *Context) VariableNames() []string {
	names := make([]string, 0, len(ctx.vars))
	for name := range ctx.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DebugPrint returns whether debug printing is on.
func (ctx *Context) DebugPrint() bool { return ctx.debugPrint }

// SetDebugPrint turns debug printing on or off.
func (ctx *Context) SetDebugPrint(b bool) { ctx.debugPrint = b }

// Basedir returns the base directory that relative paths are resolved
// against.
func (ctx *Context) Basedir() string {
	if ctx.basedir == "" {
		return "."
	}
	return ctx.basedir
}

// SetBasedir sets the base directory.
func (ctx *Context) SetBasedir(dir string) { ctx.basedir = dir }

// Debugf logs a message from a component. The message always goes to the
// log; it is also written to Stderr when debug printing is on.
func (ctx *Context) Debugf(component, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logger.Printf("%s: %s", component, msg)
	if ctx.debugPrint {
		fmt.Fprintf(ctx.Stderr, "[DEBUG %s] %s\n", component, msg)
	}
}

// DebugInfo returns a report of the session state.
func (ctx *Context) DebugInfo() string {
	var sb strings.Builder
	sb.WriteString("\n=== DEBUG: Current Program State ===\n")
	sb.WriteString("\n--- Fixed Context Variables ---\n")
	fmt.Fprintf(&sb, "  debugPrint = %v\n", ctx.debugPrint)
	fmt.Fprintf(&sb, "  basedir = %s\n", ctx.basedir)
	fmt.Fprintf(&sb, "  session = %s\n", ctx.SessionID)
	sb.WriteString("\n--- Session Variables ---\n")
	if len(ctx.vars) == 0 {
		sb.WriteString("  (no variables set)\n")
	} else {
		for _, name := range ctx.VariableNames() {
			fmt.Fprintf(&sb, "  %s = %s\n", name, vals.ToString(ctx.vars[name]))
		}
	}
	sb.WriteString("\n=== End Debug Info ===\n")
	return sb.String()
}
