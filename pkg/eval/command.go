package eval

import (
	"src.dpm.sh/pkg/eval/vals"
)

// Tag is a category used to group commands in help output. Groups are shown
// in ascending Order.
type Tag struct {
	Name  string
	Order int
	Text  string
}

// Predefined tags.
var (
	TagCommands = Tag{Name: "commands", Order: 2, Text: "Command Management"}
	TagStore    = Tag{Name: "store", Order: 500, Text: "Persistent Store"}
	TagCore     = Tag{Name: "core", Order: 1000, Text: "Core Commands"}
	TagSystem   = Tag{Name: "system", Order: 9999, Text: "System Library"}
)

// Command is a named handler that can be called from code as
// (name arg1 arg2 ...).
type Command interface {
	Name() string
	Description() string
	Syntax() string
	Examples() string
	Tag() Tag
	// Execute runs the command with already evaluated arguments. The context
	// must not be retained after Execute returns.
	Execute(args []vals.Value, ctx *Context) (vals.Value, error)
}

// Defaults for commands that don't provide help text.
const (
	defaultDescription = "No description available"
	defaultSyntax      = "Syntax not documented"
	defaultExamples    = "Examples not available"
)

// FuncCommand is a Command backed by a Go function.
type FuncCommand struct {
	name        string
	description string
	syntax      string
	examples    string
	tag         Tag
	fn          func(args []vals.Value, ctx *Context) (vals.Value, error)
}

var _ Command = (*FuncCommand)(nil)

// NewFunc creates a FuncCommand with the given name and description, tagged
// with TagCore. Use WithHelp and WithTag to fill in the rest.
func NewFunc(name, description string, fn func(args []vals.Value, ctx *Context) (vals.Value, error)) *FuncCommand {
	if description == "" {
		description = defaultDescription
	}
	return &FuncCommand{
		name: name, description: description,
		syntax: defaultSyntax, examples: defaultExamples,
		tag: TagCore, fn: fn,
	}
}

// WithHelp sets the syntax and examples of the command and returns it.
func (c *FuncCommand) WithHelp(syntax, examples string) *FuncCommand {
	if syntax != "" {
		c.syntax = syntax
	}
	if examples != "" {
		c.examples = examples
	}
	return c
}

// WithTag sets the tag of the command and returns it.
func (c *FuncCommand) WithTag(tag Tag) *FuncCommand {
	c.tag = tag
	return c
}

func (c *FuncCommand) Name() string        { return c.name }
func (c *FuncCommand) Description() string { return c.description }
func (c *FuncCommand) Syntax() string      { return c.syntax }
func (c *FuncCommand) Examples() string    { return c.examples }
func (c *FuncCommand) Tag() Tag            { return c.tag }

// Execute calls the underlying function. A nil result is turned into Nil.
func (c *FuncCommand) Execute(args []vals.Value, ctx *Context) (vals.Value, error) {
	v, err := c.fn(args, ctx)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return vals.Nil, nil
	}
	return v, nil
}
