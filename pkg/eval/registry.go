package eval

import (
	"sort"
	"sync"
)

// Registry maps command names to commands. It is safe for concurrent use.
// Handlers run outside the lock, so a handler may look up or register
// commands.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

// CommandInfo is the help information of one command. Syntax and Examples are
// only filled by Registry.GroupedByTagWithHelp.
type CommandInfo struct {
	Name        string
	Description string
	Syntax      string
	Examples    string
}

// TagGroup is a list of commands sharing a tag, sorted by name.
type TagGroup struct {
	Tag      Tag
	Commands []CommandInfo
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds a command. A command previously registered under the same
// name is replaced.
func (r *Registry) Register(cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := cmd.Name()
	if _, exists := r.commands[name]; exists {
		logger.Printf("command %s is registered again; the previous one is shadowed", name)
	}
	r.commands[name] = cmd
}

// RegisterAll registers each of the commands in turn.
func (r *Registry) RegisterAll(cmds ...Command) {
	for _, cmd := range cmds {
		r.Register(cmd)
	}
}

// Get looks up a command by name.
func (r *Registry) Get(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names returns the names of all commands, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Descriptions returns the names and descriptions of all commands, sorted by
// name.
func (r *Registry) Descriptions() []CommandInfo {
	var infos []CommandInfo
	for _, g := range r.groups(false) {
		infos = append(infos, g.Commands...)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// GroupedByTag returns the names and descriptions of all commands grouped by
// tag. Groups are sorted by tag order and commands within a group by name.
func (r *Registry) GroupedByTag() []TagGroup {
	return r.groups(false)
}

// GroupedByTagWithHelp is like GroupedByTag, but also includes the syntax and
// examples of each command.
func (r *Registry) GroupedByTagWithHelp() []TagGroup {
	return r.groups(true)
}

func (r *Registry) groups(withHelp bool) []TagGroup {
	r.mu.RLock()
	byTag := make(map[string]*TagGroup)
	for name, cmd := range r.commands {
		tag := cmd.Tag()
		g, ok := byTag[tag.Name]
		if !ok {
			g = &TagGroup{Tag: tag}
			byTag[tag.Name] = g
		}
		info := CommandInfo{Name: name, Description: cmd.Description()}
		if withHelp {
			info.Syntax = cmd.Syntax()
			info.Examples = cmd.Examples()
		}
		g.Commands = append(g.Commands, info)
	}
	r.mu.RUnlock()

	groups := make([]TagGroup, 0, len(byTag))
	for _, g := range byTag {
		sort.Slice(g.Commands, func(i, j int) bool {
			return g.Commands[i].Name < g.Commands[j].Name
		})
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool {
		a, b := groups[i].Tag, groups[j].Tag
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.Name < b.Name
	})
	return groups
}
