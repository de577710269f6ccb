// Package storedefs defines the store API, so that its users don't depend on
// the bolt implementation.
package storedefs

import "errors"

var (
	// ErrNoMatchingCmd is returned by Store.Cmd for a missing entry.
	ErrNoMatchingCmd = errors.New("no matching command line")
	// ErrNoVar is returned by Store.SharedVar for a missing variable.
	ErrNoVar = errors.New("no such variable")
)

// Store is the persistent storage of dpm: the history of evaluated lines and
// variables shared between sessions. Shared variables hold the source form of
// a value.
type Store interface {
	NextCmdSeq() (int, error)
	AddCmdInSession(text, session string) (int, error)
	DelCmd(seq int) error
	Cmd(seq int) (string, error)
	CmdsWithSeq(from, upto int) ([]Cmd, error)
	SessionCmds(session string) ([]Cmd, error)

	SharedVar(name string) (string, error)
	SetSharedVar(name, value string) error
	DelSharedVar(name string) error
	SharedVarNames() ([]string, error)
}

// Cmd is a history entry. Session is the ID of the session that evaluated it,
// empty when it was not recorded.
type Cmd struct {
	Text    string
	Seq     int
	Session string
}
