//go:build !unix

package unix

import "src.dpm.sh/pkg/eval"

// ExposeUnixCommands indicates whether this package provides any commands.
const ExposeUnixCommands = false

// Commands returns nil on platforms that are not Unix-like.
func Commands() []eval.Command { return nil }
