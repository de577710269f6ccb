//go:build unix

package sys

import (
	"os/signal"
	"syscall"
)

// signal.Notify resets ignored signals, so this runs after every call. dpm
// has no job control: stopping it while a child process owns the terminal
// would leave both stuck.
func ignoreJobControl() {
	signal.Ignore(syscall.SIGTTIN, syscall.SIGTTOU, syscall.SIGTSTP)
}
