// Package sys wraps the OS facilities the shell needs behind one API for all
// platforms: signals, terminals and goroutine dumps.
package sys

import (
	"os"
	"os/signal"
	"runtime"

	"github.com/mattn/go-isatty"
)

// NotifySignals returns a channel that receives every signal delivered to the
// process. The caller stops delivery with signal.Stop.
func NotifySignals() chan os.Signal {
	ch := make(chan os.Signal, 256)
	signal.Notify(ch)
	ignoreJobControl()
	return ch
}

// IsATTY reports whether file is a terminal, including Cygwin ones. A nil
// file is not a terminal.
func IsATTY(file *os.File) bool {
	if file == nil {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// DumpStack returns the stacks of all goroutines.
func DumpStack() string {
	buf := make([]byte, 8192)
	for {
		n := runtime.Stack(buf, true)
		if n < len(buf) {
			return string(buf[:n])
		}
		buf = make([]byte, 2*len(buf))
	}
}
