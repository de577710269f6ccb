//go:build unix

package shell

import (
	"fmt"
	"os"
	"syscall"

	"src.dpm.sh/pkg/sys"
)

func ignoreSignal(sig os.Signal) bool {
	// SIGURG isn't interesting since it is used internally by the Go runtime on UNIX and occurs
	// with great frequency.
	return sig.(syscall.Signal) == syscall.SIGURG
}

func handleSignal(sig os.Signal, stderr *os.File, interactive bool) {
	switch sig {
	case syscall.SIGHUP:
		syscall.Kill(0, syscall.SIGHUP)
		os.Exit(0)
	case syscall.SIGUSR1:
		fmt.Fprint(stderr, sys.DumpStack())
	case syscall.SIGINT:
		// An interrupt in line mode only stops the external process in the
		// foreground.
		if !interactive {
			os.Exit(130)
		}
	case syscall.SIGTERM:
		os.Exit(143)
	}
}
