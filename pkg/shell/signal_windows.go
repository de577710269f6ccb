package shell

import (
	"os"
	"syscall"
)

func ignoreSignal(os.Signal) bool { return false }

func handleSignal(sig os.Signal, stderr *os.File, interactive bool) {
	switch sig {
	case os.Interrupt:
		if !interactive {
			os.Exit(130)
		}
	case syscall.SIGTERM:
		os.Exit(0)
	}
}
