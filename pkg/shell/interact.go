package shell

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"src.dpm.sh/pkg/diag"
	"src.dpm.sh/pkg/eval"
	"src.dpm.sh/pkg/eval/vals"
	"src.dpm.sh/pkg/parse"
	"src.dpm.sh/pkg/store/storedefs"
	"src.dpm.sh/pkg/sys"
)

// Configuration for line mode.
type interactCfg struct {
	// RC is the rc file evaluated before reading any line. A nonexistent file
	// is silently skipped.
	RC string
	// History records every evaluated line when not nil.
	History storedefs.Store
}

// Reads lines from stdin and evaluates each one. Errors are shown and don't
// stop the loop.
func interact(fds [3]*os.File, ctx *eval.Context, cfg *interactCfg) {
	tty := sys.IsATTY(fds[0]) && sys.IsATTY(fds[1])

	if cfg.RC != "" {
		err := sourceRC(ctx, cfg.RC)
		if err != nil {
			diag.ShowError(fds[2], err, tty)
		}
	}

	var ed editor
	if tty {
		ed = newLinerEditor(ctx.Registry, cfg.History)
	} else {
		ed = newMinEditor(fds[0])
	}
	defer func() { ed.Close() }()

	cooldown := time.Second
	cmdNum := 0

	for {
		cmdNum++

		line, err := ed.ReadCode()

		if err == io.EOF {
			break
		} else if err != nil {
			fmt.Fprintln(fds[2], "Editor error:", err)
			if _, isMinEditor := ed.(*minEditor); !isMinEditor {
				fmt.Fprintln(fds[2], "Falling back to basic line editor")
				ed.Close()
				ed = newMinEditor(fds[0])
			} else {
				fmt.Fprintln(fds[2], "Don't know what to do, pid is", os.Getpid())
				fmt.Fprintln(fds[2], "Restarting editor in", cooldown)
				time.Sleep(cooldown)
				if cooldown < time.Minute {
					cooldown *= 2
				}
			}
			continue
		}

		// No error; reset cooldown.
		cooldown = time.Second

		if strings.TrimSpace(line) == "" {
			continue
		}
		if cfg.History != nil {
			_, err := cfg.History.AddCmdInSession(line, ctx.SessionID)
			if err != nil {
				logger.Println("failed to add command to history:", err)
			}
		}

		v, err := eval.EvalSource(
			parse.Source{Name: fmt.Sprintf("[tty %v]", cmdNum), Code: line}, ctx)
		if err != nil {
			diag.ShowError(fds[2], err, tty)
			continue
		}
		if tty && !vals.Equal(v, vals.Nil) {
			fmt.Fprintln(fds[1], vals.Repr(v))
		}
	}
}

func sourceRC(ctx *eval.Context, rcPath string) error {
	absPath, err := filepath.Abs(rcPath)
	if err != nil {
		return fmt.Errorf("cannot get full path of rc file: %v", err)
	}
	code, err := readFileUTF8(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	_, err = eval.EvalSource(parse.Source{Name: absPath, Code: code}, ctx)
	return err
}
