package shell

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"src.dpm.sh/pkg/eval"
	"src.dpm.sh/pkg/store/storedefs"
	"src.dpm.sh/pkg/strutil"
)

const (
	prompt             = "dpm> "
	continuationPrompt = "...> "
	// Number of store entries loaded into the history of the line editor.
	historyLoadSize = 1000
)

// This type is the interface that the line editor has to satisfy.
type editor interface {
	ReadCode() (string, error)
	Close() error
}

// Reads one line at a time without a prompt. Used when stdin is not a
// terminal.
type minEditor struct {
	in *bufio.Reader
}

func newMinEditor(in *os.File) *minEditor {
	return &minEditor{bufio.NewReader(in)}
}

func (ed *minEditor) ReadCode() (string, error) {
	line, err := ed.in.ReadString('\n')
	if err == io.EOF && line != "" {
		// The last line has no line ending; return it and leave io.EOF to the
		// next call.
		err = nil
	}
	return strutil.ChopLineEnding(line), err
}

func (ed *minEditor) Close() error { return nil }

type linerEditor struct {
	state *liner.State
}

func newLinerEditor(r *eval.Registry, history storedefs.Store) *linerEditor {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetTabCompletionStyle(liner.TabPrints)
	state.SetCompleter(func(line string) []string {
		return completeCommand(line, r.Names())
	})
	if history != nil {
		loadHistory(state, history)
	}
	return &linerEditor{state}
}

// Copies the most recent entries of the store into the history of the line
// editor.
func loadHistory(state *liner.State, history storedefs.Store) {
	upto, err := history.NextCmdSeq()
	if err != nil {
		logger.Println("cannot get next history seq:", err)
		return
	}
	cmds, err := history.CmdsWithSeq(max(0, upto-historyLoadSize), upto)
	if err != nil {
		logger.Println("cannot load history:", err)
		return
	}
	for _, cmd := range cmds {
		state.AppendHistory(cmd.Text)
	}
}

// ReadCode reads lines until the accumulated code has no unclosed list or
// string. Ctrl-C discards the code read so far.
func (ed *linerEditor) ReadCode() (string, error) {
	var sb strings.Builder
	p := prompt
	for {
		line, err := ed.state.Prompt(p)
		if err == liner.ErrPromptAborted {
			sb.Reset()
			p = prompt
			continue
		} else if err != nil {
			return "", err
		}
		sb.WriteString(line)
		code := sb.String()
		if incomplete(code) {
			sb.WriteByte('\n')
			p = continuationPrompt
			continue
		}
		if strings.TrimSpace(code) != "" {
			ed.state.AppendHistory(code)
		}
		return code, nil
	}
}

func (ed *linerEditor) Close() error { return ed.state.Close() }

// Returns completions of the command name being typed at the end of line,
// each being the whole line with the name completed.
func completeCommand(line string, names []string) []string {
	i := strutil.SymbolStart(line)
	if i == 0 || line[i-1] != '(' {
		return nil
	}
	head, prefix := line[:i], line[i:]
	var completions []string
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			completions = append(completions, head+name)
		}
	}
	return completions
}

// Reports whether code has an unclosed list or string literal.
func incomplete(code string) bool {
	depth := 0
	inString, escapeNext := false, false
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case escapeNext:
			escapeNext = false
		case inString:
			switch c {
			case '\\':
				escapeNext = true
			case '"':
				inString = false
			}
		case c == '"':
			inString = true
		case c == ';':
			i += strutil.FindFirstEOL(code[i:])
		case c == '#' && strings.HasPrefix(code[i:], `#\`):
			// Character literal; the character may be a delimiter.
			i += 2
		case c == '(':
			depth++
		case c == ')':
			depth--
		}
	}
	return inString || depth > 0
}
