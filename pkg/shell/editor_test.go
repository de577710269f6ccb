package shell

import (
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.dpm.sh/pkg/must"
	. "src.dpm.sh/pkg/tt"
)

func TestIncomplete(t *testing.T) {
	Test(t, Fn("incomplete", incomplete), Table{
		Args("").Rets(false),
		Args("(sum 1 2)").Rets(false),
		Args("(sum 1").Rets(true),
		Args("(sum 1\n  (list 2").Rets(true),
		Args(`(print "a`).Rets(true),
		Args(`(print "a)"`).Rets(true),
		Args(`(print "a\"b)"`).Rets(true),
		Args(`(print "a\"b)")`).Rets(false),
		// Too many closing parens is an error, not an incomplete input.
		Args("(sum 1))").Rets(false),
		Args("(sum 1 ; comment (").Rets(true),
		Args("(sum 1) ; (").Rets(false),
		Args(`(list #\( 1)`).Rets(false),
	})
}

func TestCompleteCommand(t *testing.T) {
	names := []string{"str-join", "str-split", "sum", "print"}
	Test(t, Fn("completeCommand", completeCommand), Table{
		Args("(s", names).Rets([]string{"(str-join", "(str-split", "(sum"}),
		Args("(print (str-s", names).Rets([]string{"(print (str-split"}),
		Args("(", names).Rets(allWithPrefix("(", names)),
		// Only the head of a form is completed.
		Args("(print s", names).Rets([]string(nil)),
		Args("s", names).Rets([]string(nil)),
		Args("(x", names).Rets([]string(nil)),
	})
}

func allWithPrefix(prefix string, names []string) []string {
	var completions []string
	for _, name := range names {
		completions = append(completions, prefix+name)
	}
	return completions
}

func TestMinEditor(t *testing.T) {
	r, w := must.Pipe()
	go func() {
		w.WriteString("(print 1)\r\n\n(print 2)")
		w.Close()
	}()
	ed := newMinEditor(r)
	defer ed.Close()

	var lines []string
	for {
		line, err := ed.ReadCode()
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatal(err)
		}
		lines = append(lines, line)
	}
	want := []string{"(print 1)", "", "(print 2)"}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("lines (-want +got):\n%s", diff)
	}
}
