package eval

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.dpm.sh/pkg/eval/errs"
	"src.dpm.sh/pkg/eval/vals"
)

func TestStrArgs(t *testing.T) {
	ss, err := StrArgs("cmd", "path", 1, 2, []vals.Value{vals.Str("a"), vals.Str("b")})
	if diff := cmp.Diff([]string{"a", "b"}, ss); diff != "" || err != nil {
		t.Errorf("StrArgs -> %v (-want +got):\n%s", err, diff)
	}

	_, err = StrArgs("cmd", "path", 1, 2, nil)
	want := errs.ArityMismatch{What: "arguments to cmd", ValidLow: 1, ValidHigh: 2, Actual: 0}
	if err != want {
		t.Errorf("StrArgs with no args -> %v, want %v", err, want)
	}

	_, err = StrArgs("cmd", "path", 0, -1, []vals.Value{vals.Str("a"), vals.Int(1)})
	if err == nil || err.Error() != "bad value: cmd path must be string, but is int" {
		t.Errorf("StrArgs with int -> %v", err)
	}
}

func TestNoArgs(t *testing.T) {
	if err := NoArgs("cmd", nil); err != nil {
		t.Errorf("NoArgs(nil) -> %v", err)
	}
	if err := NoArgs("cmd", []vals.Value{vals.Nil}); err == nil {
		t.Errorf("NoArgs with one arg -> nil")
	}
}
