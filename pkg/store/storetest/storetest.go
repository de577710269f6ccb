// Package storetest contains test suites that any storedefs.Store
// implementation should pass.
package storetest

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.dpm.sh/pkg/store/storedefs"
)

// TestCmd tests the command history of an empty store.
func TestCmd(t *testing.T, s storedefs.Store) {
	if seq, err := s.NextCmdSeq(); seq != 1 || err != nil {
		t.Fatalf("NextCmdSeq() -> (%v, %v), want (1, nil)", seq, err)
	}

	all := []storedefs.Cmd{
		{Text: "(print 1)", Seq: 1, Session: "s1"},
		{Text: "(sum 1 2)", Seq: 2, Session: "s1"},
		{Text: "(print 3)", Seq: 3, Session: "s2"},
		{Text: "(print 1)", Seq: 4},
	}
	for _, cmd := range all {
		seq, err := s.AddCmdInSession(cmd.Text, cmd.Session)
		if seq != cmd.Seq || err != nil {
			t.Errorf("AddCmdInSession(%q, %q) -> (%v, %v), want (%v, nil)",
				cmd.Text, cmd.Session, seq, err, cmd.Seq)
		}
	}
	if seq, err := s.NextCmdSeq(); seq != 5 || err != nil {
		t.Errorf("NextCmdSeq() -> (%v, %v), want (5, nil)", seq, err)
	}

	for from := 0; from <= 5; from++ {
		for upto := 0; upto <= 5; upto++ {
			var want []storedefs.Cmd
			for _, cmd := range all {
				if from <= cmd.Seq && cmd.Seq < upto {
					want = append(want, cmd)
				}
			}
			got, err := s.CmdsWithSeq(from, upto)
			if diff := cmp.Diff(want, got); diff != "" || err != nil {
				t.Errorf("CmdsWithSeq(%v, %v) returns error %v, diff (-want +got):\n%s",
					from, upto, err, diff)
			}
		}
	}

	for _, cmd := range all {
		if text, err := s.Cmd(cmd.Seq); text != cmd.Text || err != nil {
			t.Errorf("Cmd(%v) -> (%q, %v), want (%q, nil)", cmd.Seq, text, err, cmd.Text)
		}
	}
	if _, err := s.Cmd(5); !errors.Is(err, storedefs.ErrNoMatchingCmd) {
		t.Errorf("Cmd(5) -> error %v, want ErrNoMatchingCmd", err)
	}

	got, err := s.SessionCmds("s1")
	if diff := cmp.Diff(all[:2], got); diff != "" || err != nil {
		t.Errorf("SessionCmds(s1) returns error %v, diff (-want +got):\n%s", err, diff)
	}
	if got, _ := s.SessionCmds("none"); len(got) != 0 {
		t.Errorf("SessionCmds(none) -> %v, want none", got)
	}

	if err := s.DelCmd(1); err != nil {
		t.Errorf("DelCmd(1) -> %v", err)
	}
	if _, err := s.Cmd(1); !errors.Is(err, storedefs.ErrNoMatchingCmd) {
		t.Errorf("Cmd(1) after DelCmd(1) -> error %v, want ErrNoMatchingCmd", err)
	}
	if got, _ := s.SessionCmds("s1"); len(got) != 1 || got[0].Seq != 2 {
		t.Errorf("SessionCmds(s1) after DelCmd(1) -> %v", got)
	}
	if err := s.DelCmd(1); err != nil {
		t.Errorf("deleting a missing entry -> %v", err)
	}
	// Sequence numbers are not reused.
	if seq, _ := s.NextCmdSeq(); seq != 5 {
		t.Errorf("NextCmdSeq() after DelCmd -> %v, want 5", seq)
	}
}

// TestSharedVar tests the shared variables of an empty store.
func TestSharedVar(t *testing.T, s storedefs.Store) {
	if _, err := s.SharedVar("region"); !errors.Is(err, storedefs.ErrNoVar) {
		t.Errorf("SharedVar on empty store -> error %v, want ErrNoVar", err)
	}

	for _, value := range []string{`"eu"`, `(list 1 2)`} {
		if err := s.SetSharedVar("region", value); err != nil {
			t.Errorf("SetSharedVar -> %v", err)
		}
		if v, err := s.SharedVar("region"); v != value || err != nil {
			t.Errorf("SharedVar(region) -> (%q, %v), want (%q, nil)", v, err, value)
		}
	}

	s.SetSharedVar("port", "80")
	names, err := s.SharedVarNames()
	if diff := cmp.Diff([]string{"port", "region"}, names); diff != "" || err != nil {
		t.Errorf("SharedVarNames returns error %v, diff (-want +got):\n%s", err, diff)
	}

	if err := s.DelSharedVar("region"); err != nil {
		t.Errorf("DelSharedVar -> %v", err)
	}
	if _, err := s.SharedVar("region"); !errors.Is(err, storedefs.ErrNoVar) {
		t.Errorf("SharedVar after delete -> error %v, want ErrNoVar", err)
	}
	if err := s.DelSharedVar("nonexistent"); err != nil {
		t.Errorf("deleting a missing variable -> %v", err)
	}
}
