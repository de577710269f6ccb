package sys

import (
	"os"
	"testing"

	"src.dpm.sh/pkg/must"
)

func TestIsATTY(t *testing.T) {
	r, w := must.Pipe()
	defer r.Close()
	defer w.Close()
	if IsATTY(r) || IsATTY(w) {
		t.Errorf("pipe is reported as a terminal")
	}
	if IsATTY(nil) {
		t.Errorf("nil file is reported as a terminal")
	}
}

func TestIsATTY_RegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "file")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsATTY(f) {
		t.Errorf("regular file is reported as a terminal")
	}
}

func TestDumpStack(t *testing.T) {
	if s := DumpStack(); len(s) == 0 {
		t.Errorf("DumpStack returned empty string")
	}
}
