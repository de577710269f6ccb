package hashdir

import (
	"path/filepath"
	"testing"

	"src.dpm.sh/pkg/testutil"
	"src.dpm.sh/pkg/tt"
)

func TestMD5(t *testing.T) {
	dir := testutil.TempDir(t)
	testutil.ApplyDirIn(testutil.Dir{
		"a.txt": "a",
		"sub":   testutil.Dir{"b.txt": "bb"},
		"empty": testutil.Dir{},
	}, dir)

	sum, err := MD5(dir)
	if want := "c84c934a71a6e26d601f11925b5bba82"; sum != want || err != nil {
		t.Errorf("MD5 -> (%q, %v), want (%q, nil)", sum, err, want)
	}

	again, _ := MD5(dir)
	if again != sum {
		t.Errorf("MD5 is not deterministic: %q then %q", sum, again)
	}

	testutil.ApplyDirIn(testutil.Dir{"a.txt": "changed"}, dir)
	if changed, _ := MD5(dir); changed == sum {
		t.Errorf("MD5 did not change after a file changed")
	}
}

func TestMD5_NamesOnlyOrder(t *testing.T) {
	a, b := testutil.TempDir(t), testutil.TempDir(t)
	testutil.ApplyDirIn(testutil.Dir{"main.rs": "fn main() {}"}, a)
	testutil.ApplyDirIn(testutil.Dir{"src": testutil.Dir{"lib.rs": "fn main() {}"}}, b)

	sumA, errA := MD5(a)
	sumB, errB := MD5(b)
	if errA != nil || errB != nil || sumA != sumB {
		t.Errorf("renamed file changes the digest: (%q, %v) vs (%q, %v)", sumA, errA, sumB, errB)
	}
}

func TestMD5_EmptyDir(t *testing.T) {
	sum, err := MD5(testutil.TempDir(t))
	if want := "d41d8cd98f00b204e9800998ecf8427e"; sum != want || err != nil {
		t.Errorf("MD5 -> (%q, %v), want (%q, nil)", sum, err, want)
	}
}

func TestMD5_Errors(t *testing.T) {
	dir := testutil.TempDir(t)
	testutil.ApplyDirIn(testutil.Dir{"f": "x"}, dir)
	if _, err := MD5(filepath.Join(dir, "f")); err == nil {
		t.Errorf("MD5 of a regular file succeeded")
	}
	if _, err := MD5(filepath.Join(dir, "missing")); err == nil {
		t.Errorf("MD5 of a missing path succeeded")
	}
}

func TestShort(t *testing.T) {
	tt.Test(t, tt.Fn("Short", Short), tt.Table{
		tt.Args("c84c934a71a6e26d601f11925b5bba82").Rets("c84c934a"),
		tt.Args("abc").Rets("abc"),
		tt.Args("").Rets(""),
	})
}
