//go:build unix

package unix

import (
	"os"
	"testing"

	"golang.org/x/sys/unix"

	. "src.dpm.sh/pkg/eval/evaltest"
	"src.dpm.sh/pkg/eval/errs"
	"src.dpm.sh/pkg/eval/vals"
)

var use = Use(Commands()...)

func TestHostIDs(t *testing.T) {
	TestWithSetup(t, use,
		That("(host-ids)").Puts(vals.Ints(
			int64(os.Getuid()), int64(os.Getgid()), int64(os.Geteuid()), int64(os.Getegid()))),
		That("(host-ids 1)").Throws(errs.ArityMismatch{
			What: "arguments to host-ids", ValidLow: 0, ValidHigh: 0, Actual: 1}),
	)
}

func TestUmask(t *testing.T) {
	saved := unix.Umask(0o022)
	umaskVal = 0o022
	t.Cleanup(func() {
		unix.Umask(saved)
		umaskVal = saved
	})

	TestWithSetup(t, use,
		That("(umask)").Puts(vals.Str("0o022")),
		That(`(umask "027")`).Then("(umask)").Puts(vals.Str("0o027")),
		That(`(umask "0x1f")`).Puts(vals.Str("0o027")),
		That("(umask 18)").Then("(umask)").Puts(vals.Str("0o022")),

		That(`(umask "x")`).Throws(errs.BadValue{
			What: "umask", Valid: validUmaskMsg, Actual: "x"}),
		That("(umask (list))").Throws(errs.BadValue{
			What: "umask", Valid: validUmaskMsg, Actual: "list"}),
		That("(umask 512)").Throws(errs.OutOfRange{
			What: "umask", ValidLow: 0, ValidHigh: 0o777, Actual: "0o1000"}),
		That("(umask -1)").Throws(errs.OutOfRange{
			What: "umask", ValidLow: 0, ValidHigh: 0o777, Actual: "-0o1"}),
		That("(umask 1 2)").Throws(errs.ArityMismatch{
			What: "arguments to umask", ValidLow: 0, ValidHigh: 1, Actual: 2}),
	)
}
