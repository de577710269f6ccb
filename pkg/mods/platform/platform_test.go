package platform

import (
	"errors"
	"runtime"
	"testing"

	. "src.dpm.sh/pkg/eval/evaltest"
	"src.dpm.sh/pkg/eval/errs"
	"src.dpm.sh/pkg/eval/vals"
	"src.dpm.sh/pkg/testutil"
)

var use = Use(Commands()...)

func TestPlatform(t *testing.T) {
	testutil.Set(t, &osHostname, func() (string, error) {
		return "mach1.domain.tld", nil
	})

	TestWithSetup(t, use,
		That("(platform-arch)").Puts(vals.Str(runtime.GOARCH)),
		That("(platform-os)").Puts(vals.Str(runtime.GOOS)),
		That("(platform-is-windows)").Puts(vals.Bool(runtime.GOOS == "windows")),
		That("(platform-is-unix)").Puts(vals.Bool(
			runtime.GOOS != "windows" && runtime.GOOS != "plan9" && runtime.GOOS != "js")),
		That("(platform-os 1)").Throws(errs.ArityMismatch{
			What: "arguments", ValidLow: 0, ValidHigh: 0, Actual: 1}),
		That("(hostname)").Puts(vals.Str("mach1.domain.tld")),
		That("(hostname #t)").Puts(vals.Str("mach1")),
		That("(hostname #f)").Puts(vals.Str("mach1.domain.tld")),
	)
}

func TestPlatform_HostNameError(t *testing.T) {
	errNoHostname := errors.New("hostname cannot be determined")

	testutil.Set(t, &osHostname, func() (string, error) {
		return "", errNoHostname
	})
	TestWithSetup(t, use,
		That("(hostname)").Throws(errNoHostname),
	)
}
