package buildinfo

import (
	"fmt"
	"runtime/debug"
	"testing"

	. "src.dpm.sh/pkg/prog/progtest"
	"src.dpm.sh/pkg/tt"
)

func TestProgram(t *testing.T) {
	Test(t, &Program{},
		ThatDpm("-version").WritesStdout(Value.Version+"\n"),
		ThatDpm("-version", "-json").WritesStdout(mustToJSON(Value.Version)+"\n"),

		ThatDpm("-buildinfo").WritesStdout(
			fmt.Sprintf("Version: %v\nGo version: %v\n", Value.Version, Value.GoVersion)),
		ThatDpm("-buildinfo", "-json").WritesStdout(mustToJSON(Value)+"\n"),

		ThatDpm("(print 1)").ExitsWith(2).WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestAddVariant(t *testing.T) {
	tt.Test(t, tt.Fn("addVariant", addVariant), tt.Table{
		tt.Args("0.3.0", "").Rets("0.3.0"),
		tt.Args("0.3.0", "distro").Rets("0.3.0+distro"),
	})
}

// Returns a function reporting bi as the build information, or no build
// information when bi is nil.
func readBuildInfo(bi *debug.BuildInfo) func() (*debug.BuildInfo, bool) {
	return func() (*debug.BuildInfo, bool) { return bi, bi != nil }
}

func vcs(revision, time, modified string) *debug.BuildInfo {
	return &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: revision},
		{Key: "vcs.time", Value: time},
		{Key: "vcs.modified", Value: modified},
	}}
}

func TestDevVersion(t *testing.T) {
	const rev = "a1b2c3d4e5f6a7b8"
	tt.Test(t, tt.Fn("devVersion", func(vcsOverride string, bi *debug.BuildInfo) string {
		return devVersion("0.3.0", vcsOverride, readBuildInfo(bi))
	}), tt.Table{
		tt.Args("", (*debug.BuildInfo)(nil)).Rets("0.3.0-dev.unknown"),
		tt.Args("", &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}).
			Rets("0.3.0-dev.unknown"),
		// A module version from "go install" is used as is.
		tt.Args("", &debug.BuildInfo{Main: debug.Module{Version: "v0.3.0-dev.pseudo"}}).
			Rets("0.3.0-dev.pseudo"),

		tt.Args("", vcs(rev, "2026-03-01T08:30:00Z", "false")).
			Rets("0.3.0-dev.0.20260301083000-a1b2c3d4e5f6"),
		tt.Args("", vcs(rev, "2026-03-01T10:30:00+02:00", "true")).
			Rets("0.3.0-dev.0.20260301083000-a1b2c3d4e5f6-dirty"),
		tt.Args("", vcs("abc", "2026-03-01T08:30:00Z", "false")).
			Rets("0.3.0-dev.0.20260301083000-abc"),
		tt.Args("", vcs(rev, "yesterday", "false")).Rets("0.3.0-dev.unknown"),
		tt.Args("", vcs("", "2026-03-01T08:30:00Z", "false")).Rets("0.3.0-dev.unknown"),

		tt.Args("20260301083000-a1b2c3d4e5f6", (*debug.BuildInfo)(nil)).
			Rets("0.3.0-dev.0.20260301083000-a1b2c3d4e5f6"),
	})
}
