package buildinfo

import (
	"fmt"
	"os"
	"runtime/debug"
)

type BuildInfo struct {
	Main      string
	GoVersion string
	Revision  string
	BuildTime string
	Dirty     bool
}

func (b BuildInfo) String() string {
	dirty := ""
	if b.Dirty {
		dirty = " (with uncommitted changes)"
	}

	return fmt.Sprintf("%s built with %s from commit %s at %s%s", b.Main, b.GoVersion, b.Revision, b.BuildTime, dirty)
}

func Get() BuildInfo {
	out := BuildInfo{}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.Main = bi.Path
	out.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Revision = s.Value
		case "vcs.time":
			out.BuildTime = s.Value
		case "vcs.modified":
			out.Dirty = s.Value == "true"
		}
	}

	return out
}

// PrintToStderr emits the build banner. Each binary calls this first so that
// pasted terminal output identifies the exact build that produced it.
func PrintToStderr() {
	fmt.Fprintf(os.Stderr, "%s\n", Get())
}
