// Package compileinfo reports which commit and toolchain built the running
// binary.
package compileinfo

import (
	"fmt"
	"io"
	"runtime/debug"
)

const unknown = "unknown"

type CompileInfo struct {
	Package    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	mod := ""
	if c.Modified {
		mod = " (with uncommitted changes)"
	}

	return fmt.Sprintf("%s built with %s from commit %s at %s%s", c.Package, c.GoVersion, c.Commit, c.CommitTime, mod)
}

// Get reads the build information embedded by the Go toolchain. Fields that
// are not available, such as VCS details in a test binary, are "unknown".
func Get() CompileInfo {
	out := CompileInfo{
		Package:    unknown,
		GoVersion:  unknown,
		Commit:     unknown,
		CommitTime: unknown,
	}

	z, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.GoVersion = z.GoVersion
	if z.Path != "" {
		out.Package = z.Path
	}
	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

func Fprint(w io.Writer) {
	fmt.Fprintln(w, Get())
}
