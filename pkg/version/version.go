// Package version reports the build version of tless.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	Version   string // Set via ldflags.
	BuildDate string // Set via ldflags.

	Revision  = revision(readBuildInfo())
	GoVersion = runtime.Version()
)

// GetVersion returns the release version, or the VCS revision for
// development builds.
func GetVersion() string {
	if Version != "" {
		return Version
	}

	return Revision
}

// Info returns a one-line summary of the build.
func Info() string {
	s := fmt.Sprintf("tless %s (%s, %s/%s)", GetVersion(), GoVersion, runtime.GOOS, runtime.GOARCH)
	if BuildDate != "" {
		s += " built " + BuildDate
	}

	return s
}

func readBuildInfo() []debug.BuildSetting {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}

	return info.Settings
}

func revision(settings []debug.BuildSetting) string {
	rev := "unknown"
	dirty := false

	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
			if len(rev) > 7 {
				rev = rev[:7]
			}

		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	if dirty {
		return rev + "-dirty"
	}

	return rev
}
