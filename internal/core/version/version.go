// Package version reports what build of chatlens is running
package version

import "runtime/debug"

// Stamped with -ldflags, e.g.
//
//	-X chatlens/internal/core/version.version=v0.1.0
//	-X chatlens/internal/core/version.commit=abcd123
//	-X chatlens/internal/core/version.date=2024-02-01
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// BuildInfo is served by /meta/version and /meta/engine
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version,omitempty"`
}

// Info returns the stamped values. Commit and date fall back to the VCS
// settings the go tool embeds, then to "unknown"
func Info() BuildInfo {
	bi := BuildInfo{Service: "chatlens", Version: version, Commit: commit, Date: date}
	if info, ok := debug.ReadBuildInfo(); ok {
		bi.GoVersion = info.GoVersion
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && bi.Commit == "":
				bi.Commit = s.Value
			case s.Key == "vcs.time" && bi.Date == "":
				bi.Date = s.Value
			}
		}
	}
	if bi.Commit == "" {
		bi.Commit = "unknown"
	}
	if bi.Date == "" {
		bi.Date = "unknown"
	}
	return bi
}
