package models

import "fmt"

const unknownBuildValue = "N/A"

// BuildInfo is the version metadata stamped into binaries with -ldflags.
type BuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// NewBuildInfo fills empty values with "N/A".
func NewBuildInfo(version, date, commit string) BuildInfo {
	orUnknown := func(s string) string {
		if s == "" {
			return unknownBuildValue
		}
		return s
	}

	return BuildInfo{
		Version: orUnknown(version),
		Date:    orUnknown(date),
		Commit:  orUnknown(commit),
	}
}

// Stamped reports whether a version was injected at build time.
func (b BuildInfo) Stamped() bool {
	return b.Version != unknownBuildValue
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s", b.Version, b.Date, b.Commit)
}
