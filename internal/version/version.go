// Package version reports the gotest-ctrf build version.
package version

import (
	"fmt"
	"regexp"
	"runtime/debug"
	"strings"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Commit is the git commit SHA, set at build time via -ldflags.
var Commit = ""

// SemverRegex validates semantic version strings.
var SemverRegex = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(-([a-zA-Z0-9]+(\.[a-zA-Z0-9]+)*))?(\+([a-zA-Z0-9]+(\.[a-zA-Z0-9]+)*))?$`)

// Validate checks if a version string is valid semver. A leading "v" is allowed.
func Validate(version string) error {
	if !SemverRegex.MatchString(strings.TrimPrefix(version, "v")) {
		return fmt.Errorf("invalid semver format: %q", version)
	}
	return nil
}

// FullVersion returns the version string with commit if available.
// Format: "X.Y.Z (commit <shortsha>)" or "dev" for dev builds.
// Binaries installed with go install report the module version instead of "dev".
func FullVersion() string {
	v := Version
	if v == "dev" {
		v = fromBuildInfo(debug.ReadBuildInfo)
	}
	v = strings.TrimPrefix(v, "v")
	if Commit != "" {
		c := Commit
		if len(c) > 12 {
			c = c[:12]
		}
		return v + " (commit " + c + ")"
	}
	return v
}

// fromBuildInfo returns the main module version, or "dev" when it is not a
// release version.
func fromBuildInfo(read func() (*debug.BuildInfo, bool)) string {
	info, ok := read()
	if !ok || info == nil {
		return "dev"
	}
	if err := Validate(info.Main.Version); err != nil {
		return "dev"
	}
	return info.Main.Version
}
