// Package version carries build metadata injected with -ldflags.
package version

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/mod/semver"
)

// Set at build time:
//
//	go build -ldflags "-X github.com/supportdesk/supportdesk/internal/shared/version.Version=1.2.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Normalize ensures version string has "v" prefix for semver compatibility.
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return ""
	}
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// IsRelease reports whether v is a valid semver release without a
// prerelease suffix.
func IsRelease(v string) bool {
	v = Normalize(v)
	return semver.IsValid(v) && semver.Prerelease(v) == ""
}

// String renders the build metadata on one line.
func String() string {
	v := Version
	if n := Normalize(v); semver.IsValid(n) {
		v = semver.Canonical(n)
	}
	return fmt.Sprintf("supportdesk %s (commit %s, built %s, %s)", v, Commit, BuildTime, runtime.Version())
}
