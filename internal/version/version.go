package version

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// SchemaVersion is the manifest format this binary reads and writes
const SchemaVersion = "4.1.0"

// Baseline is the version assumed for manifests that predate versioning
const Baseline = "0.0.0"

// These variables are set at build time via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns the binary version line printed by `gitget version`
func String() string {
	return fmt.Sprintf("gitget %s (commit: %s, built: %s, schema: %s)", Version, shortCommit(), BuildTime, SchemaVersion)
}

func shortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}

// Compare compares two dotted versions without a "v" prefix. Invalid
// versions sort before every valid one.
func Compare(a, b string) int {
	return semver.Compare(canonical(a), canonical(b))
}

// Less reports whether a is an older version than b
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Valid reports whether v is a dotted semantic version
func Valid(v string) bool {
	return semver.IsValid(canonical(v))
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
