// Package version holds build metadata injected with ldflags:
//
//	go build -ldflags "-X git.home.luguber.info/inful/doccompile/internal/version.Version=v1.0.0"
package version

import "fmt"

// Version contains the application version information.
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String returns the version line printed by --version.
func String() string {
	return fmt.Sprintf("doccompile %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
