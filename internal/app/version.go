package app

import "fmt"

// Version information set via ldflags during build
// Example: go build -ldflags "-X github.com/xavierfontaine/omakase/internal/app.Version=1.0.0"
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// BuildVersion returns a one-line version string for logs.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate)
}
