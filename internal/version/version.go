// Package version exposes build metadata stamped through -ldflags.
package version

// Overridden at build time, e.g.
// go build -ldflags "-X .../internal/version.Version=v1.2.3".
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
