// Package version exposes build identification, injected at link time.
package version

// Populated via -ldflags at build time; defaults identify a source
// build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
