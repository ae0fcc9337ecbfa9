// Package version carries build information stamped at link time.
package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/dotfm/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/dotfm/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/dotfm/internal/version.Date={{.Date}}
)
