// Package buildinfo carries version metadata stamped in via -ldflags.
// The zero values identify a local development build.
package buildinfo

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
