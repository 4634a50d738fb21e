package version

import "fmt"

// Overridden at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

func GetInfo() string {
	return fmt.Sprintf("%s (%s)", Version, Commit)
}
