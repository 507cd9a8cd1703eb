package serverconf

import (
	"fmt"
	"runtime"
)

var (
	// version, commit and buildTime are set via ldflags during release builds.
	// For development builds they show "dev" and "unknown".
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Version returns the compiled version or 'dev' if run from source
func Version() string {
	return version
}

// Commit returns the git commit the binary was built from, or 'unknown'
func Commit() string {
	return commit
}

// BuildTime returns the RFC3339 build timestamp, or 'unknown'
func BuildTime() string {
	return buildTime
}

// GoVersion returns the Go runtime version
func GoVersion() string {
	return runtime.Version()
}

// UserAgent returns the User-Agent string sent when fetching remote includes
func UserAgent() string {
	return fmt.Sprintf("serverconf/%s", version)
}

// BuildInfo returns a multi-line summary of the build metadata
func BuildInfo() string {
	return fmt.Sprintf("Version: %s\nCommit: %s\nBuild Time: %s\nGo Version: %s\n",
		Version(), Commit(), BuildTime(), GoVersion())
}
