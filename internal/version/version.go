// Package version exposes build metadata injected at link time.
package version

import (
	"fmt"
	"runtime"
)

// Set via -ldflags at build time.
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// Short returns only the version number.
func Short() string {
	return Version
}

// Info returns the full version string.
func Info() string {
	return fmt.Sprintf("zeeky %s (commit: %s, built: %s, %s)", Version, Commit, BuildTime, runtime.Version())
}
