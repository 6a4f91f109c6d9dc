// Package version carries shed's version identity.
//
// The Version variable is injected at build time via -ldflags, using the
// value the build generator resolves and publishes as DEMON_VERSION. The
// default is used when building with plain `go build` during development.
package version

import "fmt"

// Version is the full version key, e.g. "1.2.3-abc123d" or
// "1.2.3-abc123d-dirty". Set via ldflags; "dev" for untagged dev builds.
var Version = "dev"

// String returns the version line for display.
func String() string {
	return fmt.Sprintf("shed version %s", Version)
}
