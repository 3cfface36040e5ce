// Package version holds the build version, overridable at link time with
// -ldflags "-X portfolio-engine/internal/version.Version=v1.2.3".
package version

// Version is the running build's version string.
var Version = "dev"
