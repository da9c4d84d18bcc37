// Package version holds the build version, overridable at link time via
// -ldflags "-X doxa/pkg/version.Version=...".
package version

var Version = "0.1.0"
