// Package version exposes the build version of the tablekit binary.
package version

// Version is the tablekit version, overridden at build time via
// -ldflags "-X github.com/tablekit/tablekit/pkg/version.Version=v1.2.3".
var Version = "dev" //nolint:gochecknoglobals // Set by the linker at build time

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}
