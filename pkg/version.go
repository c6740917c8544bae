// Package cathapult holds build information and the interfaces shared by
// the cathapult command line tool.
package cathapult

var (
	// Version of the application, set during the build.
	Version = "v0.1.0"

	// Build timestamp, set during the build.
	Build = "n/a"
)
