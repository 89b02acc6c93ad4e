// Package gnpin keeps the version of the application.
package gnpin

var (
	// Version of GNpin.
	Version = "v0.1.0"

	// Build timestamp, set by the linker.
	Build = "n/a"
)
