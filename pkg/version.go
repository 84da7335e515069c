// Package gnmarine holds build metadata shared by the CLI and the HTTP server.
package gnmarine

var (
	// Version of gnmarine, set during build with ldflags.
	Version = "v0.1.0"

	// Build timestamp, set during build with ldflags.
	Build = "n/a"
)
