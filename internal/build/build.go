// Package build holds version information injected at link time.
package build

var (
	// Version is the release version of the binary.
	Version = "dev"
	// Commit is the git commit the binary was built from.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)
