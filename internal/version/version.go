// Package version provides build version information.
package version

// Version is the current version of dapview
const Version = "0.1.0"
