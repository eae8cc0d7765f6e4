// Package version reports the logmerge build.
//
// Version, commit and build time are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/logmerge/version.Version=1.0.0"
//
// Values left empty are filled from the module build info when available.
package version
