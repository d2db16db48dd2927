// Package version exposes the build metadata stamped into tsclient binaries.
//
// The variables are populated through ldflags at build time, for example:
//
//	go build -ldflags "-X github.com/tailmesh/tsclient/version.Version=1.0.0"
//
// A binary built without stamping reports the "dev" placeholder.
package version

// Version is the release number, stamped via
// -X github.com/tailmesh/tsclient/version.Version.
var Version = "dev"

// GitCommit is the short commit hash, stamped via
// -X github.com/tailmesh/tsclient/version.GitCommit=$(git rev-parse --short HEAD).
var GitCommit = ""

// BuildTime is the UTC build timestamp, stamped via
// -X github.com/tailmesh/tsclient/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ).
var BuildTime = ""

// Full combines the version with the commit hash and build time when they
// were stamped in.
func Full() string {
	v := Version
	if GitCommit != "" {
		v += "-" + GitCommit
	}
	if BuildTime != "" {
		v += " (" + BuildTime + ")"
	}
	return v
}
