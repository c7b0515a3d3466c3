// Package version reports build information for the fsdefs binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/teranos/fsdefs/schema"
)

// Build information, set at build time via ldflags:
//
//	-X github.com/teranos/fsdefs/version.Version=v1.2.0
var (
	// CommitHash is the git commit hash when the binary was built
	CommitHash = "dev"

	// Version is the semantic version (if tagged)
	Version = "dev"
)

// Info contains version and build information
type Info struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	// SchemaVersion is the schema document version written by default
	SchemaVersion string `json:"schema_version"`
	GoVersion     string `json:"go_version"`
	Platform      string `json:"platform"`
}

// Get returns the current version information. Without ldflags the module
// version from the build info is used when available.
func Get() Info {
	v := Version
	if v == "dev" {
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			v = bi.Main.Version
		}
	}
	return Info{
		Version:       v,
		CommitHash:    CommitHash,
		SchemaVersion: schema.DefaultVersion,
		GoVersion:     runtime.Version(),
		Platform:      fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a human-readable version string
func (i Info) String() string {
	return fmt.Sprintf("fsdefs %s (commit %s, schema %s)", i.Version, i.Short(), i.SchemaVersion)
}

// Short returns the commit hash abbreviated to 7 characters
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}
