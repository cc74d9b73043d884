// Package version exposes the build metadata stamped into the binary.
package version

// Stamped at build time via -ldflags "-X". The defaults identify an
// unstamped development build.
var (
	// Version is the release version.
	Version = "v0.0.0-dev"

	// GitCommit is the commit the binary was built from.
	GitCommit = "unknown"

	// BuildTime is the UTC build timestamp.
	BuildTime = "unknown"
)

// Info renders the single-line version string used in service banners.
func Info() string {
	return Version + " (" + GitCommit + ") built at " + BuildTime
}

// UserAgent is the value sent in the User-Agent header of outbound API calls
// so requests are attributable to a specific build.
func UserAgent() string {
	return "agent-toolkit/" + Version
}
