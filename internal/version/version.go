// Package version carries build identification, populated via ldflags
// at release time.
package version

var (
	// Version is the semantic version of this build, "dev" when built
	// outside the release pipeline.
	Version = "dev"
	// GitSHA is the commit the binary was built from.
	GitSHA = "unknown"
	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"
)
