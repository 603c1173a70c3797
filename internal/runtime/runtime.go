package runtime

// Build variables, set with -ldflags "-X github.com/saltyorg/sb-exec/internal/runtime.Version=...".
var (
	Version   string
	GitCommit string
)

// VersionString returns the version for display, falling back to "dev" for local builds.
func VersionString() string {
	if Version == "" {
		return "dev"
	}
	if GitCommit == "" {
		return Version
	}
	return Version + " (" + GitCommit + ")"
}
