package version

var (
	// Version is the release version (set via -ldflags).
	Version = ""
	// Commit is the git commit hash (set via -ldflags).
	Commit = ""
)

// String renders the human-readable version string.
func String() string {
	v := Version
	if v == "" {
		v = "dev"
	}
	if Commit == "" {
		return v
	}
	if len(Commit) > 12 {
		return v + " (" + Commit[:12] + ")"
	}
	return v + " (" + Commit + ")"
}
