package version

// These variables are overridden at build time using -ldflags.
// Keep sensible defaults for local development.
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)

// Build is the JSON form served by the version endpoint.
type Build struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Dirty   string `json:"dirty"`
}

// Info returns the metadata baked into this binary.
func Info() Build {
	return Build{Version: Version, Commit: Commit, Date: Date, Dirty: Dirty}
}

// String renders a one-line banner such as "dev (none)".
func String() string {
	s := Version + " (" + Commit + ")"
	if Dirty == "true" {
		s += " dirty"
	}
	return s
}
