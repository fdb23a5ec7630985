package version

import "fmt"

// Overridden at build time with -ldflags "-X .../internal/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)

// Info is the build metadata reported by the API and the CLI.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Dirty   bool   `json:"dirty"`
}

func Current() Info {
	return Info{Version: Version, Commit: Commit, Date: Date, Dirty: Dirty == "true"}
}

// String renders "v1.2.0 (abc123, dirty)" style text for --version.
func (i Info) String() string {
	s := fmt.Sprintf("%s (%s", i.Version, i.Commit)
	if i.Dirty {
		s += ", dirty"
	}
	return s + ")"
}
