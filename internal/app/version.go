package app

import (
	"fmt"
	"runtime/debug"
)

const serviceName = "wordcard"

// Set via ldflags, e.g.
// go build -ldflags "-X github.com/heartmarshall/wordcard-backend/internal/app.Version=1.2.0".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func init() {
	fillFromBuildInfo(debug.ReadBuildInfo)
}

// fillFromBuildInfo falls back to the module version and VCS stamp that the
// go command embeds when the binary was built without ldflags.
func fillFromBuildInfo(read func() (*debug.BuildInfo, bool)) {
	info, ok := read()
	if !ok {
		return
	}
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "unknown" && s.Value != "" {
				Commit = s.Value
				if len(Commit) > 12 {
					Commit = Commit[:12]
				}
			}
		case "vcs.time":
			if BuildTime == "unknown" && s.Value != "" {
				BuildTime = s.Value
			}
		}
	}
}

// BuildVersion returns "<version> (commit: <sha>, built: <time>)" for startup
// logs, the health endpoint and `wordcard version`.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
