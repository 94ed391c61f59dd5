package rulefind

import (
	"runtime/debug"
	"time"
)

// Build metadata, read from the binary's embedded build info.
var (
	Version     = "(devel)"
	Revision    = "unknown"
	ReleaseDate = "unknown"
	DirtyBuild  = false
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if info.Main.Version != "" {
		Version = info.Main.Version
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			Revision = setting.Value
		case "vcs.time":
			if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
				ReleaseDate = t.Format("2006-01-02")
			}
		case "vcs.modified":
			DirtyBuild = setting.Value == "true"
		}
	}
}
