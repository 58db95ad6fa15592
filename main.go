package main

import (
	"runtime/debug"
	"strings"

	"github.com/marcus/nexaflow/cmd"
)

// Version is injected with -ldflags "-X main.Version=...". Left at "dev",
// it is derived from the module build info.
var Version = "dev"

func buildVersion(v string) string {
	if v != "" && v != "dev" {
		return v
	}
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v
	}
	// go install module@vX.Y.Z
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	settings := map[string]string{}
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}
	rev := settings["vcs.revision"]
	if rev == "" {
		return v
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	parts := []string{"devel", rev}
	if settings["vcs.modified"] == "true" {
		parts = append(parts, "dirty")
	}
	return strings.Join(parts, "+")
}

func main() {
	cmd.SetVersion(buildVersion(Version))
	cmd.Execute()
}
