package main

import (
	"cmp"
	"fmt"
	"runtime/debug"
	"time"
)

var (
	Version = ""
	Commit  = ""
	Date    = ""
)

var descriptionTemplate = `
Streaming client protocol toolkit: video format negotiation, controller
state encoding and wire message decoding.
  Version: %s (%s)
           %s
`

func Description() string {
	return fmt.Sprintf(descriptionTemplate, Version, Commit, Date)
}

func init() {
	info, _ := debug.ReadBuildInfo()
	Version, Commit, Date = buildMeta(info, Version, Commit, Date)
}

// buildMeta fills version fields left empty by the linker from the module
// build info.
func buildMeta(info *debug.BuildInfo, version, commit, date string) (string, string, string) {
	settings := map[string]string{}
	if info != nil {
		if version == "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
		for _, s := range info.Settings {
			settings[s.Key] = s.Value
		}
	}
	if commit == "" {
		commit = shortRevision(settings["vcs.revision"])
	}
	if date == "" {
		date = buildDate(settings["vcs.time"])
	}
	return cmp.Or(version, "dev"), cmp.Or(commit, "unknown"), cmp.Or(date, "unknown")
}

func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

func buildDate(vcsTime string) string {
	if t, err := time.Parse(time.RFC3339, vcsTime); err == nil {
		return t.Format(time.DateOnly)
	}
	return vcsTime
}
