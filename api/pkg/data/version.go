package data

import (
	"runtime/debug"
)

// Version is set by the build process
var Version string

// GetVersion falls back to the VCS revision recorded in the build info
func GetVersion() string {
	if Version != "" {
		return Version
	}

	version := "<unknown>"
	info, ok := debug.ReadBuildInfo()
	if ok {
		for _, kv := range info.Settings {
			if kv.Value == "" {
				continue
			}
			if kv.Key == "vcs.revision" {
				version = kv.Value
			}
		}
	}
	return version
}
