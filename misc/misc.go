// Package misc provides small helpers shared across the program.
package misc

import "runtime/debug"

var (
	appName = "gcsst"
	version = "dev"
	gitHash = ""
)

// GetAppName returns short program name used in logs and file names.
func GetAppName() string {
	return appName
}

// GetVersion returns program version, either set at build time or taken from
// module build information.
func GetVersion() string {
	if version != "dev" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return version
}

// GetGitHash returns VCS revision recorded in build information.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
