// Package misc keeps small helpers needed across the program which do not
// belong anywhere else.
package misc

import (
	"path/filepath"
	"runtime/debug"
	"strings"
)

// Set at build time via -ldflags, build info is used as a fallback.
var (
	appName = ""
	version = ""
	gitHash = ""
)

// GetAppName returns short program name for logs and reports.
func GetAppName() string {
	if len(appName) != 0 {
		return appName
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		return filepath.Base(bi.Path)
	}
	return "cssc"
}

// GetVersion returns program version.
func GetVersion() string {
	if len(version) != 0 {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && len(bi.Main.Version) != 0 {
		return bi.Main.Version
	}
	return "(devel)"
}

// GetGitHash returns VCS revision recorded in the binary.
func GetGitHash() string {
	if len(gitHash) != 0 {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				if len(s.Value) > 12 {
					return s.Value[:12]
				}
				return s.Value
			}
		}
	}
	return strings.Repeat("0", 12)
}
