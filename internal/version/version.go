// Package version reports the jsxtree build, stamped via ldflags:
//
//	go build -ldflags "-X bennypowers.dev/jsxtree/internal/version.Version=v0.1.0"
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

const dev = "dev"

var (
	Version   = dev       // release version, e.g. "v0.1.0"
	GitCommit = "unknown" // commit hash
	GitTag    = "unknown" // nearest tag
	BuildTime = "unknown"
	GitDirty  = "" // "dirty" for builds from a modified checkout
)

// Info describes one build.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit,omitempty" yaml:"commit,omitempty"`
	BuildTime string `json:"buildTime,omitempty" yaml:"buildTime,omitempty"`
	Dirty     bool   `json:"dirty,omitempty" yaml:"dirty,omitempty"`
	GoVersion string `json:"goVersion,omitempty" yaml:"goVersion,omitempty"`
}

// Get collects the stamped variables, falling back to the module build
// info for `go install` builds.
func Get() Info {
	info := Info{
		Version:   GetVersion(),
		BuildTime: known(BuildTime),
		Dirty:     GitDirty == "dirty",
	}
	commit := known(GitCommit)
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if commit == "" {
					commit = s.Value
				}
			case "vcs.modified":
				info.Dirty = info.Dirty || s.Value == "true"
			}
		}
	}
	info.Commit = commit
	return info
}

// GetVersion returns the version reported to LSP clients.
func GetVersion() string {
	if Version != dev {
		return Version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	tag, commit := known(GitTag), known(GitCommit)
	if tag == "" || commit == "" {
		return dev
	}
	v := tag
	if short := shorten(commit); !strings.HasSuffix(tag, short) {
		v += "-" + short
	}
	if GitDirty == "dirty" {
		v += "-dirty"
	}
	return v
}

// GetFullVersion returns the version with its commit, for --version.
func GetFullVersion() string {
	v := GetVersion()
	if commit := known(GitCommit); commit != "" {
		return fmt.Sprintf("%s (commit: %s)", v, shorten(commit))
	}
	return v
}

func known(s string) string {
	if s == "unknown" {
		return ""
	}
	return s
}

func shorten(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
