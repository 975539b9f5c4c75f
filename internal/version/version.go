// Package version reports build information for visionchroma. Values are
// injected with ldflags by release builds and otherwise read from the module
// build info that `go install` records.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/marianadeem755/VisionChroma-pro/pkg/visionplugin"
)

// Name is the tool name recorded in reports.
const Name = "visionchroma"

// unknown marks a value neither ldflags nor build info supplied.
const unknown = "unknown"

var (
	// Version is set with -ldflags "-X .../internal/version.Version=x.y.z".
	Version = "dev"

	// Commit is set with -ldflags "-X .../internal/version.Commit=$(git rev-parse HEAD)".
	Commit = unknown

	// Date is the RFC3339 build time, set with -ldflags "-X .../internal/version.Date=...".
	Date = unknown
)

// Info is the build description printed by `visionchroma version --json`.
type Info struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	Commit          string `json:"commit"`
	Date            string `json:"date"`
	GoVersion       string `json:"go_version"`
	Platform        string `json:"platform"`
	ProtocolVersion string `json:"plugin_protocol_version"`
}

// GetInfo merges the ldflags values with the binary's build info.
func GetInfo() Info {
	info := Info{
		Name:            Name,
		Version:         Version,
		Commit:          Commit,
		Date:            Date,
		GoVersion:       runtime.Version(),
		Platform:        runtime.GOOS + "/" + runtime.GOARCH,
		ProtocolVersion: visionplugin.ProtocolVersion,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fromBuildInfo(&info, bi)
	}
	return info
}

// fromBuildInfo fills values ldflags left at their defaults.
func fromBuildInfo(info *Info, bi *debug.BuildInfo) {
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == unknown {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == unknown {
				info.Date = s.Value
			}
		}
	}
}

// String returns the one-line version description.
func String() string {
	info := GetInfo()
	if info.Commit == unknown {
		return fmt.Sprintf("%s version %s (%s, %s)", Name, info.Version, info.GoVersion, info.Platform)
	}
	return fmt.Sprintf("%s version %s (commit: %s, built: %s, %s, %s)",
		Name, info.Version, shortCommit(info.Commit), info.Date, info.GoVersion, info.Platform)
}

func shortCommit(c string) string {
	if len(c) > 8 {
		return c[:8]
	}
	return c
}

// Short returns the bare version, as recorded in report metadata.
func Short() string {
	return GetInfo().Version
}
