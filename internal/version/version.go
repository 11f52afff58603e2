package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build metadata injected by goreleaser or makefile
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the build metadata printed by `tinyworkout version`.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go"`
	Platform  string `json:"platform"`
}

// Get collects the build metadata. A dev build installed with `go install`
// reports the module version recorded by the toolchain.
func Get() Info {
	v := Version
	if v == "dev" {
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			v = bi.Main.Version
		}
	}
	return Info{
		Version:   v,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// GetVersion returns the bare version string
func GetVersion() string { return Get().Version }

// GetVersionInfo returns detailed version information
func GetVersionInfo() string {
	i := Get()
	if i.Version == "dev" {
		return fmt.Sprintf("tinyworkout dev (%s)", i.Platform)
	}
	return fmt.Sprintf("tinyworkout %s (commit: %s, built: %s, %s, %s)",
		i.Version, i.Commit, i.Date, i.GoVersion, i.Platform)
}
