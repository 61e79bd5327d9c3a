package imagemeta

import (
	"runtime"
	"runtime/debug"
)

// Version is the semantic version of the imagemeta library.
const Version = "0.2.0"

// VersionInfo describes the running build.
type VersionInfo struct {
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
}

// Populated at build time via -ldflags, e.g.
//
//	go build -ldflags="-X github.com/simonhull/imagemeta.gitCommit=$(git rev-parse HEAD)" ./cmd/just-the-exif
var (
	gitCommit = "unknown"
	buildTime = "unknown"
)

// GetVersionInfo returns version details for the running binary.
//
// When the ldflags above are not set, commit and build time fall back to
// the VCS stamps the go command embeds in module builds.
func GetVersionInfo() VersionInfo {
	info := VersionInfo{
		Version:   Version,
		GitCommit: gitCommit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.GitCommit == "unknown":
				info.GitCommit = s.Value
			case s.Key == "vcs.time" && info.BuildTime == "unknown":
				info.BuildTime = s.Value
			}
		}
	}

	return info
}
