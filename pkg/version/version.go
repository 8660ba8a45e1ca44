package version

import "runtime/debug"

// GitCommit is set at link time:
//
//	go build -ldflags "-X github.com/rc-tools/ncharness/pkg/version.GitCommit=$(git rev-parse HEAD)"
var GitCommit string

// Commit returns GitCommit, falling back to the VCS revision stamped into the
// binary by the go toolchain.
func Commit() string {
	if GitCommit != "" {
		return GitCommit
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
