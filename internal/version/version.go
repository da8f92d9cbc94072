// Package version holds build information injected through ldflags.
package version

import (
	"fmt"
	"runtime"

	"github.com/aatumaykin/launchify/internal/constants"
)

var (
	Version   = constants.DefaultVersion
	BuildTime = constants.DefaultBuildTime
	GitCommit = constants.DefaultGitCommit
	GoVersion = constants.DefaultGoVersion
)

func SetInfo(v, bt, gc, gv string) {
	if v != "" {
		Version = v
	}
	if bt != "" {
		BuildTime = bt
	}
	if gc != "" {
		GitCommit = gc
	}
	if gv != "" {
		GoVersion = gv
	}
}

// Format returns the multi-line text printed by "launchify version".
func Format() string {
	goVersion := GoVersion
	if goVersion == constants.DefaultGoVersion {
		goVersion = runtime.Version()
	}
	return fmt.Sprintf("launchify - schedule programs with launchd\nVersion: %s\nBuild Time: %s\nGit Commit: %s\nGo Version: %s\n",
		Version, BuildTime, GitCommit, goVersion)
}
