package utils

import (
	"runtime/debug"
)

const (
	unknownVersion     = "unknown"
	develBuildVersion  = "(devel)"
	revisionSettingKey = "vcs.revision"
	shortRevisionSize  = 12
)

// Version is set at link time with -ldflags "-X github.com/temirov/dirscan/internal/utils.Version=v1.2.3".
var Version = EmptyString

// GetApplicationVersion reports the linker-injected version, then the module
// version recorded in the build info, then the VCS revision, and finally "unknown".
func GetApplicationVersion() string {
	if Version != EmptyString {
		return Version
	}
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if !buildInfoAvailable {
		return unknownVersion
	}
	if buildInfo.Main.Version != EmptyString && buildInfo.Main.Version != develBuildVersion {
		return buildInfo.Main.Version
	}
	for _, setting := range buildInfo.Settings {
		if setting.Key == revisionSettingKey && setting.Value != EmptyString {
			revision := setting.Value
			if len(revision) > shortRevisionSize {
				revision = revision[:shortRevisionSize]
			}
			return revision
		}
	}
	return unknownVersion
}
