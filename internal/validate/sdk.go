package validate

import (
	"runtime/debug"
	"strings"

	"golang.org/x/mod/semver"
)

// MinimumSDKVersion is the lowest accepted SDK version. It is compared
// against the linked aws-sdk-go-v2 core module version.
const MinimumSDKVersion = "1.16.25"

const sdkModulePath = "github.com/aws/aws-sdk-go-v2"

// SDKVersion reports whether version is at least MinimumSDKVersion.
// A leading "v" is optional; unparseable versions are rejected.
func SDKVersion(version string) bool {
	v := canonical(version)
	if !semver.IsValid(v) {
		return false
	}
	return semver.Compare(v, canonical(MinimumSDKVersion)) >= 0
}

// RunningSDKVersion returns the version of the SDK linked into this binary.
func RunningSDKVersion() (string, bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}
	for _, dep := range info.Deps {
		if dep.Path != sdkModulePath {
			continue
		}
		if dep.Replace != nil {
			dep = dep.Replace
		}
		return strings.TrimPrefix(dep.Version, "v"), dep.Version != ""
	}
	return "", false
}

func canonical(version string) string {
	version = strings.TrimSpace(version)
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	return version
}
