// Package version exposes the build version of vlist.
package version

import "github.com/Masterminds/semver/v3"

// defaultVersion is used when no version is injected at build time.
const defaultVersion = "0.1.0-dev"

// version is set with -ldflags "-X github.com/rshade/vlist/pkg/version.version=1.2.3".
//
//nolint:gochecknoglobals // Set by the linker.
var version = defaultVersion

// GetVersion returns the build version.
func GetVersion() string {
	if version == "" {
		return defaultVersion
	}
	return version
}

// Parsed returns the build version as a semantic version. A version that does
// not parse falls back to the default.
func Parsed() *semver.Version {
	v, err := semver.NewVersion(GetVersion())
	if err != nil {
		return semver.MustParse(defaultVersion)
	}
	return v
}
