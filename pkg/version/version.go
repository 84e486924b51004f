// Package version holds the build version of VeinMiner.
package version

// version is set using -ldflags "-X go.minekube.com/veinminer/pkg/version.version=v1.2.3"
var version = "unknown"

// String returns the build version.
func String() string {
	return version
}
