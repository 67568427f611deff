// Package buildinfo holds build-time information like the version.
// This is a separate package so that other packages can import it without
// worrying about introducing circular dependencies.
package buildinfo

import "github.com/zbiljic/coverletter/pkg/versioninfo"

// Updated by linker flags during build.
var (
	Version   string = "0.0.0"
	GitCommit string
	BuiltBy   string
)

// Info returns the version reported by the binary.
func Info() versioninfo.Info {
	return versioninfo.Info{
		Version: Version,
		Commit:  GitCommit,
		BuiltBy: BuiltBy,
	}.WithModuleVersion()
}
