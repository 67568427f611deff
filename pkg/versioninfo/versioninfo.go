// Package versioninfo formats the version line shown by --version.
package versioninfo

import (
	"runtime/debug"
	"strings"

	"github.com/coreos/go-semver/semver"
)

// A Info contains a version.
type Info struct {
	Version string
	Commit  string
	BuiltBy string
}

// develVersion is what the linker default and `go run` builds report.
const develVersion = "0.0.0"

// WithModuleVersion fills a missing version from the module build info, so
// binaries installed with `go install module@version` report that version.
func (vi Info) WithModuleVersion() Info {
	if vi.Version != "" && vi.Version != develVersion {
		return vi
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return vi
	}
	return vi.withModule(bi.Main.Version)
}

func (vi Info) withModule(moduleVersion string) Info {
	if moduleVersion == "" || moduleVersion == "(devel)" {
		return vi
	}
	vi.Version = moduleVersion
	return vi
}

func (vi Info) String() string {
	var versionElems []string
	switch vi.Version {
	case "", develVersion:
		versionElems = append(versionElems, "dev")
	default:
		version, err := semver.NewVersion(strings.TrimPrefix(vi.Version, "v"))
		if err != nil {
			return vi.Version
		}
		versionElems = append(versionElems, "v"+version.String())
	}
	if vi.Commit != "" {
		versionElems = append(versionElems, "commit "+vi.Commit)
	}
	if vi.BuiltBy != "" {
		versionElems = append(versionElems, "built by "+vi.BuiltBy)
	}
	return strings.Join(versionElems, ", ")
}
