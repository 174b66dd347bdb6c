// Where: cli/internal/version/version.go
// What: Version string for the buildargs binary.
// Why: Report a release tag when stamped at link time, else the VCS revision.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Version is set at link time: -ldflags "-X .../internal/version.Version=v1.2.3".
var Version = ""

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the stamped version, or the short VCS revision with a
// "(dirty)" marker for modified trees. It returns "dev" when neither is known.
func GetVersion() string {
	if v := strings.TrimSpace(Version); v != "" {
		return v
	}

	info, ok := readBuildInfo()
	if !ok {
		return "dev"
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	var revision string
	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}

	if revision == "" {
		return "dev"
	}
	if modified {
		return fmt.Sprintf("%s (dirty)", revision)
	}
	return revision
}
