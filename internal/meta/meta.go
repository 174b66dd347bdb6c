// Where: cli/internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep brand naming and directory layout in one place.
package meta

const (
	// Project Identity
	AppName   = "buildargs"
	Slug      = "buildargs"
	EnvPrefix = "BUILDARGS"

	// Directory Layout
	HomeDir           = ".buildargs"
	GlobalConfigFile  = "config.yaml"
	ProjectFile       = "buildargs.yaml"
	ProjectFileAltExt = "buildargs.yml"
)
