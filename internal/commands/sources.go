// Where: cli/internal/commands/sources.go
// What: Shared source flags and build-arg resolution for resolve/build.
// Why: Both commands assemble the same precedence list from the same inputs.
package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/poruru/buildargs/cli/internal/buildargs"
	"github.com/poruru/buildargs/cli/internal/config"
	"github.com/poruru/buildargs/cli/internal/interaction"
	"github.com/poruru/buildargs/cli/internal/project"
	"github.com/poruru/buildargs/cli/internal/sysprops"
)

// SourceFlags selects the inputs merged into the final build args.
type SourceFlags struct {
	Project          string   `short:"p" help:"Path to buildargs.yaml (default: ./buildargs.yaml)"`
	Image            string   `short:"i" help:"Image name from the project file"`
	Define           []string `short:"D" sep:"none" placeholder:"KEY=VALUE" help:"Set a system property (repeatable)"`
	SystemProperties []string `name:"system-properties" sep:"none" placeholder:"FILE" help:"Load system properties from a KEY=VALUE file (repeatable)"`
	DockerProxy      bool     `name:"docker-proxy" xor:"proxy" help:"Include proxy settings from the Docker client config"`
	NoDockerProxy    bool     `name:"no-docker-proxy" xor:"proxy" help:"Ignore proxy settings from the Docker client config"`
}

// resolution is the outcome of merging every configured source.
type resolution struct {
	Project      *project.File
	Image        buildargs.ImageConfiguration
	Config       buildargs.Configuration
	IncludeProxy bool
	Args         map[string]string
}

// resolveSources loads system properties, the project file and the selected image,
// then merges them with or without the Docker proxy source.
func resolveSources(flags SourceFlags, deps Dependencies) (resolution, error) {
	if err := applySystemProperties(flags); err != nil {
		return resolution{}, err
	}

	file, err := loadProject(flags.Project, deps)
	if err != nil {
		return resolution{}, err
	}

	imageName, err := selectImage(file, flags.Image, deps)
	if err != nil {
		return resolution{}, err
	}
	image, err := file.Image(imageName)
	if err != nil {
		return resolution{}, err
	}

	defaults, err := config.LoadDefaults()
	if err != nil {
		return resolution{}, err
	}

	res := resolution{
		Project:      file,
		Image:        image,
		Config:       file.Configuration(),
		IncludeProxy: includeDockerProxy(flags, defaults),
	}

	resolver := deps.NewResolver(newUI(deps.ErrOut))
	if res.IncludeProxy {
		res.Args = resolver.MergeIncludingDockerProxy(res.Image, res.Config)
	} else {
		res.Args = resolver.MergeExcludingDockerProxy(res.Image, res.Config)
	}
	return res, nil
}

// applySystemProperties registers property files first, then -D assignments.
func applySystemProperties(flags SourceFlags) error {
	for _, path := range flags.SystemProperties {
		values, err := sysprops.LoadFile(path)
		if err != nil {
			return err
		}
		sysprops.Apply(values)
	}
	values, err := sysprops.ParseAssignments(flags.Define)
	if err != nil {
		return err
	}
	sysprops.Apply(values)
	return nil
}

// loadProject returns nil when no project file exists and none was requested.
func loadProject(explicit string, deps Dependencies) (*project.File, error) {
	cwd, err := deps.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	path, err := project.Find(explicit, cwd)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return project.Load(path)
}

// selectImage prompts for an image when the choice is ambiguous and a terminal is attached.
func selectImage(file *project.File, name string, deps Dependencies) (string, error) {
	name = strings.TrimSpace(name)
	if name != "" || file == nil {
		return name, nil
	}
	names := file.ImageNames()
	if len(names) < 2 {
		return "", nil
	}
	if deps.Prompter == nil || !interaction.IsTerminal(os.Stdin) {
		return "", project.ErrImageRequired
	}
	selected, err := deps.Prompter.Select("Select image", names)
	if err != nil {
		return "", err
	}
	return selected, nil
}

func includeDockerProxy(flags SourceFlags, defaults config.Defaults) bool {
	switch {
	case flags.DockerProxy:
		return true
	case flags.NoDockerProxy:
		return false
	default:
		return defaults.IncludeDockerProxy(true)
	}
}
