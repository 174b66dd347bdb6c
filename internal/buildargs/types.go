// Where: cli/internal/buildargs/types.go
// What: Configuration shapes consumed by the build-arg resolver.
// Why: Decouple the merge rules from how project files are parsed.
package buildargs

// ImageConfiguration describes one image and its explicit build settings.
type ImageConfiguration struct {
	Name  string
	Build *BuildConfiguration
}

// BuildConfiguration holds image-level build settings.
type BuildConfiguration struct {
	Dockerfile string
	ContextDir string
	Tags       []string
	Args       map[string]string
}

// Configuration is the tool-level configuration shared by every image.
type Configuration struct {
	BuildArgs map[string]string
	Project   *Project
}

// Project carries project-level properties, e.g. from buildargs.yaml.
type Project struct {
	Properties map[string]string
}

// Logger receives collision warnings.
type Logger interface {
	Warn(msg string)
}

func (i ImageConfiguration) args() map[string]string {
	if i.Build == nil {
		return nil
	}
	return i.Build.Args
}

func (c Configuration) projectProperties() map[string]string {
	if c.Project == nil {
		return nil
	}
	return c.Project.Properties
}
