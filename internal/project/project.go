// Where: cli/internal/project/project.go
// What: buildargs.yaml discovery, loading, and conversion to resolver inputs.
// Why: Keep file layout concerns out of the build-arg merge rules.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/poruru/buildargs/cli/internal/buildargs"
	"github.com/poruru/buildargs/cli/internal/constants"
	"github.com/poruru/buildargs/cli/internal/envutil"
	"github.com/poruru/buildargs/cli/internal/meta"
)

var (
	// ErrNotFound is returned when no project file can be located.
	ErrNotFound = errors.New("project file not found")
	// ErrImageRequired is returned when several images exist and none was selected.
	ErrImageRequired = errors.New("image name is required when the project defines multiple images")
)

// File is the decoded buildargs.yaml.
type File struct {
	BuildArgs  map[string]string `yaml:"buildArgs,omitempty"`
	Properties map[string]string `yaml:"properties,omitempty"`
	Images     []Image           `yaml:"images,omitempty"`

	// Path is the absolute location the file was loaded from.
	Path string `yaml:"-"`
}

// Image is one image entry of the project file.
type Image struct {
	Name  string `yaml:"name"`
	Build *Build `yaml:"build,omitempty"`
}

// Build holds image build settings; paths are relative to the project file.
type Build struct {
	Dockerfile string            `yaml:"dockerfile,omitempty"`
	ContextDir string            `yaml:"contextDir,omitempty"`
	Tags       []string          `yaml:"tags,omitempty"`
	Args       map[string]string `yaml:"args,omitempty"`
}

// Find resolves the project file path.
// An explicit path wins, then BUILDARGS_PROJECT, then buildargs.yaml/yml in dir.
func Find(explicit, dir string) (string, error) {
	if path := strings.TrimSpace(explicit); path != "" {
		return absPath(path)
	}
	if path := strings.TrimSpace(envutil.GetHostEnv(constants.HostSuffixProject)); path != "" {
		return absPath(path)
	}
	for _, name := range []string{meta.ProjectFile, meta.ProjectFileAltExt} {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return absPath(candidate)
		}
	}
	return "", fmt.Errorf("%w in %s", ErrNotFound, dir)
}

// Load reads, validates and decodes a project file.
func Load(path string) (*File, error) {
	abs, err := absPath(path)
	if err != nil {
		return nil, err
	}
	payload, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, abs)
		}
		return nil, fmt.Errorf("read project file: %w", err)
	}
	if err := validateProjectFile(payload); err != nil {
		return nil, fmt.Errorf("validate project file %s: %w", abs, err)
	}

	var file File
	if err := yaml.Unmarshal(payload, &file); err != nil {
		return nil, fmt.Errorf("decode project file %s: %w", abs, err)
	}
	file.Path = abs
	if err := file.checkImageNames(); err != nil {
		return nil, err
	}
	return &file, nil
}

// Dir returns the directory that relative build paths are resolved against.
func (f *File) Dir() string {
	if f == nil || f.Path == "" {
		return "."
	}
	return filepath.Dir(f.Path)
}

// Configuration returns the tool-level configuration shared by every image.
func (f *File) Configuration() buildargs.Configuration {
	if f == nil {
		return buildargs.Configuration{}
	}
	return buildargs.Configuration{
		BuildArgs: f.BuildArgs,
		Project:   &buildargs.Project{Properties: f.Properties},
	}
}

// ImageNames lists image names in file order.
func (f *File) ImageNames() []string {
	if f == nil {
		return nil
	}
	names := make([]string, 0, len(f.Images))
	for _, image := range f.Images {
		names = append(names, image.Name)
	}
	return names
}

// Image returns the named image configuration.
// With an empty name, the only image is returned; a project without images
// yields an empty configuration so tool and ambient sources still resolve.
func (f *File) Image(name string) (buildargs.ImageConfiguration, error) {
	name = strings.TrimSpace(name)
	if f == nil || len(f.Images) == 0 {
		if name != "" {
			return buildargs.ImageConfiguration{}, fmt.Errorf("image %q not defined", name)
		}
		return buildargs.ImageConfiguration{}, nil
	}
	if name == "" {
		if len(f.Images) > 1 {
			return buildargs.ImageConfiguration{}, ErrImageRequired
		}
		return f.toImageConfiguration(f.Images[0]), nil
	}
	for _, image := range f.Images {
		if image.Name == name {
			return f.toImageConfiguration(image), nil
		}
	}
	return buildargs.ImageConfiguration{}, fmt.Errorf("image %q not defined (available: %s)", name, strings.Join(f.ImageNames(), ", "))
}

func (f *File) toImageConfiguration(image Image) buildargs.ImageConfiguration {
	out := buildargs.ImageConfiguration{Name: image.Name}
	if image.Build == nil {
		return out
	}
	out.Build = &buildargs.BuildConfiguration{
		Dockerfile: f.resolvePath(image.Build.Dockerfile),
		ContextDir: f.resolvePath(image.Build.ContextDir),
		Tags:       append([]string(nil), image.Build.Tags...),
		Args:       image.Build.Args,
	}
	return out
}

func (f *File) resolvePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(f.Dir(), path)
}

func (f *File) checkImageNames() error {
	seen := make(map[string]struct{}, len(f.Images))
	for _, image := range f.Images {
		if _, ok := seen[image.Name]; ok {
			return fmt.Errorf("project file %s: duplicate image name %q", f.Path, image.Name)
		}
		seen[image.Name] = struct{}{}
	}
	return nil
}

func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path %s: %w", path, err)
	}
	return abs, nil
}
