// Where: cli/internal/commands/build.go
// What: Build command implementation.
// Why: Build one project image with the merged build args.
package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/poruru/buildargs/cli/internal/imagebuild"
	"github.com/poruru/buildargs/cli/internal/ports"
)

// ImageBuilder builds a single image.
type ImageBuilder interface {
	Build(ctx context.Context, req imagebuild.Request) error
}

// BuildDeps holds dependencies specific to the build command.
type BuildDeps struct {
	Builder ImageBuilder
}

type BuildCmd struct {
	SourceFlags `embed:""`
	DryRun      bool `name:"dry-run" help:"Print the docker build command without running it"`
	NoCache     bool `name:"no-cache" help:"Do not use cache when building the image"`
	Pull        bool `help:"Always attempt to pull newer base images"`
}

// runBuild executes the 'build' command.
func runBuild(cli CLI, deps Dependencies) int {
	cmd := cli.Build
	if deps.Build.Builder == nil {
		return exitWithError(deps.ErrOut, errors.New("build: builder not configured"))
	}

	res, err := resolveSources(cmd.SourceFlags, deps)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	baseDir := res.Project.Dir()
	if res.Project == nil {
		if cwd, err := deps.Getwd(); err == nil {
			baseDir = cwd
		}
	}

	ui := newUI(deps.ErrOut)
	ui.Block("🔨", "Build", []ports.KeyValue{
		{Key: "Image", Value: displayImageName(res.Image.Name)},
		{Key: "Context", Value: baseDir},
		{Key: "Build args", Value: len(res.Args)},
		{Key: "Docker proxy", Value: res.IncludeProxy},
	})

	request := imagebuild.Request{
		Image:   res.Image,
		BaseDir: baseDir,
		Args:    res.Args,
		NoCache: cmd.NoCache,
		Pull:    cmd.Pull,
		DryRun:  cmd.DryRun,
	}
	if err := deps.Build.Builder.Build(context.Background(), request); err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	if !cmd.DryRun {
		ui.Success(fmt.Sprintf("Built %s", displayImageName(res.Image.Name)))
	}
	return 0
}

func displayImageName(name string) string {
	if name == "" {
		return "(unnamed)"
	}
	return name
}
