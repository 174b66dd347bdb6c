// Where: cli/cmd/buildargs/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"io"
	"os"

	"github.com/poruru/buildargs/cli/internal/buildargs"
	"github.com/poruru/buildargs/cli/internal/commands"
	"github.com/poruru/buildargs/cli/internal/imagebuild"
	"github.com/poruru/buildargs/cli/internal/interaction"
)

// dockerClient is the part of the Docker SDK client the CLI needs.
type dockerClient interface {
	imagebuild.Client
	io.Closer
}

var (
	getwd           = os.Getwd
	newDockerClient = func() (dockerClient, error) { return imagebuild.NewDockerClient() }
)

// buildDependencies constructs all runtime dependencies required by the CLI.
// The Docker client does not dial until a build runs, so resolve works without a daemon.
// Returns the dependencies, a closer for cleanup, and any initialization error.
func buildDependencies() (commands.Dependencies, io.Closer, error) {
	client, err := newDockerClient()
	if err != nil {
		return commands.Dependencies{}, nil, err
	}

	deps := commands.Dependencies{
		Out:         os.Stdout,
		ErrOut:      os.Stderr,
		Prompter:    interaction.HuhPrompter{},
		Getwd:       getwd,
		NewResolver: buildargs.NewResolver,
		Build: commands.BuildDeps{
			Builder: imagebuild.NewBuilder(client, os.Stdout),
		},
	}
	return deps, client, nil
}
