// Where: cli/internal/commands/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/poruru/buildargs/cli/internal/buildargs"
	"github.com/poruru/buildargs/cli/internal/config"
	"github.com/poruru/buildargs/cli/internal/interaction"
	"github.com/poruru/buildargs/cli/internal/meta"
	"github.com/poruru/buildargs/cli/internal/version"
)

// Dependencies holds all injected dependencies required for CLI command execution.
// This structure enables dependency injection for testing and allows swapping
// implementations of various subsystems.
type Dependencies struct {
	// Out receives command results (merged args, build progress).
	Out io.Writer
	// ErrOut receives warnings and errors so Out stays machine-readable.
	ErrOut      io.Writer
	Prompter    interaction.Prompter
	Getwd       func() (string, error)
	NewResolver func(logger buildargs.Logger) *buildargs.Resolver
	Build       BuildDeps
}

// CLI defines the command-line interface structure parsed by Kong.
// It contains global flags and all subcommand definitions.
type CLI struct {
	EnvFile    string        `name:"env-file" help:"Path to .env file"`
	Resolve    ResolveCmd    `cmd:"" help:"Print merged build args"`
	Build      BuildCmd      `cmd:"" help:"Build an image with merged build args"`
	Completion CompletionCmd `cmd:"" help:"Generate shell completion script"`
	Version    VersionCmd    `cmd:"" help:"Show version information"`
}

type VersionCmd struct{}

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments, identifies the requested command,
// and dispatches to the appropriate handler. Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	deps = withDefaults(deps)

	if len(args) == 0 {
		return runNoArgs(deps.Out)
	}

	cli := CLI{}
	parser, err := kong.New(&cli,
		kong.Name(meta.AppName),
		kong.Description("Resolve container image build args from project, system and Docker client settings."),
		kong.Writers(deps.Out, deps.ErrOut),
	)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	// Load environment file if provided or if .env exists in current directory
	if cli.EnvFile != "" {
		if err := godotenv.Load(cli.EnvFile); err != nil {
			newUI(deps.ErrOut).Warn(fmt.Sprintf("Warning: failed to load env file %s: %v", cli.EnvFile, err))
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			newUI(deps.ErrOut).Warn(fmt.Sprintf("Warning: failed to load .env: %v", err))
		}
	}

	// The env file may relocate the global config, so create it afterwards.
	if err := config.EnsureGlobalConfig(); err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	command := ctx.Command()
	if exitCode, handled := dispatchCommand(command, cli, deps); handled {
		return exitCode
	}

	newUI(deps.ErrOut).Warn("unknown command")
	return 1
}

func withDefaults(deps Dependencies) Dependencies {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.ErrOut == nil {
		deps.ErrOut = os.Stderr
	}
	if deps.Getwd == nil {
		deps.Getwd = os.Getwd
	}
	if deps.NewResolver == nil {
		deps.NewResolver = buildargs.NewResolver
	}
	return deps
}

type commandHandler func(CLI, Dependencies) int

func dispatchCommand(command string, cli CLI, deps Dependencies) (int, bool) {
	exactHandlers := map[string]commandHandler{
		"resolve":         runResolve,
		"build":           runBuild,
		"completion bash": func(cli CLI, deps Dependencies) int { return runCompletionBash(cli, deps.Out) },
		"completion zsh":  func(cli CLI, deps Dependencies) int { return runCompletionZsh(cli, deps.Out) },
		"completion fish": func(cli CLI, deps Dependencies) int { return runCompletionFish(cli, deps.Out) },
		"version":         func(_ CLI, deps Dependencies) int { return runVersion(deps.Out) },
	}

	if handler, ok := exactHandlers[command]; ok {
		return handler(cli, deps), true
	}

	return 1, false
}

// runVersion prints the version information of the CLI.
func runVersion(out io.Writer) int {
	writeLine(out, version.GetVersion())
	return 0
}

// runNoArgs prints a short usage summary when invoked without arguments.
func runNoArgs(out io.Writer) int {
	ui := newUI(out)
	ui.Info("Usage:")
	ui.Info("  buildargs resolve [--project <file>] [--image <name>] [-D key=value]... [--format env|json|yaml|docker|template]")
	ui.Info("  buildargs build   [--project <file>] [--image <name>] [--dry-run]")
	ui.Info("")
	ui.Info("Try: buildargs resolve --help")
	return 0
}
