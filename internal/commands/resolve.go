// Where: cli/internal/commands/resolve.go
// What: Resolve command implementation.
// Why: Print merged build args for scripts and CI pipelines.
package commands

import (
	"strings"

	"github.com/poruru/buildargs/cli/internal/config"
	"github.com/poruru/buildargs/cli/internal/constants"
	"github.com/poruru/buildargs/cli/internal/envutil"
	"github.com/poruru/buildargs/cli/internal/render"
)

type ResolveCmd struct {
	SourceFlags `embed:""`
	Format      string `short:"f" help:"Output format (env, json, yaml, docker, template)"`
	Template    string `short:"t" help:"Go template rendered with --format template"`
}

// runResolve merges build args and writes them to stdout.
// Collision warnings go to the error stream so the output stays parseable.
func runResolve(cli CLI, deps Dependencies) int {
	cmd := cli.Resolve

	format, err := resolveFormat(cmd.Format, cmd.Template)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	res, err := resolveSources(cmd.SourceFlags, deps)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	if err := render.Write(deps.Out, format, res.Args, cmd.Template); err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	return 0
}

// resolveFormat picks the output format: flag, then BUILDARGS_FORMAT, then the
// global default. A template without an explicit format implies template output.
func resolveFormat(flag, tmpl string) (render.Format, error) {
	if value := strings.TrimSpace(flag); value != "" {
		return render.ParseFormat(value)
	}
	if strings.TrimSpace(tmpl) != "" {
		return render.FormatTemplate, nil
	}
	if value := strings.TrimSpace(envutil.GetHostEnv(constants.HostSuffixFormat)); value != "" {
		return render.ParseFormat(value)
	}
	defaults, err := config.LoadDefaults()
	if err != nil {
		return "", err
	}
	return render.ParseFormat(defaults.Format)
}
