// Where: cli/internal/imagebuild/builder.go
// What: Image build execution with resolved build args.
// Why: Hand the merged args to the Docker daemon exactly as resolved.
package imagebuild

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/pkg/archive"
	"github.com/docker/docker/pkg/jsonmessage"
	"github.com/mattn/go-isatty"

	"github.com/poruru/buildargs/cli/internal/buildargs"
	"github.com/poruru/buildargs/cli/internal/render"
)

// Request describes one image build.
type Request struct {
	Image buildargs.ImageConfiguration
	// BaseDir is the context used when the image declares none.
	BaseDir string
	Args    map[string]string
	NoCache bool
	Pull    bool
	DryRun  bool
}

// Builder runs image builds against a Docker daemon.
type Builder struct {
	client Client
	out    io.Writer
}

// NewBuilder returns a Builder writing progress to out.
// client may be nil when only dry runs are performed.
func NewBuilder(client Client, out io.Writer) *Builder {
	if out == nil {
		out = os.Stdout
	}
	return &Builder{client: client, out: out}
}

// plan is the normalized form of a Request.
type plan struct {
	contextDir string
	dockerfile string // relative to contextDir, slash separated
	tags       []string
}

// Build builds the requested image, or prints the equivalent command on dry run.
func (b *Builder) Build(ctx context.Context, req Request) error {
	p, err := newPlan(req)
	if err != nil {
		return err
	}
	if req.DryRun {
		_, err := fmt.Fprintln(b.out, "docker "+quoteArgs(dockerArgs(p, req)))
		return err
	}
	if b.client == nil {
		return errors.New("build: docker client not configured")
	}

	buildContext, err := archive.TarWithOptions(p.contextDir, &archive.TarOptions{})
	if err != nil {
		return fmt.Errorf("archive build context %s: %w", p.contextDir, err)
	}
	defer buildContext.Close()

	resp, err := b.client.ImageBuild(ctx, buildContext, types.ImageBuildOptions{
		Tags:        p.tags,
		Dockerfile:  p.dockerfile,
		BuildArgs:   buildArgPointers(req.Args),
		NoCache:     req.NoCache,
		PullParent:  req.Pull,
		Remove:      true,
		ForceRemove: true,
	})
	if err != nil {
		return fmt.Errorf("build image %s: %w", p.tags[0], err)
	}
	defer resp.Body.Close()

	fd, isTerminal := terminalInfo(b.out)
	if err := jsonmessage.DisplayJSONMessagesStream(resp.Body, b.out, fd, isTerminal, nil); err != nil {
		return fmt.Errorf("build image %s: %w", p.tags[0], err)
	}
	return nil
}

func newPlan(req Request) (plan, error) {
	var build buildargs.BuildConfiguration
	if req.Image.Build != nil {
		build = *req.Image.Build
	}

	contextDir := strings.TrimSpace(build.ContextDir)
	if contextDir == "" {
		contextDir = strings.TrimSpace(req.BaseDir)
	}
	if contextDir == "" {
		contextDir = "."
	}
	contextDir, err := filepath.Abs(contextDir)
	if err != nil {
		return plan{}, fmt.Errorf("resolve build context: %w", err)
	}
	if info, err := os.Stat(contextDir); err != nil || !info.IsDir() {
		return plan{}, fmt.Errorf("build context %q not found or not a directory", contextDir)
	}

	dockerfile := strings.TrimSpace(build.Dockerfile)
	if dockerfile == "" {
		dockerfile = filepath.Join(contextDir, "Dockerfile")
	} else if !filepath.IsAbs(dockerfile) {
		dockerfile = filepath.Join(contextDir, dockerfile)
	}
	rel, err := filepath.Rel(contextDir, dockerfile)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return plan{}, fmt.Errorf("dockerfile %s must be inside build context %s", dockerfile, contextDir)
	}
	if info, err := os.Stat(dockerfile); err != nil || info.IsDir() {
		return plan{}, fmt.Errorf("dockerfile %q not found or not a file", dockerfile)
	}

	tags := normalizeTags(build.Tags)
	if len(tags) == 0 {
		name := strings.TrimSpace(req.Image.Name)
		if name == "" {
			return plan{}, errors.New("image needs a name or at least one tag")
		}
		tags = []string{name + ":latest"}
	}

	return plan{contextDir: contextDir, dockerfile: filepath.ToSlash(rel), tags: tags}, nil
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func dockerArgs(p plan, req Request) []string {
	args := []string{"build"}
	for _, tag := range p.tags {
		args = append(args, "-t", tag)
	}
	args = append(args, "-f", filepath.Join(p.contextDir, filepath.FromSlash(p.dockerfile)))
	if req.Pull {
		args = append(args, "--pull")
	}
	if req.NoCache {
		args = append(args, "--no-cache")
	}
	args = append(args, render.DockerFlags(req.Args)...)
	return append(args, p.contextDir)
}

func buildArgPointers(args map[string]string) map[string]*string {
	out := make(map[string]*string, len(args))
	for key, value := range args {
		out[key] = &value
	}
	return out
}

func terminalInfo(out io.Writer) (uintptr, bool) {
	file, ok := out.(*os.File)
	if !ok {
		return 0, false
	}
	fd := file.Fd()
	return fd, isatty.IsTerminal(fd)
}

func quoteArgs(args []string) string {
	quoted := make([]string, 0, len(args))
	for _, arg := range args {
		quoted = append(quoted, render.ShellQuote(arg))
	}
	return strings.Join(quoted, " ")
}
