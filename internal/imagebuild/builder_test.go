// Where: cli/internal/imagebuild/builder_test.go
// What: Tests for image build planning and Docker SDK calls.
// Why: Resolved build args must reach the daemon unchanged.
package imagebuild

import (
	"archive/tar"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/docker/docker/api/types"

	"github.com/poruru/buildargs/cli/internal/buildargs"
)

type fakeClient struct {
	options  types.ImageBuildOptions
	files    []string
	response string
	err      error
}

func (f *fakeClient) ImageBuild(_ context.Context, buildContext io.Reader, options types.ImageBuildOptions) (types.ImageBuildResponse, error) {
	f.options = options
	reader := tar.NewReader(buildContext)
	for {
		header, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return types.ImageBuildResponse{}, err
		}
		f.files = append(f.files, header.Name)
	}
	if f.err != nil {
		return types.ImageBuildResponse{}, f.err
	}
	return types.ImageBuildResponse{Body: io.NopCloser(strings.NewReader(f.response))}, nil
}

func writeContext(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Dockerfile"), []byte("FROM scratch\nARG VERSION\n"), 0o644); err != nil {
		t.Fatalf("write Dockerfile: %v", err)
	}
	return dir
}

func TestBuildPassesArgsToDocker(t *testing.T) {
	dir := writeContext(t)
	client := &fakeClient{response: `{"stream":"Step 1/2 : FROM scratch\n"}` + "\n"}
	var out bytes.Buffer

	err := NewBuilder(client, &out).Build(context.Background(), Request{
		Image: buildargs.ImageConfiguration{
			Name:  "api",
			Build: &buildargs.BuildConfiguration{ContextDir: dir, Tags: []string{"api:1", "api:1", " "}},
		},
		Args:    map[string]string{"VERSION": "1.2.3", "EMPTY": ""},
		NoCache: true,
		Pull:    true,
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if !reflect.DeepEqual(client.options.Tags, []string{"api:1"}) {
		t.Fatalf("Tags = %#v", client.options.Tags)
	}
	if client.options.Dockerfile != "Dockerfile" {
		t.Fatalf("Dockerfile = %q", client.options.Dockerfile)
	}
	if !client.options.NoCache || !client.options.PullParent {
		t.Fatalf("expected NoCache and PullParent: %#v", client.options)
	}
	if len(client.options.BuildArgs) != 2 {
		t.Fatalf("BuildArgs = %#v", client.options.BuildArgs)
	}
	if v := client.options.BuildArgs["VERSION"]; v == nil || *v != "1.2.3" {
		t.Fatalf("VERSION = %v", v)
	}
	if v := client.options.BuildArgs["EMPTY"]; v == nil || *v != "" {
		t.Fatalf("EMPTY = %v", v)
	}
	if !containsString(client.files, "Dockerfile") {
		t.Fatalf("build context missing Dockerfile: %v", client.files)
	}
	if !strings.Contains(out.String(), "Step 1/2 : FROM scratch") {
		t.Fatalf("progress not rendered: %q", out.String())
	}
}

func TestBuildDefaultsTagToImageName(t *testing.T) {
	dir := writeContext(t)
	client := &fakeClient{}

	err := NewBuilder(client, io.Discard).Build(context.Background(), Request{
		Image:   buildargs.ImageConfiguration{Name: "worker"},
		BaseDir: dir,
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !reflect.DeepEqual(client.options.Tags, []string{"worker:latest"}) {
		t.Fatalf("Tags = %#v", client.options.Tags)
	}
}

func TestBuildSurfacesDaemonErrors(t *testing.T) {
	dir := writeContext(t)
	client := &fakeClient{response: `{"errorDetail":{"message":"failed to solve"},"error":"failed to solve"}` + "\n"}

	err := NewBuilder(client, io.Discard).Build(context.Background(), Request{
		Image:   buildargs.ImageConfiguration{Name: "api"},
		BaseDir: dir,
	})
	if err == nil || !strings.Contains(err.Error(), "failed to solve") {
		t.Fatalf("Build() error = %v, want daemon error", err)
	}
}

func TestBuildWrapsClientError(t *testing.T) {
	dir := writeContext(t)
	client := &fakeClient{err: errors.New("daemon unreachable")}

	err := NewBuilder(client, io.Discard).Build(context.Background(), Request{
		Image:   buildargs.ImageConfiguration{Name: "api"},
		BaseDir: dir,
	})
	if err == nil || !strings.Contains(err.Error(), "daemon unreachable") {
		t.Fatalf("Build() error = %v", err)
	}
}

func TestBuildDryRunPrintsCommand(t *testing.T) {
	dir := writeContext(t)
	var out bytes.Buffer

	err := NewBuilder(nil, &out).Build(context.Background(), Request{
		Image:   buildargs.ImageConfiguration{Name: "api"},
		BaseDir: dir,
		Args:    map[string]string{"B": "two words", "A": "1"},
		DryRun:  true,
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := "docker build -t api:latest -f " + filepath.Join(dir, "Dockerfile") +
		" --build-arg A=1 --build-arg 'B=two words' " + dir + "\n"
	if out.String() != want {
		t.Fatalf("dry run output = %q, want %q", out.String(), want)
	}
}

func TestBuildRejectsDockerfileOutsideContext(t *testing.T) {
	dir := writeContext(t)
	outside := filepath.Join(t.TempDir(), "Dockerfile")
	if err := os.WriteFile(outside, []byte("FROM scratch\n"), 0o644); err != nil {
		t.Fatalf("write Dockerfile: %v", err)
	}

	err := NewBuilder(&fakeClient{}, io.Discard).Build(context.Background(), Request{
		Image: buildargs.ImageConfiguration{
			Name:  "api",
			Build: &buildargs.BuildConfiguration{ContextDir: dir, Dockerfile: outside},
		},
	})
	if err == nil {
		t.Fatal("expected error for dockerfile outside context")
	}
}

func TestBuildRequiresDockerfile(t *testing.T) {
	err := NewBuilder(&fakeClient{}, io.Discard).Build(context.Background(), Request{
		Image:   buildargs.ImageConfiguration{Name: "api"},
		BaseDir: t.TempDir(),
	})
	if err == nil {
		t.Fatal("expected error for missing Dockerfile")
	}
}

func TestBuildRequiresNameOrTag(t *testing.T) {
	err := NewBuilder(&fakeClient{}, io.Discard).Build(context.Background(), Request{BaseDir: writeContext(t)})
	if err == nil {
		t.Fatal("expected error for unnamed image")
	}
}

func TestBuildWithoutClient(t *testing.T) {
	err := NewBuilder(nil, io.Discard).Build(context.Background(), Request{
		Image:   buildargs.ImageConfiguration{Name: "api"},
		BaseDir: writeContext(t),
	})
	if err == nil {
		t.Fatal("expected error without docker client")
	}
}

func containsString(values []string, want string) bool {
	for _, value := range values {
		if value == want {
			return true
		}
	}
	return false
}
