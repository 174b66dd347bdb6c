// Where: cli/internal/commands/helpers_test.go
// What: Shared fixtures for command tests.
// Why: Isolate global config, Docker config and system properties per test.
package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/poruru/buildargs/cli/internal/meta"
	"github.com/poruru/buildargs/cli/internal/sysprops"
)

type mockPrompter struct {
	selectFn    func(title string, options []string) (string, error)
	lastTitle   string
	lastOptions []string
}

func (m *mockPrompter) Select(title string, options []string) (string, error) {
	m.lastTitle = title
	m.lastOptions = options
	if m.selectFn != nil {
		return m.selectFn(title, options)
	}
	return "", nil
}

type commandFixture struct {
	projectDir string
	dockerDir  string
	out        bytes.Buffer
	errOut     bytes.Buffer
}

// newCommandFixture points every host-level lookup at temporary directories.
func newCommandFixture(t *testing.T) *commandFixture {
	t.Helper()
	root := t.TempDir()
	f := &commandFixture{
		projectDir: filepath.Join(root, "project"),
		dockerDir:  filepath.Join(root, "docker"),
	}
	if err := os.MkdirAll(f.projectDir, 0o755); err != nil {
		t.Fatalf("mkdir project: %v", err)
	}

	t.Setenv("ENV_PREFIX", meta.EnvPrefix)
	t.Setenv(meta.EnvPrefix+"_CONFIG_PATH", filepath.Join(root, "home", "config.yaml"))
	t.Setenv(meta.EnvPrefix+"_PROJECT", "")
	t.Setenv(meta.EnvPrefix+"_FORMAT", "")
	t.Setenv("DOCKER_CONFIG", f.dockerDir)

	sysprops.Reset()
	t.Cleanup(sysprops.Reset)
	return f
}

func (f *commandFixture) deps() Dependencies {
	return Dependencies{
		Out:    &f.out,
		ErrOut: &f.errOut,
		Getwd:  func() (string, error) { return f.projectDir, nil },
	}
}

func (f *commandFixture) writeProject(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(f.projectDir, meta.ProjectFile)
	writeTestFile(t, path, content)
	return path
}

func (f *commandFixture) writeDockerConfig(t *testing.T, content string) {
	t.Helper()
	writeTestFile(t, filepath.Join(f.dockerDir, "config.json"), content)
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

const proxyDockerConfig = `{
  "proxies": {
    "default": {
      "httpProxy": "http://proxy:3128",
      "noProxy": "localhost"
    }
  }
}`

const layeredProject = `buildArgs:
  A: tool
  B: tool
properties:
  docker.buildArg.B: project
  docker.buildArg.C: project
  unrelated.key: ignored
images:
  - name: app
    build:
      dockerfile: Dockerfile
      args:
        C: image
`

const multiImageProject = `images:
  - name: api
    build:
      args:
        ROLE: api
  - name: worker
    build:
      args:
        ROLE: worker
`
