// Where: cli/internal/render/render_test.go
// What: Tests for build-arg output formats.
// Why: Output is consumed by scripts; ordering and quoting must be stable.
package render

import (
	"bytes"
	"encoding/json"
	"reflect"
	"testing"
)

var sampleArgs = map[string]string{
	"VERSION":                    "1.2.3",
	"GREETING":                   "hello world",
	"docker.buildArg.http_proxy": "http://p:8080",
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "", want: FormatEnv},
		{input: " JSON ", want: FormatJSON},
		{input: "docker", want: FormatDocker},
		{input: "toml", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestWriteEnvSortedAndQuoted(t *testing.T) {
	var out bytes.Buffer
	if err := Write(&out, FormatEnv, sampleArgs, ""); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	want := "GREETING='hello world'\nVERSION=1.2.3\ndocker.buildArg.http_proxy=http://p:8080\n"
	if out.String() != want {
		t.Fatalf("env output = %q, want %q", out.String(), want)
	}
}

func TestWriteEnvSuppressesShellExpansion(t *testing.T) {
	var out bytes.Buffer
	args := map[string]string{
		"EMPTY": "",
		"HOME":  "$HOME/`id`",
		"QUOTE": "it's",
	}
	if err := Write(&out, FormatEnv, args, ""); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	want := "EMPTY=''\nHOME='$HOME/`id`'\nQUOTE='it'\"'\"'s'\n"
	if out.String() != want {
		t.Fatalf("env output = %q, want %q", out.String(), want)
	}
}

func TestWriteJSON(t *testing.T) {
	var out bytes.Buffer
	if err := Write(&out, FormatJSON, sampleArgs, ""); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	var decoded map[string]string
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if !reflect.DeepEqual(decoded, sampleArgs) {
		t.Fatalf("json output = %#v", decoded)
	}
}

func TestWriteYAML(t *testing.T) {
	var out bytes.Buffer
	if err := Write(&out, FormatYAML, map[string]string{"B": "2", "A": "1"}, ""); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if out.String() != "A: \"1\"\nB: \"2\"\n" {
		t.Fatalf("yaml output = %q", out.String())
	}
}

func TestWriteDocker(t *testing.T) {
	var out bytes.Buffer
	if err := Write(&out, FormatDocker, map[string]string{"B": "two words", "A": "1"}, ""); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	want := "--build-arg A=1 --build-arg 'B=two words'\n"
	if out.String() != want {
		t.Fatalf("docker output = %q, want %q", out.String(), want)
	}
}

func TestDockerFlags(t *testing.T) {
	got := DockerFlags(map[string]string{"B": "2", "A": "1"})
	want := []string{"--build-arg", "A=1", "--build-arg", "B=2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DockerFlags() = %#v, want %#v", got, want)
	}
}

func TestWriteTemplateUsesSprig(t *testing.T) {
	var out bytes.Buffer
	tmpl := `{{ range .Args }}{{ .Key | lower }}={{ .Value | quote }};{{ end }}{{ .Values.VERSION | default "none" }}`
	if err := Write(&out, FormatTemplate, map[string]string{"VERSION": "9", "NAME": "api"}, tmpl); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if want := `name="api";version="9";9`; out.String() != want {
		t.Fatalf("template output = %q, want %q", out.String(), want)
	}
}

func TestWriteTemplateRequiresTemplate(t *testing.T) {
	var out bytes.Buffer
	if err := Write(&out, FormatTemplate, sampleArgs, "  "); err == nil {
		t.Fatal("expected error for empty template")
	}
}

func TestWriteTemplateParseError(t *testing.T) {
	var out bytes.Buffer
	if err := Write(&out, FormatTemplate, sampleArgs, "{{ .Args "); err == nil {
		t.Fatal("expected parse error")
	}
}
