// Where: cli/internal/render/render.go
// What: Output formats for resolved build args.
// Why: Feed the merged args to shells, CI systems, docker and custom templates.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"gopkg.in/yaml.v3"
)

// Format names an output format.
type Format string

const (
	FormatEnv      Format = "env"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatDocker   Format = "docker"
	FormatTemplate Format = "template"
)

// Formats lists every supported format in display order.
var Formats = []Format{FormatEnv, FormatJSON, FormatYAML, FormatDocker, FormatTemplate}

// Arg is one resolved build arg, as exposed to templates.
type Arg struct {
	Key   string
	Value string
}

// ParseFormat normalizes a user-provided format name.
func ParseFormat(value string) (Format, error) {
	normalized := Format(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return FormatEnv, nil
	}
	for _, format := range Formats {
		if normalized == format {
			return format, nil
		}
	}
	names := make([]string, 0, len(Formats))
	for _, format := range Formats {
		names = append(names, string(format))
	}
	return "", fmt.Errorf("invalid format %q (expected %s)", value, strings.Join(names, ", "))
}

// SortedArgs returns args ordered by key.
func SortedArgs(args map[string]string) []Arg {
	keys := make([]string, 0, len(args))
	for key := range args {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]Arg, 0, len(keys))
	for _, key := range keys {
		out = append(out, Arg{Key: key, Value: args[key]})
	}
	return out
}

// DockerFlags renders args as `--build-arg KEY=value` pairs, ready for exec.
func DockerFlags(args map[string]string) []string {
	flags := make([]string, 0, len(args)*2)
	for _, arg := range SortedArgs(args) {
		flags = append(flags, "--build-arg", arg.Key+"="+arg.Value)
	}
	return flags
}

// Write renders args to out. tmpl is only used by FormatTemplate.
func Write(out io.Writer, format Format, args map[string]string, tmpl string) error {
	switch format {
	case FormatEnv, "":
		return writeEnv(out, args)
	case FormatJSON:
		return writeJSON(out, args)
	case FormatYAML:
		return writeYAML(out, args)
	case FormatDocker:
		return writeDocker(out, args)
	case FormatTemplate:
		return writeTemplate(out, args, tmpl)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// writeEnv emits KEY=value lines that a POSIX shell can source without expansion.
func writeEnv(out io.Writer, args map[string]string) error {
	var buf bytes.Buffer
	for _, arg := range SortedArgs(args) {
		fmt.Fprintf(&buf, "%s=%s\n", arg.Key, ShellQuote(arg.Value))
	}
	_, err := out.Write(buf.Bytes())
	return err
}

func writeJSON(out io.Writer, args map[string]string) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(args); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func writeYAML(out io.Writer, args map[string]string) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(args); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return encoder.Close()
}

func writeDocker(out io.Writer, args map[string]string) error {
	flags := DockerFlags(args)
	parts := make([]string, 0, len(flags))
	for _, flag := range flags {
		parts = append(parts, ShellQuote(flag))
	}
	_, err := fmt.Fprintln(out, strings.Join(parts, " "))
	return err
}

func writeTemplate(out io.Writer, args map[string]string, tmpl string) error {
	if strings.TrimSpace(tmpl) == "" {
		return fmt.Errorf("template format requires a template")
	}
	parsed, err := template.New("buildargs").Funcs(sprig.TxtFuncMap()).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}
	data := struct {
		Args   []Arg
		Values map[string]string
	}{
		Args:   SortedArgs(args),
		Values: args,
	}
	if err := parsed.Execute(out, data); err != nil {
		return fmt.Errorf("render template: %w", err)
	}
	return nil
}

// ShellQuote single-quotes value when a POSIX shell would split or expand it.
func ShellQuote(value string) string {
	if value == "" {
		return "''"
	}
	if !strings.ContainsAny(value, " \t\n\"'`$\\|&;<>()*?[]#~!{}") {
		return value
	}
	return "'" + strings.ReplaceAll(value, "'", `'"'"'`) + "'"
}
