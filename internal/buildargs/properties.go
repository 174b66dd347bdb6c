// Where: cli/internal/buildargs/properties.go
// What: Build-arg extraction from flat property sets and Docker proxy settings.
// Why: Turn ambient configuration into plain build-arg maps before merging.
package buildargs

import (
	"strings"

	"github.com/poruru/buildargs/cli/internal/dockerconfig"
)

// ArgPrefix marks properties that carry build args.
const ArgPrefix = "docker.buildArg."

type proxyMapping struct {
	dockerKey string
	envKey    string
}

// proxyMappings pairs Docker client proxy keys with their build-arg names.
var proxyMappings = [...]proxyMapping{
	{dockerKey: "httpProxy", envKey: "http_proxy"},
	{dockerKey: "httpsProxy", envKey: "https_proxy"},
	{dockerKey: "noProxy", envKey: "no_proxy"},
	{dockerKey: "ftpProxy", envKey: "ftp_proxy"},
}

// FromProperties selects docker.buildArg.* entries, strips the prefix
// and drops blank values.
func FromProperties(properties map[string]string) map[string]string {
	args := make(map[string]string)
	for key, value := range properties {
		if !strings.HasPrefix(key, ArgPrefix) {
			continue
		}
		if strings.TrimSpace(value) == "" {
			continue
		}
		args[strings.TrimPrefix(key, ArgPrefix)] = value
	}
	return args
}

// FromDockerConfig maps the default proxy block of a Docker client config
// to docker.buildArg.<name> entries. A nil config yields an empty map.
func FromDockerConfig(cfg *dockerconfig.Config) map[string]string {
	args := make(map[string]string)
	proxy, ok := cfg.DefaultProxy()
	if !ok {
		return args
	}
	values := proxy.Values()
	for _, mapping := range proxyMappings {
		if value, ok := values[mapping.dockerKey]; ok {
			args[ArgPrefix+mapping.envKey] = value
		}
	}
	return args
}
