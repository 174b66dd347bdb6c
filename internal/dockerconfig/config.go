// Where: cli/internal/dockerconfig/config.go
// What: Typed schema and loader for the Docker client config.json.
// Why: Read proxy defaults without casting through untyped maps.
package dockerconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/poruru/buildargs/cli/internal/constants"
)

// FileName is the Docker client configuration file inside the config dir.
const FileName = "config.json"

// DefaultProxyKey selects the proxy block applied to every daemon.
const DefaultProxyKey = "default"

// ErrNotFound is returned when no Docker client configuration exists.
var ErrNotFound = errors.New("docker config not found")

// Config is the subset of ~/.docker/config.json the CLI understands.
// Other top-level keys (auths, credsStore, ...) are ignored.
type Config struct {
	Proxies map[string]ProxyConfig `json:"proxies,omitempty"`
}

// ProxyConfig holds the proxy settings Docker injects into builds and containers.
// A nil field is absent from config.json; an empty string is an explicit value.
type ProxyConfig struct {
	HTTPProxy  *string `json:"httpProxy,omitempty"`
	HTTPSProxy *string `json:"httpsProxy,omitempty"`
	NoProxy    *string `json:"noProxy,omitempty"`
	FTPProxy   *string `json:"ftpProxy,omitempty"`
}

// DefaultProxy returns the "default" proxy block, if present.
func (c *Config) DefaultProxy() (ProxyConfig, bool) {
	if c == nil || c.Proxies == nil {
		return ProxyConfig{}, false
	}
	proxy, ok := c.Proxies[DefaultProxyKey]
	return proxy, ok
}

// Values returns the present proxy entries keyed by their config.json names
// (httpProxy, httpsProxy, noProxy, ftpProxy). Present empty values are kept.
func (p ProxyConfig) Values() map[string]string {
	values := make(map[string]string)
	add := func(key string, value *string) {
		if value != nil {
			values[key] = *value
		}
	}
	add("httpProxy", p.HTTPProxy)
	add("httpsProxy", p.HTTPSProxy)
	add("noProxy", p.NoProxy)
	add("ftpProxy", p.FTPProxy)
	return values
}

// Dir resolves the Docker client configuration directory.
// DOCKER_CONFIG wins; otherwise ~/.docker is used.
func Dir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(constants.EnvDockerConfig)); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".docker"), nil
}

// Path returns the full path of the Docker client config.json.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads the Docker client configuration from its well-known location.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads and decodes a Docker client configuration file.
// Keys match case-insensitively, as they do for the docker CLI.
func LoadFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read docker config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("decode docker config %s: %w", path, err)
	}
	return &cfg, nil
}
