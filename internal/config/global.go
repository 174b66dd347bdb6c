// Where: cli/internal/config/global.go
// What: Global config load/save helpers.
// Why: Manage ~/.buildargs/config.yaml consistently.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/poruru/buildargs/cli/internal/constants"
	"github.com/poruru/buildargs/cli/internal/envutil"
	"github.com/poruru/buildargs/cli/internal/meta"
)

// GlobalConfig represents the ~/.buildargs/config.yaml user configuration.
type GlobalConfig struct {
	Version  int      `yaml:"version"`
	Defaults Defaults `yaml:"defaults,omitempty"`
}

// Defaults stores user preferences applied when a flag is not given.
type Defaults struct {
	// DockerProxy includes ~/.docker/config.json proxies in `resolve`.
	DockerProxy *bool  `yaml:"docker_proxy,omitempty"`
	Format      string `yaml:"format,omitempty"`
	Emoji       *bool  `yaml:"emoji,omitempty"`
}

// DefaultGlobalConfig returns an initialized GlobalConfig with version set.
func DefaultGlobalConfig() GlobalConfig {
	return GlobalConfig{Version: 1}
}

// IncludeDockerProxy reports the configured default, falling back to fallback.
func (d Defaults) IncludeDockerProxy(fallback bool) bool {
	if d.DockerProxy == nil {
		return fallback
	}
	return *d.DockerProxy
}

// EmojiEnabled reports whether console output should use emoji prefixes.
func (d Defaults) EmojiEnabled() bool {
	if d.Emoji == nil {
		return true
	}
	return *d.Emoji
}

// GlobalConfigPath returns the path to the global config file.
// Respects BUILDARGS_CONFIG_PATH and BUILDARGS_CONFIG_HOME.
func GlobalConfigPath() (string, error) {
	if override := strings.TrimSpace(envutil.GetHostEnv(constants.HostSuffixConfigPath)); override != "" {
		path := override
		if !filepath.IsAbs(path) {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
		}
		return path, nil
	}
	if override := strings.TrimSpace(envutil.GetHostEnv(constants.HostSuffixConfigHome)); override != "" {
		return filepath.Join(override, meta.GlobalConfigFile), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, meta.HomeDir, meta.GlobalConfigFile), nil
}

// EnsureGlobalConfig creates the global config file if it doesn't exist.
func EnsureGlobalConfig() error {
	path, err := GlobalConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return SaveGlobalConfig(path, DefaultGlobalConfig())
		}
		return fmt.Errorf("stat global config: %w", err)
	}
	return nil
}

// LoadDefaults returns the configured defaults, or zero defaults when the file is absent.
func LoadDefaults() (Defaults, error) {
	path, err := GlobalConfigPath()
	if err != nil {
		return Defaults{}, err
	}
	cfg, err := LoadGlobalConfig(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Defaults{}, nil
		}
		return Defaults{}, err
	}
	return cfg.Defaults, nil
}

// LoadGlobalConfig reads and parses the global configuration file.
func LoadGlobalConfig(path string) (GlobalConfig, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return GlobalConfig{}, fmt.Errorf("read global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return GlobalConfig{}, fmt.Errorf("decode global config: %w", err)
	}
	return cfg, nil
}

// SaveGlobalConfig writes a GlobalConfig to the specified path.
func SaveGlobalConfig(path string, cfg GlobalConfig) error {
	payload, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("encode global config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create global config dir: %w", err)
	}

	if err := os.WriteFile(path, payload, 0o600); err != nil {
		return fmt.Errorf("write global config: %w", err)
	}
	return nil
}
