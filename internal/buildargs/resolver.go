// Where: cli/internal/buildargs/resolver.go
// What: Build-arg resolution entry points with injected collaborators.
// Why: Assemble sources in precedence order and keep ambient lookups swappable in tests.
package buildargs

import (
	"github.com/poruru/buildargs/cli/internal/dockerconfig"
	"github.com/poruru/buildargs/cli/internal/sysprops"
)

// Resolver merges build args from image, system, project, tool and Docker proxy sources.
//
// Precedence, highest first:
//   - image-level args
//   - system properties
//   - project properties
//   - tool configuration args
//   - Docker client proxy defaults
type Resolver struct {
	// SystemProperties supplies the ambient property set.
	SystemProperties func() map[string]string
	// ReadDockerConfig loads the Docker client config. Any error means "unavailable".
	ReadDockerConfig func() (*dockerconfig.Config, error)
	Logger           Logger
}

// NewResolver returns a Resolver wired to the process property registry
// and the Docker client config on disk.
func NewResolver(logger Logger) *Resolver {
	return &Resolver{
		SystemProperties: func() map[string]string { return sysprops.All() },
		ReadDockerConfig: dockerconfig.Load,
		Logger:           logger,
	}
}

// MergeIncludingDockerProxy merges every source, with Docker proxy defaults as the lowest fallback.
func (r *Resolver) MergeIncludingDockerProxy(image ImageConfiguration, cfg Configuration) map[string]string {
	sources := []map[string]string{r.dockerProxyArgs()}
	sources = append(sources, r.configuredSources(image, cfg)...)
	return Merge(sources, r.Logger)
}

// MergeExcludingDockerProxy merges every source except the Docker proxy defaults.
func (r *Resolver) MergeExcludingDockerProxy(image ImageConfiguration, cfg Configuration) map[string]string {
	return Merge(r.configuredSources(image, cfg), r.Logger)
}

// configuredSources lists sources in increasing precedence, excluding Docker proxies.
func (r *Resolver) configuredSources(image ImageConfiguration, cfg Configuration) []map[string]string {
	return []map[string]string{
		cfg.BuildArgs,
		FromProperties(cfg.projectProperties()),
		FromProperties(r.systemProperties()),
		image.args(),
	}
}

func (r *Resolver) systemProperties() map[string]string {
	if r.SystemProperties == nil {
		return nil
	}
	return r.SystemProperties()
}

func (r *Resolver) dockerProxyArgs() map[string]string {
	if r.ReadDockerConfig == nil {
		return map[string]string{}
	}
	cfg, err := r.ReadDockerConfig()
	if err != nil {
		return map[string]string{}
	}
	return FromDockerConfig(cfg)
}

// MergeIncludingDockerProxy resolves build args with the default resolver.
func MergeIncludingDockerProxy(image ImageConfiguration, cfg Configuration, logger Logger) map[string]string {
	return NewResolver(logger).MergeIncludingDockerProxy(image, cfg)
}

// MergeExcludingDockerProxy resolves build args with the default resolver, skipping Docker proxies.
func MergeExcludingDockerProxy(image ImageConfiguration, cfg Configuration, logger Logger) map[string]string {
	return NewResolver(logger).MergeExcludingDockerProxy(image, cfg)
}
