// Where: cli/internal/constants/env.go
// What: Environment variable naming constants.
// Why: Centralize environment variable names to avoid typos and inconsistencies.
package constants

const (
	// Host-level suffixes, combined with ENV_PREFIX by envutil.HostEnvKey.
	HostSuffixConfigPath = "CONFIG_PATH"
	HostSuffixConfigHome = "CONFIG_HOME"
	HostSuffixProject    = "PROJECT"
	HostSuffixFormat     = "FORMAT"

	// Docker client configuration
	EnvDockerConfig = "DOCKER_CONFIG"
)
