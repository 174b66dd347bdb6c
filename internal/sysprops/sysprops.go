// Where: cli/internal/sysprops/sysprops.go
// What: Process-wide system property registry.
// Why: Give -D flags and property files one ambient source the resolver can snapshot.
package sysprops

import (
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// Properties is a flat string-keyed property set.
type Properties map[string]string

var (
	mu    sync.RWMutex
	props = Properties{}
)

// All returns a copy of every registered property.
func All() Properties {
	mu.RLock()
	defer mu.RUnlock()
	out := make(Properties, len(props))
	for key, value := range props {
		out[key] = value
	}
	return out
}

// Reset clears the registry.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	props = Properties{}
}

// ParseAssignments parses "key=value" strings as given to -D flags.
// A bare "key" is recorded with an empty value.
func ParseAssignments(assignments []string) (Properties, error) {
	out := make(Properties, len(assignments))
	for _, raw := range assignments {
		key, value, _ := strings.Cut(raw, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid property %q: empty key", raw)
		}
		out[key] = value
	}
	return out, nil
}

// LoadFile reads a key=value property file.
func LoadFile(path string) (Properties, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read properties %s: %w", path, err)
	}
	return Properties(values), nil
}

// Apply registers every entry of the given property set.
func Apply(values Properties) {
	mu.Lock()
	defer mu.Unlock()
	for key, value := range values {
		props[key] = value
	}
}
