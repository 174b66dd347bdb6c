// Where: cli/internal/buildargs/merge.go
// What: Last-write-wins merge of ordered build-arg sources.
// Why: Resolve duplicate keys predictably and tell the user when it happens.
package buildargs

import (
	"fmt"
	"sort"
)

// Merge folds sources in order; later sources overwrite earlier ones.
// Every overwrite is reported to logger, even when the value is unchanged.
// Nil sources are skipped.
func Merge(sources []map[string]string, logger Logger) map[string]string {
	merged := make(map[string]string)
	for _, source := range sources {
		if source == nil {
			continue
		}
		for _, key := range sortedKeys(source) {
			value := source[key]
			if previous, exists := merged[key]; exists && logger != nil {
				logger.Warn(collisionMessage(key, previous, value))
			}
			merged[key] = value
		}
	}
	return merged
}

func collisionMessage(key, previous, value string) string {
	return fmt.Sprintf(
		"Multiple Build Args with the same key: %s=%s and %s=%s, overriding value of key to %s=%s",
		key, previous, key, value, key, value,
	)
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
