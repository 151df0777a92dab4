package env

import (
	"os"
	"strings"
)

// Prefix namespaces every variable this service reads.
const Prefix = "BCF_"

// Get returns BCF_<key>, then the bare key, then fallback. Bare keys are read
// so platform conventions like LOG_FORMAT keep working.
func Get(key, fallback string) string {
	key = strings.TrimPrefix(key, Prefix)
	for _, candidate := range []string{Prefix + key, key} {
		if val := strings.TrimSpace(os.Getenv(candidate)); val != "" {
			return val
		}
	}
	return fallback
}
