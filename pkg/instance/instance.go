package instance

import "os"

// GetID returns the replica identifier used in startup logs. BCF_INSTANCE_ID
// wins over the platform-provided DYNO name.
func GetID() string {
	for _, key := range []string{"BCF_INSTANCE_ID", "DYNO"} {
		if id := os.Getenv(key); id != "" {
			return id
		}
	}
	return "local"
}
