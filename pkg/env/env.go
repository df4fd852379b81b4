package env

import "os"

// Get resolves an environment variable, preferring the CATALOG_-prefixed
// form used by the service configuration, and falls back to the given
// default when neither is set.
func Get(key, fallback string) string {
	if val := os.Getenv("CATALOG_" + key); val != "" {
		return val
	}
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
