// Package env reads raw environment variables for the few settings needed
// before the envconfig-backed configuration is loaded.
package env

import "os"

// Get returns the named variable or a fallback. The RABUSTE_-prefixed form
// wins over the bare name so bootstrap settings follow the same naming as
// the rest of the configuration.
func Get(key, fallback string) string {
	if val := os.Getenv("RABUSTE_" + key); val != "" {
		return val
	}
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
