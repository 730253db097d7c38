package env

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// DefaultFile holds API keys and other secrets for local runs.
const DefaultFile = ".env"

// Load reads KEY=VALUE pairs from path (e.g. ".env") into the process
// environment, overriding variables that are already set. The file may be
// missing; that is not an error.
func Load(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return godotenv.Overload(path)
}

// Lookup returns the first non-empty value among keys.
func Lookup(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
