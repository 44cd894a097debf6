package context7

import (
	"fmt"
	"io"
	"os"
)

// Environment variables read by the CLI.
const (
	EnvAPIKey   = "CONTEXT7_API_KEY"
	EnvEndpoint = "CONTEXT7_URL"
)

// EnvConfig holds all known environment variables.
type EnvConfig struct {
	// API key sent as a bearer token. Empty means unauthenticated.
	APIKey string

	// Endpoint overrides DefaultURL when set.
	Endpoint string
}

// LoadEnv reads all known environment variables. Values are read on every
// call so tests can override them.
func LoadEnv() EnvConfig {
	apiKey, _ := LookupEnv(io.Discard, EnvAPIKey, "")
	endpoint, _ := LookupEnv(io.Discard, EnvEndpoint, "")
	return EnvConfig{
		APIKey:   apiKey,
		Endpoint: endpoint,
	}
}

// GetEnv reads an environment variable, printing warn to stdout when it is
// missing. See LookupEnv.
func GetEnv(name, warn string) (string, bool) {
	return LookupEnv(os.Stdout, name, warn)
}

// LookupEnv reads an environment variable at call time. An empty value is
// treated as missing. When the variable is missing and warn is non-empty,
// warn is written to w as a single line. It never fails.
func LookupEnv(w io.Writer, name, warn string) (string, bool) {
	value := os.Getenv(name)
	if value == "" {
		if warn != "" {
			fmt.Fprintln(w, warn)
		}
		return "", false
	}
	return value, true
}
