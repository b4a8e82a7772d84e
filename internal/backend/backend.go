// Package backend selects and wires the persistence backend the records
// port runs on.
package backend

import (
	"fmt"

	"sumstra/internal/config"
	"sumstra/internal/records"
)

// Type names a persistence backend.
type Type string

const (
	MemoryBackend    Type = "memory"
	SQLiteBackend    Type = "sqlite"
	PostgRESTBackend Type = "postgrest"
)

func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, SQLiteBackend, PostgRESTBackend:
		return true
	default:
		return false
	}
}

// Types returns all valid backend types.
func Types() []Type {
	return []Type{MemoryBackend, SQLiteBackend, PostgRESTBackend}
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Result contains the repository and optional cleanup function.
type Result struct {
	Repository records.Repository
	Cleanup    CleanupFunc
}

// Config holds everything needed to build a backend.
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// PostgREST specific
	PostgRESTURL    string
	PostgRESTAPIKey string
	AccessToken     string
}

// FromAppConfig converts the application config to backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := Type(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type:            backendType,
		SQLiteDBPath:    appConfig.SQLiteDBPath,
		PostgRESTURL:    appConfig.PostgRESTURL,
		PostgRESTAPIKey: appConfig.PostgRESTAPIKey,
		AccessToken:     appConfig.SessionAccessToken,
	}, nil
}

// Validate validates the backend configuration.
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}

	switch c.Type {
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
	case PostgRESTBackend:
		if c.PostgRESTURL == "" {
			return fmt.Errorf("PostgREST URL is required for postgrest backend")
		}
		if c.PostgRESTAPIKey == "" {
			return fmt.Errorf("PostgREST API key is required for postgrest backend")
		}
	case MemoryBackend:
		// Nothing to validate.
	}

	return nil
}
