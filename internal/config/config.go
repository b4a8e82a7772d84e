package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP Server
	Port string

	// Backend selection
	DataBackend string

	// SQLite
	SQLiteDBPath string

	// Hosted table API
	PostgRESTURL    string
	PostgRESTAPIKey string

	// AMQP (optional; events are skipped without it)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Session
	SessionJWTSecret   string
	SessionAccessToken string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8082"),
		DataBackend: getEnv("DATA_BACKEND", "memory"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/sumstra.db"),

		PostgRESTURL:    getEnv("POSTGREST_URL", ""),
		PostgRESTAPIKey: getEnv("POSTGREST_API_KEY", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "sumstra"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "transaction_events"),

		SessionJWTSecret:   getEnv("SESSION_JWT_SECRET", ""),
		SessionAccessToken: getEnv("SESSION_ACCESS_TOKEN", ""),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validBackends := []string{"memory", "sqlite", "postgrest"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	// The storage layer creates the database directory itself; validation
	// only reports.
	if c.DataBackend == "sqlite" && c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
	}

	if c.DataBackend == "postgrest" {
		if c.PostgRESTURL == "" {
			errors = append(errors, "PostgREST URL is required when using postgrest backend")
		} else if parsedURL, err := url.Parse(c.PostgRESTURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid PostgREST URL '%s': %v", c.PostgRESTURL, err))
		} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid PostgREST URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
		}
		if c.PostgRESTAPIKey == "" {
			errors = append(errors, "PostgREST API key is required when using postgrest backend")
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.SessionAccessToken != "" && c.SessionJWTSecret == "" {
		errors = append(errors, "SESSION_JWT_SECRET is required to verify SESSION_ACCESS_TOKEN")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
