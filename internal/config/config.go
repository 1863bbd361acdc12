package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Data backend: postgres, sqlite, or memory
	DataBackend string

	// Postgres. DATABASE_URL wins when set; otherwise a url is composed
	// from the discrete DB_* settings.
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBName      string
	DBUser      string
	DBPassword  string
	DBSSLMode   string

	// SQLite
	SQLiteDBPath string

	// Logging
	LogLevel string
}

func Load() *Config {
	return &Config{
		DataBackend: getEnv("DATA_BACKEND", "postgres"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "monthly_budget"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/budget.db"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// ConnString returns DATABASE_URL when set, otherwise a postgres url
// composed from the discrete DB_* settings.
func (c *Config) ConnString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   c.DBHost + ":" + c.DBPort,
		Path:   "/" + c.DBName,
	}
	q := u.Query()
	q.Set("sslmode", c.DBSSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	validBackends := []string{"postgres", "sqlite", "memory"}
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

	if c.DataBackend == "postgres" {
		if c.DatabaseURL != "" {
			if parsedURL, err := url.Parse(c.DatabaseURL); err != nil {
				errors = append(errors, fmt.Sprintf("invalid database URL '%s': %v", c.DatabaseURL, err))
			} else if parsedURL.Scheme != "postgres" && parsedURL.Scheme != "postgresql" {
				errors = append(errors, fmt.Sprintf("invalid database URL scheme '%s': must be 'postgres' or 'postgresql'", parsedURL.Scheme))
			}
		} else {
			if c.DBHost == "" {
				errors = append(errors, "database host cannot be empty when using postgres backend")
			}
			if c.DBName == "" {
				errors = append(errors, "database name cannot be empty when using postgres backend")
			}
			if c.DBUser == "" {
				errors = append(errors, "database user cannot be empty when using postgres backend")
			}
			if port, err := strconv.Atoi(c.DBPort); err != nil {
				errors = append(errors, fmt.Sprintf("invalid database port '%s': must be a number", c.DBPort))
			} else if port < 1 || port > 65535 {
				errors = append(errors, fmt.Sprintf("invalid database port %d: must be between 1 and 65535", port))
			}
		}
	}

	if c.DataBackend == "sqlite" && c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
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
