package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP Server
	Port string

	// Database
	SQLiteDBPath string

	// Seeding
	SeedDataDir string

	// Dashboard: records per section
	DashboardLimit int
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8000"),
		SQLiteDBPath:   getEnv("SQLITE_DB_PATH", "./data/next-stock.db"),
		SeedDataDir:    getEnv("SEED_DATA_DIR", "./data/seed"),
		DashboardLimit: getEnvInt("DASHBOARD_LIMIT", 5),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.SQLiteDBPath == "" {
		errs = append(errs, "SQLite database path cannot be empty")
	} else {
		dir := filepath.Dir(c.SQLiteDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errs = append(errs, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.DashboardLimit < 1 {
		errs = append(errs, fmt.Sprintf("invalid dashboard limit %d: must be at least 1", c.DashboardLimit))
	} else if c.DashboardLimit > 100 {
		errs = append(errs, fmt.Sprintf("invalid dashboard limit %d: must be at most 100", c.DashboardLimit))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
