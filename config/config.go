package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"volleybank/database"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// HTTP configuration
	ListenAddr string

	// Database configuration
	DatabaseURL      string
	DatabaseName     string
	DatabaseMaxConns int32
	DatabaseMinConns int32

	// Club configuration
	Teams []string // Valid team labels a match can be recorded against

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// PoolSettings returns the connection pool bounds for this deployment
func (c *Config) PoolSettings() database.PoolSettings {
	return database.PoolSettings{
		MaxConns: c.DatabaseMaxConns,
		MinConns: c.DatabaseMinConns,
	}
}

// IsKnownTeam reports whether the given label is one of the configured teams
func (c *Config) IsKnownTeam(team string) bool {
	for _, t := range c.Teams {
		if t == team {
			return true
		}
	}
	return false
}

// load loads configuration from environment variables
func load() (*Config, error) {
	// .env is optional; real environment variables win when both are present
	_ = godotenv.Load()

	config := &Config{
		ListenAddr:       getEnvWithDefault("LISTEN_ADDR", ":8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		DatabaseName:     os.Getenv("DATABASE_NAME"),
		DatabaseMaxConns: getEnvInt32("DATABASE_MAX_CONNS", 10),
		DatabaseMinConns: getEnvInt32("DATABASE_MIN_CONNS", 2),
		Environment:      os.Getenv("ENVIRONMENT"),
	}

	// Parse team labels
	teams := getEnvWithDefault("CLUB_TEAMS", "Team A,Team B,Team C")
	for _, team := range strings.Split(teams, ",") {
		team = strings.TrimSpace(team)
		if team != "" {
			config.Teams = append(config.Teams, team)
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.DatabaseName != "" && strings.TrimSpace(config.DatabaseName) == "" {
			return nil, fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
		if len(config.Teams) == 0 {
			return nil, fmt.Errorf("CLUB_TEAMS must list at least one team")
		}
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt32 parses the environment variable as an int32, falling back to
// the default on absence or a bad value
func getEnvInt32(key string, defaultValue int32) int32 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 32)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return int32(parsed)
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment: "test",
		ListenAddr:  ":0",
		Teams:       []string{"Team A", "Team B", "Team C"},
	}
}
