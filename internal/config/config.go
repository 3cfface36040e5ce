package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Reporting ReportingConfig
	Sync      SyncConfig
	Settings  SettingsConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration.
// HistoryCachePath is a separate SQLite file so the history cache can be
// wiped or relocated without touching accounts/positions.
type DatabaseConfig struct {
	Path             string
	HistoryCachePath string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// ReportingConfig holds valuation-specific configuration
type ReportingConfig struct {
	Currency string
}

// SyncConfig holds background market sync configuration
type SyncConfig struct {
	Interval time.Duration
}

// SettingsConfig holds secret-at-rest configuration. FernetKey is the
// base64 key used to encrypt provider tokens in the settings table; when
// empty, secret settings cannot be stored.
type SettingsConfig struct {
	FernetKey string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	syncInterval, err := time.ParseDuration(getEnv("SYNC_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_INTERVAL: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path:             getEnv("DB_PATH", "./data/portfolio.db"),
			HistoryCachePath: getEnv("HISTORY_CACHE_PATH", "./data/history_cache.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: strings.Split(
				getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost"),
				",",
			),
		},
		Reporting: ReportingConfig{
			Currency: strings.ToUpper(getEnv("REPORTING_CURRENCY", "CAD")),
		},
		Sync: SyncConfig{
			Interval: syncInterval,
		},
		Settings: SettingsConfig{
			FernetKey: getEnv("SETTINGS_KEY", ""),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
