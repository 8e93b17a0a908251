package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/AbdulWasayUl/go-country-browser/internal/logger"
)

const (
	defaultPort                = "8080"
	defaultRestCountriesURL    = "https://restcountries.com/v3.1"
	defaultAccuWeatherURL      = "https://dataservice.accuweather.com"
	defaultDBDiagnostics       = "country_browser"
	defaultCollDiagnostics     = "diagnostics"
	defaultCollMigrations      = "migrations_history"
	defaultWorkerCount         = 2
	defaultSearchDebounceMilli = 300
)

// Config holds the application configuration
type Config struct {
	Port                        string
	RestCountriesAPIBaseURL     string
	AccuWeatherAPIBaseURL       string
	AccuWeatherAPIKey           string
	MongoURI                    string
	DBDiagnostics               string
	CollectionDiagnostics       string
	CollectionMigrationsHistory string
	WorkerCount                 int
	DatasetRefresh              time.Duration
	SearchDebounce              time.Duration
	LogLevel                    string
}

// Load reads the .env file (if any) and loads the configuration
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional outside local development
		logger.Debug("No .env file loaded: %v", err)
	}

	workers, err := intEnv("WORKER_COUNT", defaultWorkerCount)
	if err != nil {
		return nil, err
	}
	refreshMinutes, err := intEnv("DATASET_REFRESH_MINUTES", 0)
	if err != nil {
		return nil, err
	}
	debounceMillis, err := intEnv("SEARCH_DEBOUNCE_MS", defaultSearchDebounceMilli)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:                        stringEnv("PORT", defaultPort),
		RestCountriesAPIBaseURL:     strings.TrimRight(stringEnv("RESTCOUNTRIES_API_BASE_URL", defaultRestCountriesURL), "/"),
		AccuWeatherAPIBaseURL:       strings.TrimRight(stringEnv("ACCUWEATHER_API_BASE_URL", defaultAccuWeatherURL), "/"),
		AccuWeatherAPIKey:           os.Getenv("ACCUWEATHER_API_KEY"),
		MongoURI:                    os.Getenv("MONGO_URI"),
		DBDiagnostics:               stringEnv("DB_DIAGNOSTICS_NAME", defaultDBDiagnostics),
		CollectionDiagnostics:       stringEnv("COLLECTION_DIAGNOSTICS", defaultCollDiagnostics),
		CollectionMigrationsHistory: stringEnv("COLLECTION_MIGRATIONS_HISTORY", defaultCollMigrations),
		WorkerCount:                 workers,
		DatasetRefresh:              time.Duration(refreshMinutes) * time.Minute,
		SearchDebounce:              time.Duration(debounceMillis) * time.Millisecond,
		LogLevel:                    strings.ToLower(os.Getenv("LOG_LEVEL")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.RestCountriesAPIBaseURL == "" {
		return fmt.Errorf("RESTCOUNTRIES_API_BASE_URL must not be empty")
	}
	if c.AccuWeatherAPIBaseURL == "" {
		return fmt.Errorf("ACCUWEATHER_API_BASE_URL must not be empty")
	}
	if c.WorkerCount < 1 {
		return fmt.Errorf("WORKER_COUNT must be at least 1, got %d", c.WorkerCount)
	}
	if c.DatasetRefresh < 0 {
		return fmt.Errorf("DATASET_REFRESH_MINUTES must not be negative")
	}
	if c.SearchDebounce <= 0 {
		return fmt.Errorf("SEARCH_DEBOUNCE_MS must be positive")
	}
	return nil
}

// DiagnosticsEnabled reports whether a MongoDB diagnostics store is configured.
func (c *Config) DiagnosticsEnabled() bool {
	return c.MongoURI != ""
}

func stringEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}
