package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envFile is the optional dotenv file read from the working directory
const envFile = ".env"

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	MealDB   MealDBConfig
	Cache    CacheConfig
	Ranking  RankingConfig
	Matching MatchingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StorageConfig holds the embedded store configuration
type StorageConfig struct {
	Dir        string        `mapstructure:"dir"`
	InMemory   bool          `mapstructure:"in_memory"`
	GCInterval time.Duration `mapstructure:"gc_interval"`
}

// MealDBConfig holds recipe catalog configuration
type MealDBConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// CacheConfig holds recipe cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RankingConfig holds pacing for the recipe suggestion fan-out
type RankingConfig struct {
	SearchPause   time.Duration `mapstructure:"search_pause"`
	DetailPause   time.Duration `mapstructure:"detail_pause"`
	MaxCandidates int           `mapstructure:"max_candidates"`
}

// MatchingConfig holds matching configuration
type MatchingConfig struct {
	EnableDebugLogging bool `mapstructure:"enable_debug_logging"`
}

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading %s file: %w", envFile, err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pantrymatch/")

	// Environment variable settings: server.port -> PANTRYMATCH_SERVER_PORT
	v.SetEnvPrefix("PANTRYMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads envFile if present. Variables already set in the
// environment win over the file.
func loadEnvFile() error {
	if _, err := os.Stat(envFile); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(envFile)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Storage defaults
	v.SetDefault("storage.dir", "./data")
	v.SetDefault("storage.in_memory", false)
	v.SetDefault("storage.gc_interval", "10m")

	// Catalog defaults ("1" is the public test key)
	v.SetDefault("mealdb.api_key", "1")
	v.SetDefault("mealdb.base_url", "https://www.themealdb.com/api/json/v1")

	// Cache defaults
	v.SetDefault("cache.ttl", "24h")

	// Ranking defaults
	v.SetDefault("ranking.search_pause", "150ms")
	v.SetDefault("ranking.detail_pause", "100ms")
	v.SetDefault("ranking.max_candidates", 50)

	// Matching defaults
	v.SetDefault("matching.enable_debug_logging", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.MealDB.BaseURL == "" {
		return fmt.Errorf("recipe catalog base URL is required (set PANTRYMATCH_MEALDB_BASE_URL)")
	}

	if !config.Storage.InMemory && config.Storage.Dir == "" {
		return fmt.Errorf("storage directory is required unless storage is in memory")
	}

	if config.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got: %s", config.Cache.TTL)
	}

	if config.Ranking.MaxCandidates <= 0 {
		return fmt.Errorf("ranking max candidates must be positive, got: %d", config.Ranking.MaxCandidates)
	}

	if config.Ranking.SearchPause < 0 || config.Ranking.DetailPause < 0 {
		return fmt.Errorf("ranking pauses must not be negative")
	}

	return nil
}
