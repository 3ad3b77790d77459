package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Supabase SupabaseConfig `mapstructure:"supabase"`
	Engine   EngineConfig   `mapstructure:"engine"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

// StorageConfig selects the persistence backend. The hosted deployment
// runs against Supabase; "sqlite" keeps everything in a local file for
// self-hosted and offline setups.
type StorageConfig struct {
	Driver     string `mapstructure:"driver"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// SupabaseConfig holds Supabase-specific configuration
type SupabaseConfig struct {
	URL        string `mapstructure:"url"`
	ServiceKey string `mapstructure:"service_key"`
}

// EngineConfig tunes the analytics and recommendation engine.
type EngineConfig struct {
	WindowDays            int `mapstructure:"window_days"`
	RecommendationTTLDays int `mapstructure:"recommendation_ttl_days"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("storage.driver", "supabase")
	v.SetDefault("storage.sqlite_path", "./data/psysom.db")
	v.SetDefault("engine.window_days", 30)
	v.SetDefault("engine.recommendation_ttl_days", 7)

	// Read from environment variables
	v.SetEnvPrefix("PSYSOM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Also bind to non-prefixed environment variables for deployment targets
	// that inject these directly
	v.BindEnv("server.port", "PORT")
	v.BindEnv("supabase.url", "SUPABASE_URL")
	v.BindEnv("supabase.service_key", "SUPABASE_SERVICE_KEY")

	// Read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// It's okay if config file doesn't exist
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks that all required configuration values are present
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "supabase":
		if c.Supabase.URL == "" {
			return fmt.Errorf("SUPABASE_URL is required")
		}
		if c.Supabase.ServiceKey == "" {
			return fmt.Errorf("SUPABASE_SERVICE_KEY is required")
		}
	case "sqlite":
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("PSYSOM_STORAGE_SQLITE_PATH is required")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.Engine.WindowDays <= 0 {
		return fmt.Errorf("engine window_days must be positive")
	}
	if c.Engine.RecommendationTTLDays <= 0 {
		return fmt.Errorf("engine recommendation_ttl_days must be positive")
	}
	return nil
}
