package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Scrape    ScrapeConfig
	Matching  MatchingConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StoreConfig holds price-ledger storage configuration
type StoreConfig struct {
	Path string `mapstructure:"path"` // SQLite database file
}

// ScrapeConfig holds storefront scraping configuration
type ScrapeConfig struct {
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Delay     time.Duration `mapstructure:"delay"`     // politeness delay between requests
	MaxItems  int           `mapstructure:"max_items"` // listings inspected per source per search
}

// MatchingConfig holds relevance-gate configuration
type MatchingConfig struct {
	RelevanceThreshold float64  `mapstructure:"relevance_threshold"`
	CriticalPhrases    []string `mapstructure:"critical_phrases"`
	EnableDebugLogging bool     `mapstructure:"enable_debug_logging"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute per client IP
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/dealscout/")

	// Environment variable settings
	v.SetEnvPrefix("DEALSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Store defaults
	v.SetDefault("store.path", "product_prices.db")

	// Scrape defaults
	v.SetDefault("scrape.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	v.SetDefault("scrape.timeout", "10s")
	v.SetDefault("scrape.delay", "1s")
	v.SetDefault("scrape.max_items", 30)

	// Matching defaults: the 0.4 term-hit fraction and the brand/category word
	// lists are tuned heuristics carried over from field use, not derived values
	v.SetDefault("matching.relevance_threshold", 0.4)
	v.SetDefault("matching.critical_phrases", []string{"lenovo legion:lenovo,legion,laptop"})
	v.SetDefault("matching.enable_debug_logging", false)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 60)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Store.Path == "" {
		return fmt.Errorf("store path is required (set DEALSCOUT_STORE_PATH)")
	}

	if config.Scrape.MaxItems <= 0 {
		return fmt.Errorf("scrape max_items must be positive, got: %d", config.Scrape.MaxItems)
	}

	if config.Matching.RelevanceThreshold <= 0 || config.Matching.RelevanceThreshold > 1 {
		return fmt.Errorf("matching relevance_threshold must be in (0, 1], got: %v", config.Matching.RelevanceThreshold)
	}

	return nil
}
