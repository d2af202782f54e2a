package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"socialgraph/infrastructure/swapi"
	pkgerrors "socialgraph/pkg/errors"
	"socialgraph/pkg/utils"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string `yaml:"server_address" validate:"required"`
	Environment   string `yaml:"environment" validate:"oneof=development staging production"`

	// People source
	SourceURL          string  `yaml:"source_url" validate:"required,url"`
	PageCount          int     `yaml:"page_count" validate:"gte=1,lte=100"`
	HTTPTimeoutSeconds int     `yaml:"http_timeout_seconds" validate:"gte=0"`
	BreakerFailRatio   float64 `yaml:"breaker_failure_ratio" validate:"gt=0,lte=1"`
	BreakerOpenSeconds int     `yaml:"breaker_open_seconds" validate:"gte=1"`

	// Link synthesis
	LinkSeed    int64 `yaml:"link_seed" validate:"gte=0"`
	MinLinks    int   `yaml:"min_links" validate:"gte=1"`
	MaxLinks    int   `yaml:"max_links" validate:"gtefield=MinLinks"`
	MaxAttempts int   `yaml:"max_attempts" validate:"gte=1"`

	// Logging
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// Feature flags
	EnableMetrics bool `yaml:"enable_metrics"`
	EnableCORS    bool `yaml:"enable_cors"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		ServerAddress:      ":8080",
		Environment:        "development",
		SourceURL:          swapi.DefaultBaseURL,
		PageCount:          3,
		HTTPTimeoutSeconds: 30,
		BreakerFailRatio:   0.6,
		BreakerOpenSeconds: 60,
		LinkSeed:           0,
		MinLinks:           2,
		MaxLinks:           4,
		MaxAttempts:        1000,
		LogLevel:           "info",
		EnableMetrics:      true,
		EnableCORS:         true,
	}
}

// LoadConfig loads configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and environment variables, in increasing priority.
func LoadConfig() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.ServerAddress = getEnv("SERVER_ADDRESS", cfg.ServerAddress)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.SourceURL = getEnv("SOURCE_URL", cfg.SourceURL)
	cfg.PageCount = getEnvInt("PAGE_COUNT", cfg.PageCount)
	cfg.HTTPTimeoutSeconds = getEnvInt("HTTP_TIMEOUT_SECONDS", cfg.HTTPTimeoutSeconds)
	cfg.BreakerFailRatio = getEnvFloat("BREAKER_FAILURE_RATIO", cfg.BreakerFailRatio)
	cfg.BreakerOpenSeconds = getEnvInt("BREAKER_OPEN_SECONDS", cfg.BreakerOpenSeconds)
	cfg.LinkSeed = getEnvInt64("LINK_SEED", cfg.LinkSeed)
	cfg.MinLinks = getEnvInt("MIN_LINKS", cfg.MinLinks)
	cfg.MaxLinks = getEnvInt("MAX_LINKS", cfg.MaxLinks)
	cfg.MaxAttempts = getEnvInt("MAX_ATTEMPTS", cfg.MaxAttempts)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.EnableMetrics = getEnvBool("ENABLE_METRICS", cfg.EnableMetrics)
	cfg.EnableCORS = getEnvBool("ENABLE_CORS", cfg.EnableCORS)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return pkgerrors.NewValidationError(fmt.Sprintf("read config file %s", path)).WithCause(err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return pkgerrors.NewValidationError(fmt.Sprintf("parse config file %s", path)).WithCause(err)
	}
	return nil
}

// Validate checks the configuration against its constraints
func (c *Config) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return pkgerrors.Wrap(err, "invalid configuration")
	}
	return nil
}

// HTTPTimeout returns the per-request timeout for the people source
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// BreakerOpenTimeout returns how long the people source breaker stays open
func (c *Config) BreakerOpenTimeout() time.Duration {
	return time.Duration(c.BreakerOpenSeconds) * time.Second
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
