package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// DefaultBaseURL is the public CoinGecko endpoint used when neither the
// config file nor the environment overrides it.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `env:", prefix=SERVER_"`
	CoinGecko CoinGeckoConfig `env:", prefix=COINGECKO_"`
	Cache     CacheConfig     `env:", prefix=CACHE_"`
	Redis     RedisConfig     `env:", prefix=REDIS_"`
	Chat      ChatConfig      `env:", prefix=CHAT_"`
	Security  SecurityConfig  `env:", prefix=SECURITY_"`
	Logging   LoggingConfig   `env:", prefix=LOG_"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `env:"HOST, default=0.0.0.0"`
	Port         int           `env:"PORT, default=8080"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT, default=30s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT, default=30s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT, default=120s"`
}

// CoinGeckoConfig holds upstream API configuration
type CoinGeckoConfig struct {
	BaseURL         string        `env:"BASE_URL, default=https://api.coingecko.com/api/v3"`
	APIKey          string        `env:"API_KEY"`
	Timeout         time.Duration `env:"TIMEOUT, default=15s"`
	MaxRetries      int           `env:"MAX_RETRIES, default=3"`
	InitialBackoff  time.Duration `env:"INITIAL_BACKOFF, default=1s"`
	MaxBackoff      time.Duration `env:"MAX_BACKOFF, default=30s"`
	BackoffFactor   float64       `env:"BACKOFF_FACTOR, default=2.0"`
	RateLimitPerMin int           `env:"RATE_LIMIT_PER_MIN, default=30"`
}

// CacheConfig holds the live-snapshot cache configuration
type CacheConfig struct {
	// Backend selects the snapshot store: "memory" or "redis".
	Backend string        `env:"BACKEND, default=memory"`
	TTL     time.Duration `env:"TTL, default=60s"`
}

// RedisConfig holds Redis configuration (only used when Cache.Backend=redis)
type RedisConfig struct {
	Host         string        `env:"HOST, default=localhost"`
	Port         int           `env:"PORT, default=6379"`
	Password     string        `env:"PASSWORD"`
	DB           int           `env:"DB, default=0"`
	PoolSize     int           `env:"POOL_SIZE, default=10"`
	DialTimeout  time.Duration `env:"DIAL_TIMEOUT, default=5s"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT, default=3s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT, default=3s"`
}

// ChatConfig holds the Gemini chat collaborator configuration. An empty API
// key disables the chat endpoint without affecting the rest of the dashboard.
type ChatConfig struct {
	APIKey  string        `env:"API_KEY"`
	Model   string        `env:"MODEL, default=gemini-2.5-flash"`
	BaseURL string        `env:"BASE_URL, default=https://generativelanguage.googleapis.com"`
	Timeout time.Duration `env:"TIMEOUT, default=30s"`
}

// SecurityConfig holds CORS configuration
type SecurityConfig struct {
	CORSEnabled bool     `env:"CORS_ENABLED, default=true"`
	CORSOrigins []string `env:"CORS_ORIGINS, default=*"`
	CORSMethods []string `env:"CORS_METHODS, default=GET,POST,OPTIONS"`
	CORSHeaders []string `env:"CORS_HEADERS, default=*"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `env:"LEVEL, default=info"`
	Format string `env:"FORMAT, default=text"`
	Output string `env:"OUTPUT, default=stdout"`
}

// Load loads configuration from environment variables using go-envconfig
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.CoinGecko.BaseURL == "" {
		return fmt.Errorf("CoinGecko base URL is required")
	}

	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("invalid cache backend: %q (must be memory or redis)", c.Cache.Backend)
	}

	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got %s", c.Cache.TTL)
	}

	return nil
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// GetServerAddr returns the HTTP server address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
