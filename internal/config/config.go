package config

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"txn-search/internal/middleware"
	"txn-search/internal/searchengine"
)

type Config struct {
	Server    ServerConfig
	Search    SearchConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port             string
	Host             string
	Environment      string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	ShutdownTimeout  time.Duration
	CORSAllowOrigins []string
}

// SearchConfig locates the transaction index and its credentials
type SearchConfig struct {
	URL                      string
	APIKey                   string
	Index                    string
	Timeout                  time.Duration
	BreakerMaxFailures       int
	BreakerResetTimeout      time.Duration
	BreakerHalfOpenSuccesses int
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type LogConfig struct {
	Level slog.Level
}

// Load reads the configuration from the environment.
// A missing engine URL or API key is an error in production and a warning elsewhere.
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "5002"),
			Host:            getEnv("SERVER_HOST", "localhost"),
			Environment:     getEnv("APP_ENV", "development"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Search: SearchConfig{
			URL:                      getEnv("ELASTICSEARCH_URL", ""),
			APIKey:                   getEnv("ELASTICSEARCH_API_KEY", ""),
			Index:                    getEnv("ELASTICSEARCH_INDEX", searchengine.DefaultIndex),
			Timeout:                  getDurationEnv("ELASTICSEARCH_TIMEOUT", searchengine.DefaultTimeout),
			BreakerMaxFailures:       getIntEnv("SEARCH_BREAKER_MAX_FAILURES", 5),
			BreakerResetTimeout:      getDurationEnv("SEARCH_BREAKER_RESET_TIMEOUT", 30*time.Second),
			BreakerHalfOpenSuccesses: getIntEnv("SEARCH_BREAKER_HALF_OPEN_SUCCESSES", 3),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getFloatEnv("RATE_LIMIT_PER_SECOND", 20),
			Burst:             getIntEnv("RATE_LIMIT_BURST", 40),
		},
		Log: LogConfig{
			Level: getLogLevelEnv("LOG_LEVEL", slog.LevelInfo),
		},
	}

	config.Server.CORSAllowOrigins = config.loadCORSAllowOrigins()

	if err := config.checkSearchCredentials(); err != nil {
		return nil, err
	}

	return config, nil
}

// Address returns host:port for the HTTP listener
func (c *ServerConfig) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// EngineConfig returns the search engine client configuration
func (c *SearchConfig) EngineConfig() searchengine.Config {
	return searchengine.Config{
		BaseURL: c.URL,
		APIKey:  c.APIKey,
		Index:   c.Index,
		Timeout: c.Timeout,
		Breaker: searchengine.CircuitBreakerConfig{
			MaxFailures:     c.BreakerMaxFailures,
			ResetTimeout:    c.BreakerResetTimeout,
			HalfOpenMaxSucc: c.BreakerHalfOpenSuccesses,
		},
	}
}

// LimiterConfig returns the per-client rate limiter configuration
func (c *RateLimitConfig) LimiterConfig() middleware.RateLimiterConfig {
	cfg := middleware.DefaultRateLimiterConfig()
	cfg.RequestsPerSecond = c.RequestsPerSecond
	cfg.Burst = c.Burst
	return cfg
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) IsTesting() bool {
	return c.Server.Environment == "testing"
}

func (c *Config) checkSearchCredentials() error {
	var missing []string
	if c.Search.URL == "" {
		missing = append(missing, "ELASTICSEARCH_URL")
	}
	if c.Search.APIKey == "" {
		missing = append(missing, "ELASTICSEARCH_API_KEY")
	}
	if len(missing) == 0 {
		return nil
	}

	if c.IsProduction() {
		return fmt.Errorf("%s must be set in production environments", strings.Join(missing, " and "))
	}

	slog.Warn("search engine settings missing, searches will fail until they are set",
		"missing", missing,
		"environment", c.Server.Environment,
	)
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getLogLevelEnv(key string, defaultValue slog.Level) slog.Level {
	if value := os.Getenv(key); value != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(value)); err == nil {
			return level
		}
	}
	return defaultValue
}

// loadCORSAllowOrigins retrieves CORS allowed origins from environment or returns default
func (c *Config) loadCORSAllowOrigins() []string {
	corsOrigins := os.Getenv("CORS_ALLOW_ORIGINS")

	if corsOrigins == "" {
		if c.IsProduction() {
			slog.Warn("CORS_ALLOW_ORIGINS not set in production environment, defaulting to '*' (all origins)")
		}
		return []string{"*"}
	}

	var origins []string
	for _, origin := range strings.Split(corsOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
