package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/aluiggi96/Doc-MYPE/internal/logger"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type Config struct {
	// HTTP
	ServerPort     string
	AllowedOrigins string

	// Persistence
	StoreDriver    string
	StoreDir       string
	StoreNamespace string
	DatabaseURL    string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	// AI insights. An empty key is valid: insights report the service as unavailable.
	AIAPIKey  string
	AIBaseURL string
	AIModel   string
	AITimeout time.Duration

	// Logging
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	timeout, err := time.ParseDuration(getEnv("AI_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid AI_TIMEOUT: %w", err)
	}

	cfg := &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", ""),
		StoreDriver:    strings.ToLower(getEnv("STORE_DRIVER", DriverFile)),
		StoreDir:       getEnv("STORE_DIR", "./data"),
		StoreNamespace: getEnv("STORE_NAMESPACE", "docmype"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        redisDB,
		AIAPIKey:       getEnv("AI_API_KEY", os.Getenv("OPENAI_API_KEY")),
		AIBaseURL:      getEnv("AI_BASE_URL", ""),
		AIModel:        getEnv("AI_MODEL", "gpt-4o-mini"),
		AITimeout:      timeout,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:  getEnv("LOG_TIME_FORMAT", time.RFC3339),
		LogOutput:      getEnv("LOG_OUTPUT", "stdout"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case DriverFile:
		if c.StoreDir == "" {
			return fmt.Errorf("STORE_DIR is required for the file store")
		}
	case DriverMemory:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	case DriverRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want file, memory, postgres or redis)", c.StoreDriver)
	}
	if c.StoreNamespace == "" {
		return fmt.Errorf("STORE_NAMESPACE must not be empty")
	}
	if c.AITimeout <= 0 {
		return fmt.Errorf("AI_TIMEOUT must be positive")
	}
	return nil
}

// AIEnabled reports whether a credential for the insight service is configured.
func (c *Config) AIEnabled() bool {
	return c.AIAPIKey != ""
}

// LoggerConfig returns the logging section of the configuration.
func (c *Config) LoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
