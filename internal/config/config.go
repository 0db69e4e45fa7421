package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Token    TokenConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Profile     string // direct, cloud
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type TokenConfig struct {
	Secret      string
	ExpiryHours int
}

// Load reads config from environment variables. The direct profile first
// loads a local .env file; the cloud profile takes the process environment
// as-is, the way a managed platform injects it.
func Load(profile string) (*Config, error) {
	if profile == "" {
		profile = "direct"
	}
	if profile == "direct" {
		// missing .env is fine, defaults below cover local runs
		_ = godotenv.Load()
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Contacts API"),
			Environment: getEnv("APP_ENV", "development"),
			Profile:     profile,
			Port:        getEnv("APP_PORT", "9001"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "contacts"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Token: TokenConfig{
			Secret:      getEnv("TOKEN_SECRET", "your-secret-key-change-in-production"),
			ExpiryHours: getEnvInt("TOKEN_EXPIRY_HOURS", 24),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate rejects configurations unfit for the declared environment.
func (c *Config) Validate() error {
	if c.App.Profile != "direct" && c.App.Profile != "cloud" {
		return fmt.Errorf("unknown profile %q, want direct or cloud", c.App.Profile)
	}
	if c.App.Environment == "production" {
		if c.Token.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("TOKEN_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
