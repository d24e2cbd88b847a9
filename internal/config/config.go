package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Security parameters. These are deliberate constants, not derived values.
const (
	// MaxLoginAttempts is the number of failed logins before an address is blocked.
	MaxLoginAttempts = 3
	// LoginBlockDuration is how long a blocked address stays blocked.
	LoginBlockDuration = 2 * time.Minute
	// RateLimitSweepInterval is how often expired blocks are purged.
	RateLimitSweepInterval = 5 * time.Minute

	// StatsRefreshInterval is both the impact stats cache TTL and how often
	// the background job rebuilds it.
	StatsRefreshInterval = 10 * time.Minute

	// ProfileUpdateWindow and ProfileUpdateLimit bound self-service profile edits.
	ProfileUpdateWindow = 5 * time.Minute
	ProfileUpdateLimit  = 5

	// BcryptCost is the work factor for password hashing.
	BcryptCost = 10

	// PasswordMinLength and PasswordMaxLength bound submitted passwords.
	PasswordMinLength = 6
	PasswordMaxLength = 128
	// EmailMaxLength follows RFC 5321.
	EmailMaxLength = 254
	// NameMinLength and NameMaxLength bound display names after sanitization.
	NameMinLength = 2
	NameMaxLength = 50
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort    string
	Env           string
	MySQLDSN      string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	SessionSecret string
	SessionMaxAge time.Duration
	SwaggerHost   string
}

// IsProduction reports whether the server runs with production hardening
// (secure cookies, no internal error details in responses).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load builds Config from the environment with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		Env:           getEnv("APP_ENV", "development"),
		MySQLDSN:      getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/foundation?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisPass:     os.Getenv("REDIS_PASSWORD"),
		SessionSecret: getEnv("SESSION_SECRET", "change-me"),
		SessionMaxAge: getEnvDuration("SESSION_MAX_AGE", 24*time.Hour),
		SwaggerHost:   os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
