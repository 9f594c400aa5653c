package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// RateLimitConfig bounds how often one client may hit the auth endpoints.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type Config struct {
	// Server
	Port     string
	Env      string // "development", "production"
	LogLevel string

	// Database
	DatabaseURL      string
	DBMaxOpenConns   int
	DBConnectRetries int
	AutoMigrate      bool
	SeedDefaults     bool

	// Auth
	JWTSecret string
	TokenTTL  time.Duration
	AuthLimit RateLimitConfig

	// CORS
	AllowedOrigins []string

	// Savings recommendations
	RecommendationTTL    time.Duration
	PurgeEnabled         bool
	PurgeSchedule        string        // Cron expression, minute resolution
	PurgeTimeout         time.Duration // Timeout for one purge run
	ReadinessWaitTimeout time.Duration // How long a request waits for start-up to finish
}

// Load reads configuration from the environment. A .env file in the working
// directory (or the file named by ENV_FILE) is loaded first; variables already
// set in the environment win.
func Load() *Config {
	_ = godotenv.Load(getEnv("ENV_FILE", ".env"))

	return &Config{
		// Server
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Database
		DatabaseURL:      getEnv("DATABASE_URL", "postgres://localhost:5432/fintrack?sslmode=disable"),
		DBMaxOpenConns:   getIntEnv("DB_MAX_OPEN_CONNS", 20),
		DBConnectRetries: getIntEnv("DB_CONNECT_RETRIES", 10),
		AutoMigrate:      getBoolEnv("AUTO_MIGRATE", true),
		SeedDefaults:     getBoolEnv("SEED_DEFAULTS", true),

		// Auth
		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		TokenTTL:  getDurationEnv("TOKEN_TTL", 24*time.Hour),
		AuthLimit: RateLimitConfig{
			RequestsPerSecond: getFloatEnv("AUTH_RATE_LIMIT_RPS", 1),
			Burst:             getIntEnv("AUTH_RATE_LIMIT_BURST", 5),
		},

		// CORS
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"), ","),

		// Savings recommendations
		RecommendationTTL:    getDurationEnv("RECOMMENDATION_TTL", 30*24*time.Hour),
		PurgeEnabled:         getBoolEnv("RECOMMENDATION_PURGE_ENABLED", true),
		PurgeSchedule:        getEnv("RECOMMENDATION_PURGE_SCHEDULE", "0 3 * * *"), // Default: daily at 03:00
		PurgeTimeout:         getDurationEnv("RECOMMENDATION_PURGE_TIMEOUT", time.Minute),
		ReadinessWaitTimeout: getDurationEnv("READINESS_TIMEOUT", 30*time.Second),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
