package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// defaultJWTSecret signs kitchen tokens when JWT_SECRET is not set
const defaultJWTSecret = "change-me-in-production-please"

var ErrDefaultJWTSecret = errors.New("JWT_SECRET must be set when kitchen authentication is enabled in production")

type Config struct {
	// Server
	Port           string
	AllowedOrigins string

	// Database (empty runs with in-memory state only)
	DatabaseURL string

	// Environment
	Environment string

	// Attendance used before anything is committed
	DefaultMonday  int
	DefaultTuesday int

	// Supermarket price feed
	FeedBaseURL       string
	FeedLive          bool
	FeedTimeout       time.Duration
	FeedRatePerMinute int

	// Kitchen tokens
	JWTSecret             string
	JWTExpiry             time.Duration
	KitchenPassphraseHash string

	// S3/Garage plan publishing
	S3Enabled   bool
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3UseSSL    bool
	S3Region    string
	S3PlanKey   string

	// Stock-take sheet scanning
	OCREnabled bool
}

func Load() *Config {
	return &Config{
		Port:                  getEnv("PORT", "8080"),
		AllowedOrigins:        getEnv("ALLOWED_ORIGINS", "*"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		Environment:           getEnv("ENVIRONMENT", "development"),
		DefaultMonday:         getIntEnv("DEFAULT_MONDAY", 25),
		DefaultTuesday:        getIntEnv("DEFAULT_TUESDAY", 30),
		FeedBaseURL:           getEnv("FEED_BASE_URL", "https://breakfast-club.onrender.com"),
		FeedLive:              getBoolEnv("FEED_LIVE", true),
		FeedTimeout:           getDurationEnv("FEED_TIMEOUT_SECONDS", 10) * time.Second,
		FeedRatePerMinute:     getIntEnv("FEED_RATE_PER_MINUTE", 30),
		JWTSecret:             getEnv("JWT_SECRET", defaultJWTSecret),
		JWTExpiry:             getDurationEnv("JWT_EXPIRY_HOURS", 12) * time.Hour,
		KitchenPassphraseHash: getEnv("KITCHEN_PASSPHRASE_HASH", ""),
		S3Enabled:             getBoolEnv("S3_ENABLED", false),
		S3Endpoint:            getEnv("S3_ENDPOINT", "localhost:3900"),
		S3AccessKey:           getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:           getEnv("S3_SECRET_KEY", ""),
		S3Bucket:              getEnv("S3_BUCKET", "breakfast-plans"),
		S3UseSSL:              getBoolEnv("S3_USE_SSL", false),
		S3Region:              getEnv("S3_REGION", "garage"),
		S3PlanKey:             getEnv("S3_PLAN_KEY", "plans/current.json"),
		OCREnabled:            getBoolEnv("OCR_ENABLED", false),
	}
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

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return time.Duration(intVal)
		}
	}
	return time.Duration(defaultValue)
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsesDefaultJWTSecret reports whether kitchen tokens would be signed with
// the built-in secret
func (c *Config) UsesDefaultJWTSecret() bool {
	return c.AuthEnabled() && (c.JWTSecret == "" || c.JWTSecret == defaultJWTSecret)
}

// Validate rejects settings that are only acceptable outside production
func (c *Config) Validate() error {
	if c.IsProduction() && c.UsesDefaultJWTSecret() {
		return ErrDefaultJWTSecret
	}
	return nil
}

// AuthEnabled reports whether write endpoints require a kitchen token
func (c *Config) AuthEnabled() bool {
	return c.KitchenPassphraseHash != ""
}

// StorageConfigured reports whether plan publishing has everything it needs
func (c *Config) StorageConfigured() bool {
	return c.S3Enabled && c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}
