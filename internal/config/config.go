package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv string
	Port   string

	// DatabaseURL is a postgres:// DSN, or a file path for the embedded
	// sqlite fallback used in development.
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	MollieAPIKey  string
	MollieBaseURL string

	// SiteURL is the customer-facing frontend; APIBaseURL is this service's
	// public address, used to build the webhook URL.
	SiteURL    string
	APIBaseURL string

	EmailServiceURL string
	EmailSecret     string

	RedisAddr     string
	RedisPassword string

	RateLimitRequests int
	RateLimitWindow   time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       getEnv("DATABASE_URL", "salonbook.db"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTTTL:            getDuration("JWT_TTL", 24*time.Hour),
		MollieAPIKey:      os.Getenv("MOLLIE_API_KEY"),
		MollieBaseURL:     os.Getenv("MOLLIE_BASE_URL"),
		SiteURL:           getEnv("SITE_URL", "http://localhost:5173"),
		APIBaseURL:        getEnv("API_BASE_URL", "http://localhost:8080"),
		EmailServiceURL:   os.Getenv("EMAIL_SERVICE_URL"),
		EmailSecret:       os.Getenv("EMAIL_SECRET"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RateLimitRequests: getInt("RATE_LIMIT_REQUESTS", 10),
		RateLimitWindow:   getDuration("RATE_LIMIT_WINDOW", time.Hour),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func (c *Config) WebhookURL() string {
	return c.APIBaseURL + "/api/payments/webhook"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
