package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DatabaseURL string
	RedisURL    string

	JWTSecret    string
	TokenTTL     time.Duration
	CookieSecure bool

	LoginMaxAttempts int64
	LoginWindow      time.Duration
	CommentCooldown  time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		JWTSecret:    getEnv("JWT_SECRET", "change-me"),
		CookieSecure: getEnv("COOKIE_SECURE", "false") == "true",
	}

	var err error
	// Session credentials live for a week unless overridden.
	cfg.TokenTTL, err = time.ParseDuration(getEnv("TOKEN_TTL", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	cfg.LoginWindow, err = time.ParseDuration(getEnv("LOGIN_WINDOW", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_WINDOW: %w", err)
	}
	cfg.CommentCooldown, err = time.ParseDuration(getEnv("COMMENT_COOLDOWN", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid COMMENT_COOLDOWN: %w", err)
	}
	cfg.LoginMaxAttempts, err = strconv.ParseInt(getEnv("LOGIN_MAX_ATTEMPTS", "10"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_MAX_ATTEMPTS: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
