package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. A .env file in
// the working directory is loaded first when present; real environment
// variables win over it (godotenv does not override existing vars).
//
// Recognized variables:
//
//	ADDRESS               HTTP bind address (e.g., ":3000")
//	DATABASE_DSN          PostgreSQL DSN
//	JWT_SECRET            HMAC secret for session tokens
//	SESSION_TTL_MINUTES   session token validity, minutes
//	GIN_MODE              gin run mode
//	CORS_ALLOWED_ORIGINS  comma-separated allowed origins
//	STATIC_DIR            front-end directory to serve
func parseEnv(config *Config) {
	_ = godotenv.Load()

	config.EndpointAddr = getEnv("ADDRESS", config.EndpointAddr)
	config.DatabaseDSN = getEnv("DATABASE_DSN", config.DatabaseDSN)
	config.SecretKey = getEnv("JWT_SECRET", config.SecretKey)
	config.GinMode = getEnv("GIN_MODE", config.GinMode)
	config.CORSAllowedOrigins = getEnv("CORS_ALLOWED_ORIGINS", config.CORSAllowedOrigins)
	config.StaticDir = getEnv("STATIC_DIR", config.StaticDir)

	if v := os.Getenv("SESSION_TTL_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil {
			config.SessionTokenValidityDuration = time.Duration(minutes) * time.Minute
		}
	}
}

// getEnv returns the environment value for key, or fallback when unset/empty.
func getEnv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
