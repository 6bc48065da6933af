package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort        int
	DatabasePath      string // empty selects the in-memory store (dev/test only)
	JWTSecret         string
	TokenTTL          time.Duration
	GatewayBaseURL    string
	GatewayAPIKey     string
	GatewayModel      string
	GatewayTimeout    time.Duration
	GatewayMaxRetries int
	StatsCron         string
	AllowedOrigin     string
}

// Load loads configuration from the environment, reading a .env file first if
// one is present.
func Load() (*Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, err
	}

	ttlHours, err := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "168")) // 7 days
	if err != nil {
		return nil, err
	}

	gwTimeout, err := strconv.Atoi(getEnv("GATEWAY_TIMEOUT_SECONDS", "30"))
	if err != nil {
		return nil, err
	}

	gwRetries, err := strconv.Atoi(getEnv("GATEWAY_MAX_RETRIES", "2"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:        port,
		DatabasePath:      getEnv("DATABASE_PATH", "./careerpath.db"),
		JWTSecret:         getEnv("JWT_SECRET", "dev-secret"),
		TokenTTL:          time.Duration(ttlHours) * time.Hour,
		GatewayBaseURL:    getEnv("GATEWAY_BASE_URL", "https://generativelanguage.googleapis.com"),
		GatewayAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GatewayModel:      getEnv("GATEWAY_MODEL", "gemini-2.5-flash"),
		GatewayTimeout:    time.Duration(gwTimeout) * time.Second,
		GatewayMaxRetries: gwRetries,
		StatsCron:         getEnv("STATS_CRON", "*/5 * * * *"),
		AllowedOrigin:     getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
