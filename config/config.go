package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBDriver   string // "postgres" or "sqlite"
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration (optional; rate limiting is skipped when empty)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT configuration
	JWTSecret string

	// Text-generation service configuration
	OpenAIAPIKey    string
	OpenAIAPIURL    string
	ModelID         string
	MaxOutputTokens int

	// Daily usage ceilings for the generation client
	MaxRequestsPerDay int
	MaxTokensPerDay   int

	// Recipe dataset
	RecipesCSVPath string

	// Per-user rate limit on the recommend endpoint
	RateLimitWindow time.Duration
	RateLimitMax    int

	// Origins allowed to call the API from a browser
	CORSOrigins []string

	LogLevel string
}

// LoadConfig creates a new Config instance from environment variables.
// A .env file in the working directory is loaded first when present.
func LoadConfig() (*Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "recipebox"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "recipebox.db"),

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		JWTSecret: os.Getenv("JWT_SECRET"),

		OpenAIAPIURL:    getEnv("OPENAI_API_URL", "https://api.openai.com/v1/chat/completions"),
		ModelID:         getEnv("MODEL_ID", "gpt-4o-mini"),
		MaxOutputTokens: getEnvInt("MAX_OUTPUT_TOKENS", 1000),

		MaxRequestsPerDay: getEnvInt("MAX_REQUESTS_PER_DAY", 50),
		MaxTokensPerDay:   getEnvInt("MAX_TOKENS_PER_DAY", 20000),

		RecipesCSVPath: getEnv("RECIPES_CSV_PATH", "./dataset/recipes.csv"),

		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", time.Hour),
		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 20),

		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"http://localhost:5173"}),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	apiKey, err := loadAPIKey()
	if err != nil {
		return nil, err
	}
	cfg.OpenAIAPIKey = apiKey

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadAPIKey reads the API credential from OPENAI_API_KEY, or from the file
// named by OPENAI_API_KEY_FILE (Docker secrets style).
func loadAPIKey() (string, error) {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key, nil
	}

	keyFile := os.Getenv("OPENAI_API_KEY_FILE")
	if keyFile == "" {
		return "", fmt.Errorf("OPENAI_API_KEY or OPENAI_API_KEY_FILE must be set")
	}

	data, err := os.ReadFile(keyFile)
	if err != nil {
		return "", fmt.Errorf("failed to read API key file: %w", err)
	}

	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("API key file is empty")
	}
	return key, nil
}

// ValidateConfig checks that required settings are present and sane.
func ValidateConfig(cfg *Config) error {
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.DBDriver != "postgres" && cfg.DBDriver != "sqlite" {
		return fmt.Errorf("unsupported DB_DRIVER: %s", cfg.DBDriver)
	}
	if cfg.MaxOutputTokens <= 0 {
		return fmt.Errorf("MAX_OUTPUT_TOKENS must be positive")
	}
	if cfg.MaxRequestsPerDay <= 0 || cfg.MaxTokensPerDay <= 0 {
		return fmt.Errorf("daily usage ceilings must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
