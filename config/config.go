package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL         string
	JWTSecret           string
	JWTExpiration       time.Duration
	ServerPort          string
	RedisAddr           string
	RedisPassword       string
	LogLevel            string
	LogFormat           string
	LeaderboardGrouping string
	FillDailyGaps       bool
	BaseSalary          int
	SeedDemoData        bool
	DefaultPassword     string
}

func Load() *Config {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	return &Config{
		DatabaseURL:         getEnv("DATABASE_URL", "postgresql://postgres@localhost:5432/callcenter"),
		JWTSecret:           getEnv("JWT_SECRET", "your-super-secret-key-change-in-production"),
		JWTExpiration:       getEnvDuration("JWT_EXPIRATION", 30*24*time.Hour),
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		RedisAddr:           getEnv("REDIS_ADDR", ""),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "json"),
		LeaderboardGrouping: strings.ToLower(getEnv("LEADERBOARD_GROUPING", "name")),
		FillDailyGaps:       getEnvBool("FILL_DAILY_GAPS", false),
		BaseSalary:          getEnvInt("BASE_SALARY", 30000),
		SeedDemoData:        getEnvBool("SEED_DEMO_DATA", true),
		DefaultPassword:     getEnv("DEFAULT_PASSWORD", "8004"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
