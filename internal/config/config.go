package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Postgres Config
	PostgresMaxConns int `env:"POSTGRES_MAX_CONNS" envDefault:"10"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Matching Config
	RecencyWindow      time.Duration `env:"MATCH_RECENCY_WINDOW" envDefault:"168h"`
	ExperienceMaxGap   int           `env:"MATCH_EXPERIENCE_MAX_GAP" envDefault:"1"`
	CandidateScanLimit int           `env:"MATCH_CANDIDATE_SCAN_LIMIT" envDefault:"500"`
	LocationCacheTTL   time.Duration `env:"LOCATION_CACHE_TTL" envDefault:"5m"`

	// Geocoder Config
	GeocoderBaseURL string        `env:"GEOCODER_BASE_URL" envDefault:"https://nominatim.openstreetmap.org"`
	GeocoderTimeout time.Duration `env:"GEOCODER_TIMEOUT" envDefault:"5s"`
	GeocodeCacheTTL time.Duration `env:"GEOCODE_CACHE_TTL" envDefault:"24h"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// Stats Config
	StatsTimeWindowMinutes int `env:"STATS_TIME_WINDOW_MINUTES" envDefault:"60"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		PostgresMaxConns:       getEnvAsInt("POSTGRES_MAX_CONNS", 10),
		RedisAddr:              getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:              os.Getenv("REDIS_PASSWORD"),
		RedisDB:                getEnvAsInt("REDIS_DB", 0),
		RecencyWindow:          getEnvAsDuration("MATCH_RECENCY_WINDOW", 168*time.Hour),
		ExperienceMaxGap:       getEnvAsInt("MATCH_EXPERIENCE_MAX_GAP", 1),
		CandidateScanLimit:     getEnvAsInt("MATCH_CANDIDATE_SCAN_LIMIT", 500),
		LocationCacheTTL:       getEnvAsDuration("LOCATION_CACHE_TTL", 5*time.Minute),
		GeocoderBaseURL:        getEnv("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocoderTimeout:        getEnvAsDuration("GEOCODER_TIMEOUT", 5*time.Second),
		GeocodeCacheTTL:        getEnvAsDuration("GEOCODE_CACHE_TTL", 24*time.Hour),
		WebhookURL:             os.Getenv("WEBHOOK_URL"),
		WebhookSecret:          os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:         getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:      getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:       getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		StatsTimeWindowMinutes: getEnvAsInt("STATS_TIME_WINDOW_MINUTES", 60),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
