package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
	SessionStoreFile   = "file"

	defaultMaxUploadBytes = 10 << 20
)

type Config struct {
	APIURL         string
	APIToken       string
	RedisURL       string
	SessionStore   string
	SessionDir     string
	SessionTTL     time.Duration
	HTTPTimeout    time.Duration
	Port           string
	Environment    string
	MaxUploadBytes int64
	Events         EventConfig
}

// LoadConfig reads .env when present and then the process environment.
// Extra files are loaded in order after .env; variables already set win.
func LoadConfig(files ...string) (*Config, error) {
	for _, f := range append([]string{".env"}, files...) {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	sessionTTL, err := getEnvDuration("SESSION_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	httpTimeout, err := getEnvDuration("HTTP_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	maxUpload, err := getEnvInt64("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)
	if err != nil {
		return nil, err
	}
	eventsEnabled, err := getEnvBool("EVENTS_ENABLED", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		APIURL:         strings.TrimRight(getEnv("API_URL", "http://localhost:8000/api"), "/"),
		APIToken:       getEnv("API_TOKEN", ""),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379"),
		SessionStore:   getEnv("SESSION_STORE", SessionStoreFile),
		SessionDir:     getEnv("SESSION_DIR", ""),
		SessionTTL:     sessionTTL,
		HTTPTimeout:    httpTimeout,
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		MaxUploadBytes: maxUpload,
		Events: EventConfig{
			Enabled:           eventsEnabled,
			Publisher:         getEnv("EVENTS_PUBLISHER", "gochannel"),
			KafkaBrokers:      getEnv("KAFKA_BROKERS", "localhost:9092"),
			NotificationTopic: getEnv("NOTIFICATION_TOPIC", "notifications"),
		},
	}

	switch cfg.SessionStore {
	case SessionStoreMemory, SessionStoreRedis, SessionStoreFile:
	default:
		return nil, fmt.Errorf("invalid SESSION_STORE %q: want memory, redis or file", cfg.SessionStore)
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
