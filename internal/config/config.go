package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTP_PORT string `env:"HTTP_PORT"`
	DB_STRING string `env:"DB_STRING"`
	APP_ENV   string `env:"APP_ENV"`

	API_BASE_URL string        `env:"API_BASE_URL"`
	API_TIMEOUT  time.Duration `env:"API_TIMEOUT"`

	SESSION_KEY   string `env:"SESSION_KEY"`
	COOKIE_SECURE bool   `env:"COOKIE_SECURE"`

	KAFKA_BROKERS  string `env:"KAFKA_BROKERS"`
	KAFKA_TOPIC    string `env:"KAFKA_TOPIC"`
	KAFKA_GROUP_ID string `env:"KAFKA_GROUP_ID"`

	DRAFT_IDLE_TTL time.Duration `env:"DRAFT_IDLE_TTL"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		HTTP_PORT:      os.Getenv("HTTP_PORT"),
		DB_STRING:      os.Getenv("DB_STRING"),
		APP_ENV:        strings.ToLower(os.Getenv("APP_ENV")),
		API_BASE_URL:   strings.TrimRight(os.Getenv("API_BASE_URL"), "/"),
		SESSION_KEY:    os.Getenv("SESSION_KEY"),
		COOKIE_SECURE:  os.Getenv("COOKIE_SECURE") == "true",
		KAFKA_BROKERS:  os.Getenv("KAFKA_BROKERS"),
		KAFKA_TOPIC:    os.Getenv("KAFKA_TOPIC"),
		KAFKA_GROUP_ID: os.Getenv("KAFKA_GROUP_ID"),
	}

	if cfg.HTTP_PORT == "" {
		cfg.HTTP_PORT = "8080"
	}
	if _, err := strconv.Atoi(cfg.HTTP_PORT); err != nil {
		return nil, errors.New("HTTP_PORT must be numeric")
	}
	if cfg.API_BASE_URL == "" {
		cfg.API_BASE_URL = "http://localhost:5000/api"
	}
	if cfg.KAFKA_TOPIC == "" {
		cfg.KAFKA_TOPIC = "placed-orders"
	}
	if cfg.KAFKA_GROUP_ID == "" {
		cfg.KAFKA_GROUP_ID = "stitch-storefront"
	}

	var err error
	if cfg.API_TIMEOUT, err = durationEnv("API_TIMEOUT", 0); err != nil {
		return nil, err
	}
	if cfg.DRAFT_IDLE_TTL, err = durationEnv("DRAFT_IDLE_TTL", 2*time.Hour); err != nil {
		return nil, err
	}

	if cfg.SESSION_KEY == "" {
		if cfg.IsProduction() {
			return nil, errors.New("SESSION_KEY is required in production")
		}
		cfg.SESSION_KEY = "dev-insecure-session-key-change-me"
	}
	if len(cfg.SESSION_KEY) < 32 && cfg.IsProduction() {
		return nil, errors.New("SESSION_KEY must be at least 32 bytes")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.APP_ENV == "production" || c.APP_ENV == "prod"
}

// KafkaEnabled reports whether placed orders go through the broker.
func (c *Config) KafkaEnabled() bool {
	return strings.TrimSpace(c.KAFKA_BROKERS) != ""
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.New(key + ": " + err.Error())
	}
	return d, nil
}
