package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	Google  GoogleConfig
	Alerts  AlertsConfig
	Worker  WorkerConfig
	DB      DatabaseConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host      string
	Port      int
	RateLimit int // requests per second, global
}

type GoogleConfig struct {
	APIKey     string
	PlacesURL  string
	GeocodeURL string
}

type AlertsConfig struct {
	FeedEnabled  bool
	FeedURL      string
	PollInterval time.Duration
	SeedSamples  bool
}

type WorkerConfig struct {
	Count      int
	BufferSize int
}

type DatabaseConfig struct {
	Path string
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:      getEnv("SERVER_HOST", "localhost"),
			Port:      getEnvInt("SERVER_PORT", 8080),
			RateLimit: getEnvInt("SERVER_RATE_LIMIT", 5),
		},
		Google: GoogleConfig{
			APIKey:     getEnv("GOOGLE_API_KEY", ""),
			PlacesURL:  getEnv("GOOGLE_PLACES_URL", ""),
			GeocodeURL: getEnv("GOOGLE_GEOCODE_URL", ""),
		},
		Alerts: AlertsConfig{
			FeedEnabled:  getEnvBool("ALERT_FEED_ENABLED", false),
			FeedURL:      getEnv("ALERT_FEED_URL", "https://api.reliefweb.int/v1/disasters?appname=safetravel&profile=full&preset=latest"),
			PollInterval: getEnvDuration("ALERT_FEED_POLL_INTERVAL", 5*time.Minute),
			SeedSamples:  getEnvBool("ALERT_SEED_SAMPLES", true),
		},
		Worker: WorkerConfig{
			Count:      getEnvInt("WORKER_COUNT", 2),
			BufferSize: getEnvInt("WORKER_BUFFER_SIZE", 20),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/safetravel.db"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Alerts.FeedEnabled && c.Alerts.PollInterval < time.Minute {
		return fmt.Errorf("alert feed poll interval must be at least 1 minute")
	}
	if c.Worker.Count < 1 {
		return fmt.Errorf("worker count must be at least 1")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
