// Package config reads process settings from command-line flags, falling
// back to environment variables and then to defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// Config holds the settings shared by all binaries.
type Config struct {
	APIBaseURL        string
	APIKey            string
	PredictionBaseURL string

	KafkaBroker string
	KafkaTopic  string
	KafkaGroup  string

	HTTPAddr string

	PollInterval time.Duration
	CacheTTL     time.Duration
	StaleAfter   time.Duration
	FlightLimit  int

	LogLevel slog.Level
}

// ErrMissingBaseURL is returned when no backend base URL was given.
var ErrMissingBaseURL = errors.New("api base url is required (--api-url or API_BASE_URL)")

// Load parses args (without the program name). Values given as flags win
// over the environment.
func Load(name string, args []string) (Config, error) {
	return load(name, args, os.Getenv)
}

func load(name string, args []string, getenv func(string) string) (Config, error) {
	env := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	pollDefault, err := envDuration(getenv, "POLL_INTERVAL", 2*time.Minute)
	if err != nil {
		return Config{}, err
	}
	ttlDefault, err := envDuration(getenv, "CACHE_TTL", 5*time.Minute)
	if err != nil {
		return Config{}, err
	}
	limitDefault := 100
	if v := getenv("FLIGHT_LIMIT"); v != "" {
		if limitDefault, err = strconv.Atoi(v); err != nil {
			return Config{}, fmt.Errorf("FLIGHT_LIMIT: %w", err)
		}
	}

	var (
		cfg      Config
		logLevel string
	)
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringVar(&cfg.APIBaseURL, "api-url", env("API_BASE_URL", ""), "flight data API base URL")
	fs.StringVar(&cfg.APIKey, "api-key", env("API_KEY", ""), "value of the X-API-Key header")
	fs.StringVar(&cfg.PredictionBaseURL, "prediction-url", env("PREDICTION_BASE_URL", ""), "delay prediction API base URL (disabled when empty)")
	fs.StringVar(&cfg.KafkaBroker, "broker", env("KAFKA_BROKER", "localhost:9092"), "Kafka broker address")
	fs.StringVar(&cfg.KafkaTopic, "topic", env("KAFKA_TOPIC", "enriched_flights"), "Kafka topic for enriched flights")
	fs.StringVar(&cfg.KafkaGroup, "group", env("KAFKA_GROUP", name), "Kafka consumer group ID")
	fs.StringVar(&cfg.HTTPAddr, "addr", env("HTTP_ADDR", ":8080"), "HTTP listen address")
	fs.DurationVar(&cfg.PollInterval, "interval", pollDefault, "poll interval")
	fs.DurationVar(&cfg.CacheTTL, "cache-ttl", ttlDefault, "reference data freshness window")
	fs.DurationVar(&cfg.StaleAfter, "stale-after", 15*time.Minute, "drop flights not updated for this long")
	fs.IntVarP(&cfg.FlightLimit, "limit", "n", limitDefault, "flights requested per poll")
	fs.StringVar(&logLevel, "log-level", env("LOG_LEVEL", "info"), "debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return Config{}, fmt.Errorf("log level: %w", err)
	}
	if cfg.PollInterval <= 0 || cfg.CacheTTL <= 0 {
		return Config{}, errors.New("intervals must be positive")
	}
	return cfg, nil
}

// RequireAPI reports ErrMissingBaseURL when no backend base URL was given.
func (c Config) RequireAPI() error {
	if c.APIBaseURL == "" {
		return ErrMissingBaseURL
	}
	return nil
}

func envDuration(getenv func(string) string, key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// NewLogger returns a text logger on stderr at the configured level.
func (c Config) NewLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.LogLevel}))
}
