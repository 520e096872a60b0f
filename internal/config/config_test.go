package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaults(t *testing.T) {
	cfg, err := load("dashboard", nil, envMap(map[string]string{"API_BASE_URL": "http://api"}))
	require.NoError(t, err)

	assert.Equal(t, "http://api", cfg.APIBaseURL)
	assert.Equal(t, "localhost:9092", cfg.KafkaBroker)
	assert.Equal(t, "enriched_flights", cfg.KafkaTopic)
	assert.Equal(t, "dashboard", cfg.KafkaGroup)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 2*time.Minute, cfg.PollInterval)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 15*time.Minute, cfg.StaleAfter)
	assert.Equal(t, 100, cfg.FlightLimit)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Empty(t, cfg.PredictionBaseURL)
}

func TestEnvironment(t *testing.T) {
	cfg, err := load("ingestor", nil, envMap(map[string]string{
		"API_BASE_URL":        "http://api",
		"API_KEY":             "secret",
		"PREDICTION_BASE_URL": "http://predict",
		"KAFKA_BROKER":        "kafka:29092",
		"KAFKA_TOPIC":         "flights",
		"HTTP_ADDR":           ":9000",
		"POLL_INTERVAL":       "30s",
		"CACHE_TTL":           "1m",
		"FLIGHT_LIMIT":        "250",
		"LOG_LEVEL":           "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "http://predict", cfg.PredictionBaseURL)
	assert.Equal(t, "kafka:29092", cfg.KafkaBroker)
	assert.Equal(t, "flights", cfg.KafkaTopic)
	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, 250, cfg.FlightLimit)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	cfg, err := load("wsserver", []string{"--api-url", "http://flag", "--interval=10s", "-n", "20", "--log-level", "warn"},
		envMap(map[string]string{"API_BASE_URL": "http://env", "POLL_INTERVAL": "1m"}))
	require.NoError(t, err)

	assert.Equal(t, "http://flag", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.PollInterval)
	assert.Equal(t, 20, cfg.FlightLimit)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "bad env duration", env: map[string]string{"API_BASE_URL": "x", "CACHE_TTL": "soon"}},
		{name: "bad env limit", env: map[string]string{"API_BASE_URL": "x", "FLIGHT_LIMIT": "many"}},
		{name: "bad log level", env: map[string]string{"API_BASE_URL": "x", "LOG_LEVEL": "loud"}},
		{name: "unknown flag", args: []string{"--nope"}, env: map[string]string{"API_BASE_URL": "x"}},
		{name: "non-positive interval", args: []string{"--interval", "0s"}, env: map[string]string{"API_BASE_URL": "x"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := load("test", tc.args, envMap(tc.env))
			assert.Error(t, err)
		})
	}
}

func TestRequireAPI(t *testing.T) {
	cfg, err := load("wsserver", nil, envMap(nil))
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.RequireAPI(), ErrMissingBaseURL)

	cfg.APIBaseURL = "http://api"
	assert.NoError(t, cfg.RequireAPI())
}
