package prediction

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeonjoon13/flight-dashboard/internal/api"
)

func TestPredictDelay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predictions/delay", r.URL.Path)
		assert.Equal(t, "AFR1234", r.URL.Query().Get("callsign"))
		body, _ := io.ReadAll(r.Body)
		assert.Empty(t, body)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"delay_probability": 0.73, "is_delayed": true, "classification": "delayed", "confidence": 0.91}`))
	}))
	defer srv.Close()

	p, err := NewClient(srv.URL+"/").PredictDelay(context.Background(), " AFR1234 ")
	require.NoError(t, err)
	assert.Equal(t, "AFR1234", p.Callsign)
	assert.InDelta(t, 0.73, p.DelayProbability, 0.0001)
	assert.True(t, p.IsDelayed)
	assert.Equal(t, "delayed", p.Classification)
	require.NotNil(t, p.Confidence)
	assert.Nil(t, p.EstimatedDelayMinutes)
}

func TestPredictDelayAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))
		w.Write([]byte(`{"callsign": "DLH400", "delay_probability": 0.1, "is_delayed": false}`))
	}))
	defer srv.Close()

	p, err := NewClient(srv.URL, api.WithAPIKey("secret")).PredictDelay(context.Background(), "dlh400")
	require.NoError(t, err)
	assert.Equal(t, "DLH400", p.Callsign)
	assert.False(t, p.IsDelayed)
}

func TestPredictDelayEmptyCallsign(t *testing.T) {
	_, err := NewClient("http://unused").PredictDelay(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyCallsign)
}

func TestPredictDelayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Flight not found"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).PredictDelay(context.Background(), "ZZZ999")
	require.Error(t, err)
	assert.EqualError(t, err, "Flight not found")

	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}
