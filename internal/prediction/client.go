// Package prediction calls the delay-prediction API.
package prediction

import (
	"context"
	"errors"
	"strings"

	"github.com/yeonjoon13/flight-dashboard/internal/api"
	"github.com/yeonjoon13/flight-dashboard/internal/model"
)

// ErrEmptyCallsign is returned when PredictDelay is called without a callsign.
var ErrEmptyCallsign = errors.New("callsign is required")

// Client talks to the prediction API. It shares transport, API key and error
// handling with the backend client.
type Client struct {
	api *api.Client
}

// NewClient creates a client for the prediction API rooted at baseURL.
// It accepts the same options as api.NewClient.
func NewClient(baseURL string, opts ...api.Option) *Client {
	return &Client{api: api.NewClient(baseURL, opts...)}
}

// PredictDelay asks for the delay probability of the flight flying callsign.
// The callsign travels as a query parameter; the body is empty.
func (c *Client) PredictDelay(ctx context.Context, callsign string) (*model.DelayPrediction, error) {
	callsign = strings.TrimSpace(callsign)
	if callsign == "" {
		return nil, ErrEmptyCallsign
	}

	var p model.DelayPrediction
	if err := c.api.Post(ctx, "/predictions/delay", api.Params{"callsign": callsign}, &p); err != nil {
		return nil, err
	}
	if p.Callsign == "" {
		p.Callsign = callsign
	}
	return &p, nil
}
