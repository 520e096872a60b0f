// Package api is a client for the flight backend REST API: live states,
// airlines, aircraft types and countries.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout = 30 * time.Second

	// DefaultLimit and MaxLimit mirror the backend's pagination bounds.
	DefaultLimit = 50
	MaxLimit     = 500
)

// Error is returned for any non-2xx response. Status is the response's
// status line, for example "502 Bad Gateway".
type Error struct {
	StatusCode int
	Status     string
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Status != "" {
		return "API Error: " + e.Status
	}
	return fmt.Sprintf("API Error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// ErrInvalidCallsign is returned when a track request carries a callsign
// outside the 3..10 character range.
var ErrInvalidCallsign = errors.New("callsign must be between 3 and 10 characters")

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithAPIKey sends key in the X-API-Key header. Empty keys are ignored, which
// is what deployments behind a key-injecting proxy want.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = strings.TrimSpace(key) }
}

// WithLogger sets the logger used for failed requests.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// Client talks to the backend API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Params is a set of query parameters. Empty values are dropped on encoding.
type Params map[string]string

func (p Params) encode() string {
	v := url.Values{}
	for key, value := range p {
		if value == "" {
			continue
		}
		v.Set(key, value)
	}
	return v.Encode()
}

func pageParams(limit, offset int) Params {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Params{
		"limit":  fmt.Sprint(limit),
		"offset": fmt.Sprint(offset),
	}
}

// Get issues a GET for endpoint and decodes the JSON answer into out.
func (c *Client) Get(ctx context.Context, endpoint string, params Params, out any) error {
	body, err := c.do(ctx, http.MethodGet, endpoint, params)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding %s: %w", endpoint, err)
	}
	return nil
}

// Post issues a POST with an empty body and decodes the JSON answer into out.
func (c *Client) Post(ctx context.Context, endpoint string, params Params, out any) error {
	body, err := c.do(ctx, http.MethodPost, endpoint, params)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding %s: %w", endpoint, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, params Params) ([]byte, error) {
	target := c.baseURL + endpoint
	if qs := params.encode(); qs != "" {
		target += "?" + qs
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("api request failed", "endpoint", endpoint, "err", err)
		return nil, fmt.Errorf("requesting %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := ParseError(resp.StatusCode, resp.Status, body)
		c.logger.Error("api request failed", "endpoint", endpoint, "status", resp.StatusCode, "err", apiErr)
		return nil, apiErr
	}
	return body, nil
}

// ParseError builds an *Error from a failed response, picking up the
// backend's "detail" field when the body is JSON.
func ParseError(code int, status string, body []byte) *Error {
	apiErr := &Error{StatusCode: code, Status: status}
	var payload struct {
		Detail any `json:"detail"`
	}
	if json.Unmarshal(body, &payload) == nil {
		switch d := payload.Detail.(type) {
		case string:
			apiErr.Detail = d
		case nil:
		default:
			if raw, err := json.Marshal(d); err == nil {
				apiErr.Detail = string(raw)
			}
		}
	}
	return apiErr
}

// Health returns the backend's health message.
func (c *Client) Health(ctx context.Context) (string, error) {
	var raw json.RawMessage
	if err := c.Get(ctx, "/health/", nil, &raw); err != nil {
		return "", err
	}
	var msg string
	if json.Unmarshal(raw, &msg) == nil {
		return msg, nil
	}
	return string(raw), nil
}
