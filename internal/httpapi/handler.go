// Package httpapi serves enriched flights, dashboard statistics and delay
// predictions over HTTP.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/yeonjoon13/flight-dashboard/internal/analytics"
	"github.com/yeonjoon13/flight-dashboard/internal/api"
	"github.com/yeonjoon13/flight-dashboard/internal/httpx"
	"github.com/yeonjoon13/flight-dashboard/internal/model"
	"github.com/yeonjoon13/flight-dashboard/internal/prediction"
)

// FlightSource is implemented by *enrich.Enricher.
type FlightSource interface {
	GetEnrichedFlights(ctx context.Context, limit int) ([]model.EnrichedFlight, error)
	ClearCache()
	LoadedAt() (time.Time, bool)
}

// Predictor is implemented by *prediction.Client.
type Predictor interface {
	PredictDelay(ctx context.Context, callsign string) (*model.DelayPrediction, error)
}

// Backend is the part of *api.Client served directly, without enrichment.
type Backend interface {
	Health(ctx context.Context) (string, error)
	FlightTrack(ctx context.Context, callsign string) ([]api.TrackPoint, error)
	Countries(ctx context.Context, q api.CountryQuery) ([]model.Country, error)
}

// Handler holds the dependencies of the HTTP endpoints.
type Handler struct {
	flights   FlightSource
	predictor Predictor
	backend   Backend
	logger    *slog.Logger
}

// NewHandler creates a handler. predictor may be nil, in which case the
// prediction endpoint answers 503.
func NewHandler(flights FlightSource, predictor Predictor, backend Backend, logger *slog.Logger) *Handler {
	return &Handler{flights: flights, predictor: predictor, backend: backend, logger: logger}
}

// Router returns the full router with the standard middleware stack.
func (h *Handler) Router() chi.Router {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Timeout(60*time.Second),
	)
	router.Mount("/api", h.Routes())
	return router
}

// Routes configures the API routes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/health", h.health)
	r.Get("/flights", h.listFlights)
	r.Get("/flights/summary", h.summary)
	r.Get("/flights/{callsign}/track", h.track)
	r.Get("/countries", h.countries)
	r.Post("/cache/clear", h.clearCache)
	r.Post("/predictions/delay", h.predictDelay)
	return r
}

type healthResponse struct {
	Status        string     `json:"status"`
	Backend       string     `json:"backend"`
	CacheLoadedAt *time.Time `json:"cacheLoadedAt"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	if loadedAt, ok := h.flights.LoadedAt(); ok {
		resp.CacheLoadedAt = &loadedAt
	}
	msg, err := h.backend.Health(r.Context())
	if err != nil {
		h.logger.Warn("backend health check failed", "err", err)
		httpx.Error(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	resp.Backend = msg
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) listFlights(w http.ResponseWriter, r *http.Request) {
	flights, ok := h.fetchFlights(w, r)
	if !ok {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, flights)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	flights, ok := h.fetchFlights(w, r)
	if !ok {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, analytics.Summarize(flights))
}

// fetchFlights writes the error response itself and reports false on failure.
func (h *Handler) fetchFlights(w http.ResponseWriter, r *http.Request) ([]model.EnrichedFlight, bool) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "limit must be a positive integer")
		return nil, false
	}
	flights, err := h.flights.GetEnrichedFlights(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to get enriched flights", "err", err)
		httpx.Error(w, http.StatusBadGateway, err.Error())
		return nil, false
	}
	return flights, true
}

// parseLimit returns 0 for an empty value so the enricher default applies.
func parseLimit(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid limit")
	}
	return n, nil
}

func parseOffset(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New("invalid offset")
	}
	return n, nil
}

func (h *Handler) track(w http.ResponseWriter, r *http.Request) {
	track, err := h.backend.FlightTrack(r.Context(), chi.URLParam(r, "callsign"))
	switch {
	case errors.Is(err, api.ErrInvalidCallsign):
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.logger.Error("failed to get flight track", "err", err)
		httpx.Error(w, http.StatusBadGateway, err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, track)
}

func (h *Handler) countries(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, err := parseLimit(query.Get("limit"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	offset, err := parseOffset(query.Get("offset"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "offset must be a non-negative integer")
		return
	}

	countries, err := h.backend.Countries(r.Context(), api.CountryQuery{
		Name:      query.Get("name"),
		Continent: query.Get("continent"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		h.logger.Error("failed to list countries", "err", err)
		httpx.Error(w, http.StatusBadGateway, err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, countries)
}

func (h *Handler) clearCache(w http.ResponseWriter, _ *http.Request) {
	h.flights.ClearCache()
	h.logger.Info("enrichment cache cleared")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) predictDelay(w http.ResponseWriter, r *http.Request) {
	if h.predictor == nil {
		httpx.Error(w, http.StatusServiceUnavailable, "prediction service not configured")
		return
	}
	p, err := h.predictor.PredictDelay(r.Context(), r.URL.Query().Get("callsign"))
	switch {
	case errors.Is(err, prediction.ErrEmptyCallsign):
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.logger.Error("delay prediction failed", "err", err)
		httpx.Error(w, http.StatusBadGateway, err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}
