// Package enrich joins live flight states with airline and aircraft
// reference data held in a time-boxed cache.
package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/yeonjoon13/flight-dashboard/internal/api"
	"github.com/yeonjoon13/flight-dashboard/internal/model"
)

const (
	// DefaultFreshness is how long loaded reference data stays valid.
	DefaultFreshness = 5 * time.Minute
	// DefaultReferenceLimit is the page size requested for each reference list.
	DefaultReferenceLimit = 500
	// DefaultFlightLimit applies when GetEnrichedFlights is given no limit.
	DefaultFlightLimit = 100
)

// Backend is the subset of the API client the enricher needs.
type Backend interface {
	Airlines(ctx context.Context, q api.AirlineQuery) ([]model.AirlineRecord, error)
	Aircrafts(ctx context.Context, q api.AircraftQuery) ([]model.AircraftRecord, error)
	States(ctx context.Context, q api.StateQuery) ([]model.FlightState, error)
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithFreshness sets the freshness window of the reference cache.
func WithFreshness(d time.Duration) Option {
	return func(e *Enricher) { e.freshness = d }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Enricher) { e.now = now }
}

// WithResolver swaps the matching policy.
func WithResolver(r Resolver) Option {
	return func(e *Enricher) { e.resolver = r }
}

// WithReferenceLimit sets how many airlines and aircraft types a reload requests.
func WithReferenceLimit(n int) Option {
	return func(e *Enricher) { e.refLimit = n }
}

// WithLogger sets the logger used for reload messages.
func WithLogger(l *slog.Logger) Option {
	return func(e *Enricher) { e.logger = l }
}

// snapshot is replaced as a whole; its slices are never modified after load.
type snapshot struct {
	airlines []model.AirlineRecord
	aircraft []model.AircraftRecord
	loadedAt time.Time
}

// Enricher caches reference data and produces enriched flights.
type Enricher struct {
	backend   Backend
	resolver  Resolver
	freshness time.Duration
	refLimit  int
	now       func() time.Time
	logger    *slog.Logger

	reloads singleflight.Group

	mu   sync.RWMutex
	snap *snapshot
}

// New creates an Enricher with an empty cache.
func New(backend Backend, opts ...Option) *Enricher {
	e := &Enricher{
		backend:   backend,
		resolver:  HeuristicResolver{},
		freshness: DefaultFreshness,
		refLimit:  DefaultReferenceLimit,
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Enricher) current() *snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snap
}

func (e *Enricher) isFresh() bool {
	snap := e.current()
	return snap != nil && e.now().Sub(snap.loadedAt) < e.freshness
}

// LoadedAt reports when the reference data was last loaded, if it is cached.
func (e *Enricher) LoadedAt() (time.Time, bool) {
	snap := e.current()
	if snap == nil {
		return time.Time{}, false
	}
	return snap.loadedAt, true
}

// EnsureFresh reloads the reference data if it was never loaded or has
// outlived the freshness window. A failed reload is logged and the previous
// data, if any, is kept. Concurrent callers share one reload, which runs
// detached from any single caller's cancellation; a caller whose ctx ends
// stops waiting but the reload carries on for the others.
func (e *Enricher) EnsureFresh(ctx context.Context) {
	if e.isFresh() {
		return
	}
	shared := context.WithoutCancel(ctx)
	done := e.reloads.DoChan("reference", func() (any, error) {
		if e.isFresh() {
			return nil, nil
		}
		if err := e.reload(shared); err != nil {
			e.logger.Error("failed to load enrichment cache", "err", err)
			return nil, err
		}
		return nil, nil
	})
	select {
	case <-ctx.Done():
	case <-done:
	}
}

func (e *Enricher) reload(ctx context.Context) error {
	e.logger.Debug("loading enrichment cache")

	var (
		airlines []model.AirlineRecord
		aircraft []model.AircraftRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		airlines, err = e.backend.Airlines(gctx, api.AirlineQuery{Limit: e.refLimit})
		if err != nil {
			return fmt.Errorf("loading airlines: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		aircraft, err = e.backend.Aircrafts(gctx, api.AircraftQuery{Limit: e.refLimit})
		if err != nil {
			return fmt.Errorf("loading aircraft: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	e.mu.Lock()
	e.snap = &snapshot{airlines: airlines, aircraft: aircraft, loadedAt: e.now()}
	e.mu.Unlock()

	e.logger.Info("enrichment cache loaded", "airlines", len(airlines), "aircraft", len(aircraft))
	return nil
}

// ClearCache drops the reference data; the next EnsureFresh reloads.
func (e *Enricher) ClearCache() {
	e.mu.Lock()
	e.snap = nil
	e.mu.Unlock()
}

// MatchAirline resolves an airline against the cached data. It returns nil
// when nothing matches or nothing is cached.
func (e *Enricher) MatchAirline(callsign, originCountry string) *model.AirlineRecord {
	snap := e.current()
	if snap == nil {
		return nil
	}
	return e.resolver.ResolveAirline(snap.airlines, callsign, originCountry)
}

// MatchAircraft resolves an aircraft type against the cached data.
func (e *Enricher) MatchAircraft(icao24 string) *model.AircraftRecord {
	snap := e.current()
	if snap == nil {
		return nil
	}
	return e.resolver.ResolveAircraft(snap.aircraft, icao24)
}

// GetEnrichedFlights returns up to limit positioned flights in feed order,
// each joined with its matched airline and aircraft type. Reference data
// problems only reduce enrichment; a failed state fetch is returned.
func (e *Enricher) GetEnrichedFlights(ctx context.Context, limit int) ([]model.EnrichedFlight, error) {
	if limit <= 0 {
		limit = DefaultFlightLimit
	}

	e.EnsureFresh(ctx)

	states, err := e.backend.States(ctx, api.StateQuery{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("fetching flight states: %w", err)
	}

	snap := e.current()
	flights := make([]model.EnrichedFlight, 0, min(len(states), limit))
	for i := range states {
		if len(flights) == limit {
			break
		}
		if !states[i].HasPosition() {
			continue
		}
		flights = append(flights, e.enrich(snap, states[i]))
	}
	return flights, nil
}

func (e *Enricher) enrich(snap *snapshot, s model.FlightState) model.EnrichedFlight {
	if snap == nil {
		return model.Enrich(s, nil, nil)
	}
	airline := e.resolver.ResolveAirline(snap.airlines, s.Callsign, s.OriginCountry)
	aircraft := e.resolver.ResolveAircraft(snap.aircraft, s.ICAO24)
	return model.Enrich(s, airline, aircraft)
}
