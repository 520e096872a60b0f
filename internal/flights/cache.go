// Package flights keeps the latest enriched flight per transponder address.
package flights

import (
	"sort"
	"sync"
	"time"

	"github.com/yeonjoon13/flight-dashboard/internal/model"
)

type entry struct {
	flight model.EnrichedFlight
	seenAt time.Time
}

// Store is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	flights map[string]entry
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{flights: make(map[string]entry)}
}

// Upsert records f as the latest update for its ICAO24 address. Flights
// without a valid position are ignored and reported as false.
func (s *Store) Upsert(f model.EnrichedFlight, seenAt time.Time) bool {
	if f.ICAO24 == "" || f.Latitude == nil || f.Longitude == nil {
		return false
	}
	if !isValidCoordinate(*f.Latitude, *f.Longitude) {
		return false
	}
	s.mu.Lock()
	s.flights[f.ICAO24] = entry{flight: f, seenAt: seenAt}
	s.mu.Unlock()
	return true
}

// Get returns the latest update for icao24.
func (s *Store) Get(icao24 string) (model.EnrichedFlight, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.flights[icao24]
	return e.flight, ok
}

// List returns every stored flight ordered by ICAO24.
func (s *Store) List() []model.EnrichedFlight {
	s.mu.RLock()
	out := make([]model.EnrichedFlight, 0, len(s.flights))
	for _, e := range s.flights {
		out = append(out, e.flight)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ICAO24 < out[j].ICAO24 })
	return out
}

// Len returns the number of stored flights.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.flights)
}

// Prune drops flights not seen for longer than maxAge and returns how many
// were removed.
func (s *Store) Prune(maxAge time.Duration, now time.Time) int {
	removed := 0
	s.mu.Lock()
	for id, e := range s.flights {
		if now.Sub(e.seenAt) > maxAge {
			delete(s.flights, id)
			removed++
		}
	}
	s.mu.Unlock()
	return removed
}

func isValidCoordinate(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
