package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Flight status values shown by the dashboard.
const (
	StatusInFlight = "In Flight"
	StatusOnGround = "On Ground"

	notAvailable = "N/A"
)

// Flag is a boolean the backend encodes either as 0/1 or as true/false.
type Flag bool

// UnmarshalJSON accepts booleans, numbers (non-zero is true) and null.
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "null", "false", "0":
		*f = false
		return nil
	case "true", "1":
		*f = true
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("flag: unsupported value %s", data)
	}
	*f = n != 0
	return nil
}

// FlightState is a raw record from the live-state feed.
type FlightState struct {
	ID            int64    `json:"id"`
	ICAO24        string   `json:"icao24"`
	Callsign      string   `json:"callsign"`
	OriginCountry string   `json:"origin_country"`
	TimePosition  *int64   `json:"time_position"`
	LastContact   *int64   `json:"last_contact"`
	Longitude     *float64 `json:"longitude"`
	Latitude      *float64 `json:"latitude"`
	BaroAltitude  *float64 `json:"baro_altitude"`
	GeoAltitude   *float64 `json:"geo_altitude"`
	OnGround      Flag     `json:"on_ground"`
	Velocity      *float64 `json:"velocity"`
	TrueTrack     *float64 `json:"true_track"`
	VerticalRate  *float64 `json:"vertical_rate"`
	Squawk        string   `json:"squawk"`
	Category      *int     `json:"category"`
}

// HasPosition reports whether both latitude and longitude were reported.
func (s *FlightState) HasPosition() bool {
	return s.Latitude != nil && s.Longitude != nil
}

// UnmarshalFlightStates parses a JSON array of flight states. Callsigns are
// stripped of NUL padding some transponders emit.
func UnmarshalFlightStates(data []byte) ([]FlightState, error) {
	var states []FlightState
	if err := json.Unmarshal(data, &states); err != nil {
		return nil, err
	}
	for i := range states {
		states[i].Callsign = strings.ReplaceAll(states[i].Callsign, "\x00", "")
	}
	return states, nil
}

// Flight is the display projection of a FlightState.
type Flight struct {
	ID           int64    `json:"id"`
	ICAO24       string   `json:"icao24"`
	FlightNumber string   `json:"flightNumber"`
	Callsign     string   `json:"callsign"`
	Airline      string   `json:"airline"`
	Origin       string   `json:"origin"`
	Destination  string   `json:"destination"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Altitude     *float64 `json:"altitude"`
	Velocity     *float64 `json:"velocity"`
	Heading      *float64 `json:"heading"`
	VerticalRate *float64 `json:"verticalRate"`
	Status       string   `json:"status"`
	OnGround     bool     `json:"onGround"`
	LastContact  *int64   `json:"lastContact"`
	TimePosition *int64   `json:"timePosition"`
	Squawk       string   `json:"squawk,omitempty"`
	Category     *int     `json:"category,omitempty"`
}

// NewFlight projects a raw state into its display form. The feed carries no
// airline or destination, so the origin country stands in for the airline.
func NewFlight(s FlightState) Flight {
	status := StatusInFlight
	if s.OnGround {
		status = StatusOnGround
	}

	flightNumber := strings.TrimSpace(s.Callsign)
	if flightNumber == "" {
		flightNumber = notAvailable
	}

	altitude := s.BaroAltitude
	if altitude == nil || *altitude == 0 {
		if s.GeoAltitude != nil {
			altitude = s.GeoAltitude
		}
	}

	return Flight{
		ID:           s.ID,
		ICAO24:       s.ICAO24,
		FlightNumber: flightNumber,
		Callsign:     s.Callsign,
		Airline:      s.OriginCountry,
		Origin:       s.OriginCountry,
		Destination:  notAvailable,
		Latitude:     s.Latitude,
		Longitude:    s.Longitude,
		Altitude:     altitude,
		Velocity:     s.Velocity,
		Heading:      s.TrueTrack,
		VerticalRate: s.VerticalRate,
		Status:       status,
		OnGround:     bool(s.OnGround),
		LastContact:  s.LastContact,
		TimePosition: s.TimePosition,
		Squawk:       s.Squawk,
		Category:     s.Category,
	}
}

// EnrichedFlight combines one flight with at most one matched airline and
// one matched aircraft type.
type EnrichedFlight struct {
	Flight
	AirlineInfo   *AirlineInfo  `json:"airlineInfo"`
	AircraftInfo  *AircraftInfo `json:"aircraftInfo"`
	AirlineName   string        `json:"airlineName"`
	AircraftModel string        `json:"aircraftModel,omitempty"`
	AircraftType  string        `json:"aircraftType,omitempty"`
}

// Enrich merges the matched reference records (either may be nil) into s.
func Enrich(s FlightState, airline *AirlineRecord, aircraft *AircraftRecord) EnrichedFlight {
	f := EnrichedFlight{Flight: NewFlight(s)}
	f.AirlineName = f.Origin

	if airline != nil {
		f.AirlineInfo = airline.Info()
		f.AirlineName = airline.Name
	}
	if aircraft != nil {
		f.AircraftInfo = aircraft.Info()
		f.AircraftModel = strings.TrimSpace(aircraft.Manufacturer + " " + aircraft.Model)
		f.AircraftType = aircraft.Type
	}
	return f
}
