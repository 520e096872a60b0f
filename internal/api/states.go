package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yeonjoon13/flight-dashboard/internal/model"
)

// StateQuery filters the live-state feed.
type StateQuery struct {
	ICAO24        string
	OriginCountry string
	Callsign      string
	Airline       string
	Limit         int
	Offset        int
}

func (q StateQuery) params() Params {
	p := pageParams(q.Limit, q.Offset)
	p["icao24"] = q.ICAO24
	p["origin_country"] = q.OriginCountry
	p["callsign"] = q.Callsign
	p["airline"] = q.Airline
	return p
}

// States fetches live flight states.
func (c *Client) States(ctx context.Context, q StateQuery) ([]model.FlightState, error) {
	var raw json.RawMessage
	if err := c.Get(ctx, "/states/", q.params(), &raw); err != nil {
		return nil, err
	}
	states, err := model.UnmarshalFlightStates(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding /states/: %w", err)
	}
	return states, nil
}

// StatesByICAO24 returns states reported by one transponder.
func (c *Client) StatesByICAO24(ctx context.Context, icao24 string) ([]model.FlightState, error) {
	return c.States(ctx, StateQuery{ICAO24: icao24})
}

// StatesByCountry returns states whose origin country is country.
func (c *Client) StatesByCountry(ctx context.Context, country string, limit int) ([]model.FlightState, error) {
	return c.States(ctx, StateQuery{OriginCountry: country, Limit: limit})
}

// StatesByAirline returns states flown by the named airline.
func (c *Client) StatesByAirline(ctx context.Context, airline string, limit int) ([]model.FlightState, error) {
	return c.States(ctx, StateQuery{Airline: airline, Limit: limit})
}

// StatesByCallsign returns states broadcasting callsign.
func (c *Client) StatesByCallsign(ctx context.Context, callsign string) ([]model.FlightState, error) {
	return c.States(ctx, StateQuery{Callsign: callsign})
}

// TrackPoint is one entry of a flight track. The backend owns the shape, so
// anything beyond position is kept raw.
type TrackPoint struct {
	Time      *int64          `json:"time"`
	Latitude  *float64        `json:"latitude"`
	Longitude *float64        `json:"longitude"`
	Altitude  *float64        `json:"baro_altitude"`
	Heading   *float64        `json:"true_track"`
	OnGround  model.Flag      `json:"on_ground"`
	Airport   json.RawMessage `json:"airport,omitempty"`
}

// FlightTrack returns the track of the aircraft flying callsign.
func (c *Client) FlightTrack(ctx context.Context, callsign string) ([]TrackPoint, error) {
	callsign = strings.TrimSpace(callsign)
	if len(callsign) < 3 || len(callsign) > 10 {
		return nil, ErrInvalidCallsign
	}
	var track []TrackPoint
	if err := c.Get(ctx, "/states/track/", Params{"callsign": callsign}, &track); err != nil {
		return nil, err
	}
	return track, nil
}
