package api

import (
	"context"

	"github.com/yeonjoon13/flight-dashboard/internal/model"
)

// AircraftQuery filters the aircraft type reference list.
type AircraftQuery struct {
	Model        string
	Manufacturer string
	WingType     string
	AircraftType string
	ICAOCode     string
	IATACode     string
	Limit        int
	Offset       int
}

func (q AircraftQuery) params() Params {
	p := pageParams(q.Limit, q.Offset)
	p["model"] = q.Model
	p["manufacturer"] = q.Manufacturer
	p["wing_type"] = q.WingType
	p["aircraft_type"] = q.AircraftType
	p["icao_code"] = q.ICAOCode
	p["iata_code"] = q.IATACode
	return p
}

// Aircrafts fetches a page of aircraft type records.
func (c *Client) Aircrafts(ctx context.Context, q AircraftQuery) ([]model.AircraftRecord, error) {
	var aircraft []model.AircraftRecord
	if err := c.Get(ctx, "/aircrafts/", q.params(), &aircraft); err != nil {
		return nil, err
	}
	return aircraft, nil
}

// AircraftsByICAOCode returns aircraft types with the ICAO type designator code.
func (c *Client) AircraftsByICAOCode(ctx context.Context, code string) ([]model.AircraftRecord, error) {
	return c.Aircrafts(ctx, AircraftQuery{ICAOCode: code})
}

// AircraftsByManufacturer returns aircraft types built by manufacturer.
func (c *Client) AircraftsByManufacturer(ctx context.Context, manufacturer string) ([]model.AircraftRecord, error) {
	return c.Aircrafts(ctx, AircraftQuery{Manufacturer: manufacturer})
}
