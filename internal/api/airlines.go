package api

import (
	"context"

	"github.com/yeonjoon13/flight-dashboard/internal/model"
)

// AirlineQuery filters the airline reference list.
type AirlineQuery struct {
	IATA     string
	ICAO     string
	Name     string
	Callsign string
	Country  string
	Limit    int
	Offset   int
}

func (q AirlineQuery) params() Params {
	p := pageParams(q.Limit, q.Offset)
	p["iata"] = q.IATA
	p["icao"] = q.ICAO
	p["airline"] = q.Name
	p["callsign"] = q.Callsign
	p["country"] = q.Country
	return p
}

// Airlines fetches a page of airline records.
func (c *Client) Airlines(ctx context.Context, q AirlineQuery) ([]model.AirlineRecord, error) {
	var airlines []model.AirlineRecord
	if err := c.Get(ctx, "/airlines/", q.params(), &airlines); err != nil {
		return nil, err
	}
	return airlines, nil
}

// AirlinesByIATA returns airlines with the two-letter IATA code iata.
func (c *Client) AirlinesByIATA(ctx context.Context, iata string) ([]model.AirlineRecord, error) {
	return c.Airlines(ctx, AirlineQuery{IATA: iata})
}

// AirlinesByCountry returns airlines registered in country.
func (c *Client) AirlinesByCountry(ctx context.Context, country string) ([]model.AirlineRecord, error) {
	return c.Airlines(ctx, AirlineQuery{Country: country})
}

// SearchAirlines looks airlines up by name.
func (c *Client) SearchAirlines(ctx context.Context, name string) ([]model.AirlineRecord, error) {
	return c.Airlines(ctx, AirlineQuery{Name: name})
}
