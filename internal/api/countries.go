package api

import (
	"context"

	"github.com/yeonjoon13/flight-dashboard/internal/model"
)

// CountryQuery filters the countries list. Continent is a two-letter code.
type CountryQuery struct {
	Name      string
	Continent string
	Limit     int
	Offset    int
}

// Countries fetches a page of countries.
func (c *Client) Countries(ctx context.Context, q CountryQuery) ([]model.Country, error) {
	p := pageParams(q.Limit, q.Offset)
	p["name"] = q.Name
	p["continent"] = q.Continent

	var countries []model.Country
	if err := c.Get(ctx, "/countries/", p, &countries); err != nil {
		return nil, err
	}
	return countries, nil
}
