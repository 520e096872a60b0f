package enrich

import (
	"strings"

	"github.com/yeonjoon13/flight-dashboard/internal/model"
)

// Resolver picks the reference records matching a flight. Implementations
// must not modify the slices they are given.
type Resolver interface {
	ResolveAirline(airlines []model.AirlineRecord, callsign, originCountry string) *model.AirlineRecord
	ResolveAircraft(aircraft []model.AircraftRecord, icao24 string) *model.AircraftRecord
}

// HeuristicResolver matches by string heuristics. First match in list order
// wins; there is no scoring between candidates.
type HeuristicResolver struct{}

// ResolveAirline tries, in order: the full callsign against the airline's
// radio callsign, the first three characters against its ICAO code, and the
// origin country against its country. All comparisons ignore case.
func (HeuristicResolver) ResolveAirline(airlines []model.AirlineRecord, callsign, originCountry string) *model.AirlineRecord {
	callsign = strings.TrimSpace(callsign)
	if callsign == "" {
		return nil
	}

	for i := range airlines {
		if airlines[i].Callsign != "" && strings.EqualFold(airlines[i].Callsign, callsign) {
			return &airlines[i]
		}
	}

	if prefix := []rune(callsign); len(prefix) >= 3 {
		icao := string(prefix[:3])
		for i := range airlines {
			if airlines[i].ICAO != "" && strings.EqualFold(airlines[i].ICAO, icao) {
				return &airlines[i]
			}
		}
	}

	originCountry = strings.TrimSpace(originCountry)
	if originCountry == "" {
		return nil
	}
	for i := range airlines {
		if airlines[i].Country != "" && strings.EqualFold(airlines[i].Country, originCountry) {
			return &airlines[i]
		}
	}
	return nil
}

// ResolveAircraft returns the first type whose ICAO code prefixes the
// transponder address.
//
// This is a placeholder: ICAO24 addresses are allocated per airframe by
// registration state and carry no type information, so matches are
// coincidental. A real lookup needs an address-to-airframe table.
func (HeuristicResolver) ResolveAircraft(aircraft []model.AircraftRecord, icao24 string) *model.AircraftRecord {
	addr := strings.ToLower(strings.TrimSpace(icao24))
	if addr == "" {
		return nil
	}
	for i := range aircraft {
		code := strings.ToLower(aircraft[i].ICAOCode)
		if code != "" && strings.HasPrefix(addr, code) {
			return &aircraft[i]
		}
	}
	return nil
}
