// Package analytics computes the dashboard statistics over enriched flights.
package analytics

import (
	"sort"

	"github.com/yeonjoon13/flight-dashboard/internal/model"
)

const (
	topCountries     = 10
	topAirlines      = 10
	topAircraftTypes = 8
)

// PropertyCount is how often a property value was seen.
type PropertyCount struct {
	Property string `json:"property"`
	Count    int    `json:"count"`
}

// byCountDesc orders by count, most common first, then by name.
type byCountDesc []PropertyCount

func (a byCountDesc) Len() int      { return len(a) }
func (a byCountDesc) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a byCountDesc) Less(i, j int) bool {
	if a[i].Count != a[j].Count {
		return a[i].Count > a[j].Count
	}
	return a[i].Property < a[j].Property
}

// Ranked returns the n most common entries of counts; n <= 0 returns all.
func Ranked(counts map[string]int, n int) []PropertyCount {
	ranked := make([]PropertyCount, 0, len(counts))
	for property, count := range counts {
		ranked = append(ranked, PropertyCount{Property: property, Count: count})
	}
	sort.Sort(byCountDesc(ranked))
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// AirlineCount ranks an airline together with its details.
type AirlineCount struct {
	Airline model.AirlineInfo `json:"airline"`
	Count   int               `json:"count"`
}

// Summary holds the figures shown on the dashboard and analytics pages.
type Summary struct {
	TotalFlights        int             `json:"totalFlights"`
	InFlight            int             `json:"inFlight"`
	OnGround            int             `json:"onGround"`
	UniqueAirlines      int             `json:"uniqueAirlines"`
	UniqueAircraftTypes int             `json:"uniqueAircraftTypes"`
	UniqueCountries     int             `json:"uniqueCountries"`
	StatusDistribution  map[string]int  `json:"statusDistribution"`
	TopCountries        []PropertyCount `json:"topCountries"`
	TopAirlines         []AirlineCount  `json:"topAirlines"`
	TopAircraftTypes    []PropertyCount `json:"topAircraftTypes"`
	AverageAltitude     *float64        `json:"averageAltitude"`
	AverageVelocity     *float64        `json:"averageVelocity"`
}

// Summarize aggregates flights. Averages only cover flights reporting a
// non-zero value and are nil when none do.
func Summarize(flights []model.EnrichedFlight) Summary {
	s := Summary{
		TotalFlights:       len(flights),
		StatusDistribution: map[string]int{},
	}

	countries := map[string]int{}
	airlineCounts := map[string]int{}
	airlineInfo := map[string]model.AirlineInfo{}
	aircraftTypes := map[string]int{}
	var altSum, velSum float64
	var altN, velN int

	for i := range flights {
		f := &flights[i]

		s.StatusDistribution[f.Status]++
		switch f.Status {
		case model.StatusInFlight:
			s.InFlight++
		case model.StatusOnGround:
			s.OnGround++
		}

		countries[f.Origin]++

		if f.AirlineInfo != nil {
			name := f.AirlineInfo.Name
			if _, seen := airlineInfo[name]; !seen {
				airlineInfo[name] = *f.AirlineInfo
			}
			airlineCounts[name]++
		}
		if f.AircraftInfo != nil {
			aircraftTypes[f.AircraftInfo.Manufacturer+" "+f.AircraftInfo.Model]++
		}

		if f.Altitude != nil && *f.Altitude != 0 {
			altSum += *f.Altitude
			altN++
		}
		if f.Velocity != nil && *f.Velocity != 0 {
			velSum += *f.Velocity
			velN++
		}
	}

	s.UniqueCountries = len(countries)
	s.UniqueAirlines = len(airlineCounts)
	s.UniqueAircraftTypes = len(aircraftTypes)
	s.TopCountries = Ranked(countries, topCountries)
	s.TopAircraftTypes = Ranked(aircraftTypes, topAircraftTypes)

	for _, pc := range Ranked(airlineCounts, topAirlines) {
		s.TopAirlines = append(s.TopAirlines, AirlineCount{Airline: airlineInfo[pc.Property], Count: pc.Count})
	}

	if altN > 0 {
		avg := altSum / float64(altN)
		s.AverageAltitude = &avg
	}
	if velN > 0 {
		avg := velSum / float64(velN)
		s.AverageVelocity = &avg
	}
	return s
}
