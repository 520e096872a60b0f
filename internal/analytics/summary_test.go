package analytics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeonjoon13/flight-dashboard/internal/model"
)

func ptr[T any](v T) *T { return &v }

func flight(country string, onGround bool, airline *model.AirlineRecord, aircraft *model.AircraftRecord, alt, vel *float64) model.EnrichedFlight {
	return model.Enrich(model.FlightState{
		OriginCountry: country,
		OnGround:      model.Flag(onGround),
		BaroAltitude:  alt,
		Velocity:      vel,
	}, airline, aircraft)
}

func TestRanked(t *testing.T) {
	tests := []struct {
		name     string
		input    map[string]int
		n        int
		expected []PropertyCount
	}{
		{
			name:     "empty map",
			input:    map[string]int{},
			expected: []PropertyCount{},
		},
		{
			name:  "most common first",
			input: map[string]int{"one": 1, "three": 3, "two": 2},
			expected: []PropertyCount{
				{Property: "three", Count: 3},
				{Property: "two", Count: 2},
				{Property: "one", Count: 1},
			},
		},
		{
			name:  "ties broken by name",
			input: map[string]int{"c": 1, "a": 1, "b": 2},
			expected: []PropertyCount{
				{Property: "b", Count: 2},
				{Property: "a", Count: 1},
				{Property: "c", Count: 1},
			},
		},
		{
			name:  "truncated",
			input: map[string]int{"a": 5, "b": 4, "c": 3},
			n:     2,
			expected: []PropertyCount{
				{Property: "a", Count: 5},
				{Property: "b", Count: 4},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Ranked(tc.input, tc.n))
		})
	}
}

func TestSummarize(t *testing.T) {
	afr := &model.AirlineRecord{Name: "Air France", ICAO: "AFR", Country: "France"}
	dlh := &model.AirlineRecord{Name: "Lufthansa", ICAO: "DLH", Country: "Germany"}
	a320 := &model.AircraftRecord{Manufacturer: "Airbus", Model: "A320"}

	flights := []model.EnrichedFlight{
		flight("France", false, afr, a320, ptr(10000.0), ptr(200.0)),
		flight("France", false, afr, nil, ptr(8000.0), ptr(0.0)),
		flight("Germany", true, dlh, a320, nil, nil),
		flight("Spain", true, nil, nil, ptr(0.0), ptr(100.0)),
	}

	s := Summarize(flights)
	assert.Equal(t, 4, s.TotalFlights)
	assert.Equal(t, 2, s.InFlight)
	assert.Equal(t, 2, s.OnGround)
	assert.Equal(t, map[string]int{model.StatusInFlight: 2, model.StatusOnGround: 2}, s.StatusDistribution)
	assert.Equal(t, 3, s.UniqueCountries)
	assert.Equal(t, 2, s.UniqueAirlines)
	assert.Equal(t, 1, s.UniqueAircraftTypes)

	require.Len(t, s.TopCountries, 3)
	assert.Equal(t, PropertyCount{Property: "France", Count: 2}, s.TopCountries[0])

	require.Len(t, s.TopAirlines, 2)
	assert.Equal(t, "Air France", s.TopAirlines[0].Airline.Name)
	assert.Equal(t, "AFR", s.TopAirlines[0].Airline.ICAO)
	assert.Equal(t, 2, s.TopAirlines[0].Count)

	assert.Equal(t, []PropertyCount{{Property: "Airbus A320", Count: 2}}, s.TopAircraftTypes)

	require.NotNil(t, s.AverageAltitude)
	assert.InDelta(t, 9000.0, *s.AverageAltitude, 0.001)
	require.NotNil(t, s.AverageVelocity)
	assert.InDelta(t, 150.0, *s.AverageVelocity, 0.001)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.TotalFlights)
	assert.Nil(t, s.AverageAltitude)
	assert.Nil(t, s.AverageVelocity)
	assert.Empty(t, s.TopAirlines)
}

func TestSummarizeTopCountriesCapped(t *testing.T) {
	var flights []model.EnrichedFlight
	for i := 0; i < 15; i++ {
		flights = append(flights, flight(fmt.Sprintf("country-%02d", i), false, nil, nil, nil, nil))
	}
	s := Summarize(flights)
	assert.Equal(t, 15, s.UniqueCountries)
	assert.Len(t, s.TopCountries, 10)
}
