package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeonjoon13/flight-dashboard/internal/model"
)

func TestResolveAirline(t *testing.T) {
	airlines := []model.AirlineRecord{
		{Name: "Speedbird Charter", ICAO: "", Callsign: "AFR1234", Country: "United Kingdom"},
		{Name: "Air France", ICAO: "AFR", Callsign: "AIRFRANS", Country: "France"},
		{Name: "Transavia France", ICAO: "TVF", Callsign: "FRANCE SOLEIL", Country: "France"},
		{Name: "easyJet", ICAO: "EZY", Callsign: "EASY", Country: "United Kingdom"},
	}

	tests := []struct {
		name     string
		callsign string
		country  string
		want     string
	}{
		{name: "exact callsign wins over icao prefix", callsign: "afr1234", country: "France", want: "Speedbird Charter"},
		{name: "icao prefix", callsign: "AFR1235", country: "", want: "Air France"},
		{name: "icao prefix ignores case and padding", callsign: "  ezy81ab ", country: "", want: "easyJet"},
		{name: "country fallback, first in list", callsign: "XYZ9", country: "FRANCE", want: "Air France"},
		{name: "short callsign skips prefix rule", callsign: "EZ", country: "united kingdom", want: "Speedbird Charter"},
		{name: "no match", callsign: "QQQ1", country: "Peru", want: ""},
		{name: "no match without country", callsign: "QQQ1", country: "", want: ""},
		{name: "empty callsign", callsign: "", country: "France", want: ""},
		{name: "blank callsign", callsign: "   ", country: "France", want: ""},
	}

	var r HeuristicResolver
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := r.ResolveAirline(airlines, tc.callsign, tc.country)
			if tc.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.want, got.Name)
		})
	}
}

func TestResolveAirlineICAOFallback(t *testing.T) {
	// No record's callsign equals the flight callsign, so the ICAO rule decides.
	airlines := []model.AirlineRecord{
		{Name: "Air France", ICAO: "AFR", Callsign: "AIRFRANS", Country: "France"},
	}
	got := HeuristicResolver{}.ResolveAirline(airlines, "AFR1234", "France")
	require.NotNil(t, got)
	assert.Equal(t, "AFR", got.ICAO)
}

func TestResolveAirlineEmptyList(t *testing.T) {
	assert.Nil(t, HeuristicResolver{}.ResolveAirline(nil, "AFR1234", "France"))
}

func TestResolveAircraft(t *testing.T) {
	aircraft := []model.AircraftRecord{
		{Model: "no code", ICAOCode: ""},
		{Model: "A320", Manufacturer: "Airbus", ICAOCode: "A320"},
		{Model: "A3", Manufacturer: "Airbus", ICAOCode: "a3"},
	}

	tests := []struct {
		name   string
		icao24 string
		want   string
	}{
		{name: "prefix match", icao24: "a320ff", want: "A320"},
		{name: "case insensitive", icao24: "A320FF", want: "A320"},
		{name: "shorter code later in list", icao24: "a3ffff", want: "A3"},
		{name: "no match", icao24: "4ca7b4", want: ""},
		{name: "empty address", icao24: "", want: ""},
	}

	var r HeuristicResolver
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := r.ResolveAircraft(aircraft, tc.icao24)
			if tc.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.want, got.Model)
		})
	}
}
