package model

// AirlineRecord is an airline as returned by the reference endpoint.
type AirlineRecord struct {
	Name     string `json:"airline"`
	IATA     string `json:"iata"`
	ICAO     string `json:"icao"`
	Callsign string `json:"callsign"`
	Country  string `json:"country"`
	Comments string `json:"comments,omitempty"`
}

// AirlineInfo is the airline part of an enriched flight.
type AirlineInfo struct {
	Name     string `json:"name"`
	IATA     string `json:"iata"`
	ICAO     string `json:"icao"`
	Callsign string `json:"callsign"`
	Country  string `json:"country"`
	Comments string `json:"comments,omitempty"`
}

// Info copies the record into the shape attached to enriched flights.
func (a *AirlineRecord) Info() *AirlineInfo {
	return &AirlineInfo{
		Name:     a.Name,
		IATA:     a.IATA,
		ICAO:     a.ICAO,
		Callsign: a.Callsign,
		Country:  a.Country,
		Comments: a.Comments,
	}
}

// AircraftRecord is an aircraft type as returned by the reference endpoint.
type AircraftRecord struct {
	Model        string `json:"model"`
	Manufacturer string `json:"manufacturer"`
	Type         string `json:"type"`
	WingType     string `json:"wing_type"`
	ICAOCode     string `json:"icao_code"`
	IATACode     string `json:"iata_code"`
}

// AircraftInfo is the aircraft part of an enriched flight.
type AircraftInfo struct {
	Model        string `json:"model"`
	Manufacturer string `json:"manufacturer"`
	Type         string `json:"type"`
	WingType     string `json:"wingType"`
	ICAOCode     string `json:"icaoCode"`
	IATACode     string `json:"iataCode"`
}

// Info copies the record into the shape attached to enriched flights.
func (a *AircraftRecord) Info() *AircraftInfo {
	return &AircraftInfo{
		Model:        a.Model,
		Manufacturer: a.Manufacturer,
		Type:         a.Type,
		WingType:     a.WingType,
		ICAOCode:     a.ICAOCode,
		IATACode:     a.IATACode,
	}
}

// Country is a row of the countries endpoint.
type Country struct {
	Name      string `json:"name"`
	Code      string `json:"code"`
	Continent string `json:"continent"`
}

// DelayPrediction is the prediction API's answer for one flight.
type DelayPrediction struct {
	Callsign              string   `json:"callsign"`
	DelayProbability      float64  `json:"delay_probability"`
	IsDelayed             bool     `json:"is_delayed"`
	Classification        string   `json:"classification,omitempty"`
	EstimatedDelayMinutes *float64 `json:"estimated_delay_minutes,omitempty"`
	Confidence            *float64 `json:"confidence,omitempty"`
}
