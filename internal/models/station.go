package models

// Station is a railway station as stored in the station database.
// Codes are uppercase and unique.
type Station struct {
	Code string  `json:"code"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// StationRef is a lightweight station reference carried by train data
// that has no coordinates attached.
type StationRef struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
