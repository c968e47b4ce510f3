package models

// Geometry is a GeoJSON LineString. Coordinates are [lon, lat] pairs
// ordered along the travel path.
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

// NewLineString builds a LineString geometry from [lon, lat] pairs.
func NewLineString(coordinates [][]float64) Geometry {
	if coordinates == nil {
		coordinates = [][]float64{}
	}
	return Geometry{Type: "LineString", Coordinates: coordinates}
}
