package models

// Train listing source tags.
const (
	SourceRailYatri = "railyatri"
	SourceErail     = "erail"
)

// TrainEndpoint is the boarding or alighting end of a listed train.
type TrainEndpoint struct {
	Code      string `json:"code"`
	Departure string `json:"departure,omitempty"`
	Arrival   string `json:"arrival,omitempty"`
}

// Train is one entry in a trains-between-stations listing.
// Number is the identity key within a listing.
type Train struct {
	Number     string        `json:"number"`
	Name       string        `json:"name"`
	From       TrainEndpoint `json:"from"`
	To         TrainEndpoint `json:"to"`
	Duration   string        `json:"duration"`
	DistanceKm *float64      `json:"distance_km"`
	RunDays    []string      `json:"run_days"`
	Classes    []string      `json:"classes"`
	Source     string        `json:"source"`
}

// TrainSuggestion is a typeahead match for a train number search.
type TrainSuggestion struct {
	Number      string `json:"number"`
	DisplayText string `json:"displayText"`
}

// TrainRouteStop is one scheduled stop on a train's full route.
// DistanceKm is cumulative from the origin; Day is the elapsed-day
// counter starting at 1.
type TrainRouteStop struct {
	Seq        int     `json:"seq"`
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Arrival    string  `json:"arrival"`
	Departure  string  `json:"departure"`
	HaltMins   string  `json:"halt_mins"`
	DistanceKm int     `json:"distance_km"`
	Day        int     `json:"day"`
	Platform   string  `json:"platform"`
	Zone       string  `json:"zone"`
	Division   string  `json:"division"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
}

// TrainRouteResult is the full resolved route of a single train.
type TrainRouteResult struct {
	TrainNumber     string           `json:"train_number"`
	TrainName       string           `json:"train_name"`
	Source          StationRef       `json:"source"`
	Destination     StationRef       `json:"destination"`
	RunDays         []string         `json:"run_days"`
	Classes         []string         `json:"classes"`
	Stops           []TrainRouteStop `json:"stops"`
	Geometry        Geometry         `json:"geometry"`
	TotalDistanceKm int              `json:"total_distance_km"`
}
