package models

// LiveStatusStop is one stop on a live running-status timeline.
// A nil delay means the upstream reported nothing for that stop.
type LiveStatusStop struct {
	StationCode    string  `json:"stationCode"`
	StationName    string  `json:"stationName"`
	ArrivalTime    string  `json:"arrivalTime"`
	DepartureTime  string  `json:"departureTime"`
	HaltMinutes    string  `json:"haltMinutes"`
	Distance       string  `json:"distance"`
	Day            int     `json:"day"`
	ArrivalDelay   *string `json:"arrivalDelay"`
	DepartureDelay *string `json:"departureDelay"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
}

// LiveStatusResult is the live running status of a train.
// NextStationIndex, when non-nil, indexes into Stops and denotes the
// first stop strictly after the last stop carrying live delay data.
type LiveStatusResult struct {
	TrainNo          string           `json:"trainNo"`
	TrainName        string           `json:"trainName"`
	Stops            []LiveStatusStop `json:"stops"`
	HasLiveData      bool             `json:"hasLiveData"`
	NextStationIndex *int             `json:"nextStationIndex"`
	Geometry         Geometry         `json:"geometry"`
}
