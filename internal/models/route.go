package models

// Route sources for RouteResult. The geometric router is always the
// primary source; the shortest-path authority is a pure fallback.
const (
	RouteSourcePrimary  = "primary"
	RouteSourceFallback = "fallback"
)

// AuthorityStation is one station on a shortest-path authority route.
// DistanceKm is cumulative from the origin.
type AuthorityStation struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	DistanceKm float64 `json:"distance_km"`
	Gauge      string  `json:"gauge"`
}

// AuthorityRoute is the ordered station list returned by the
// shortest-path authority.
type AuthorityRoute struct {
	Stations        []AuthorityStation `json:"stations"`
	TotalDistanceKm float64            `json:"total_distance_km"`
	FromCode        string             `json:"from_code"`
	ToCode          string             `json:"to_code"`
}

// RouteResult is the resolved route between two stations.
// RouteSource records which engine produced Geometry and DistanceKm;
// RBSRoute, when present, is informational cross-reference data.
type RouteResult struct {
	Geometry             Geometry        `json:"geometry"`
	DistanceKm           float64         `json:"distance_km"`
	DurationHours        *float64        `json:"duration_hours"`
	From                 Station         `json:"from"`
	To                   Station         `json:"to"`
	IntermediateStations []Station       `json:"intermediate_stations"`
	RBSRoute             *AuthorityRoute `json:"rbs_route"`
	RouteSource          string          `json:"route_source"`
}
