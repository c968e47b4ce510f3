package trainroute

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BRAVO68WEB/railmap-map-india/internal/erail"
	"github.com/BRAVO68WEB/railmap-map-india/internal/models"
	"github.com/BRAVO68WEB/railmap-map-india/internal/osrm"
)

type fakeSource struct {
	details    *erail.TrainDetails
	detailsErr error
	stops      []models.TrainRouteStop
	routeErr   error

	routedID string
}

func (f *fakeSource) Details(ctx context.Context, trainNo string) (*erail.TrainDetails, error) {
	return f.details, f.detailsErr
}

func (f *fakeSource) Route(ctx context.Context, internalID string) ([]models.TrainRouteStop, error) {
	f.routedID = internalID
	return f.stops, f.routeErr
}

type fakeRouter struct {
	route     *osrm.Route
	err       error
	waypoints [][]float64
}

func (f *fakeRouter) Route(ctx context.Context, waypoints [][]float64) (*osrm.Route, error) {
	f.waypoints = waypoints
	return f.route, f.err
}

func testDetails() *erail.TrainDetails {
	return &erail.TrainDetails{
		Number:      "12951",
		Name:        "MMCT RAJDHANI",
		Source:      models.StationRef{Code: "NDLS", Name: "New Delhi"},
		Destination: models.StationRef{Code: "BCT", Name: "Mumbai Central"},
		RunDays:     []string{"Sunday", "Monday"},
		Classes:     []string{"1A", "2A", "3A"},
		InternalID:  "4321",
	}
}

func testStops() []models.TrainRouteStop {
	return []models.TrainRouteStop{
		{Seq: 1, Code: "NDLS", Name: "New Delhi", DistanceKm: 0, Lat: 28.64, Lon: 77.22},
		{Seq: 2, Code: "KOTA", Name: "Kota Jn", DistanceKm: 465, Lat: 25.18, Lon: 75.85},
		{Seq: 3, Code: "XNEW", Name: "Unmapped Halt", DistanceKm: 700},
		{Seq: 4, Code: "BCT", Name: "Mumbai Central", DistanceKm: 1386, Lat: 18.97, Lon: 72.82},
	}
}

func TestResolveEnrichesGeometry(t *testing.T) {
	source := &fakeSource{details: testDetails(), stops: testStops()}
	router := &fakeRouter{route: &osrm.Route{
		Geometry: models.NewLineString([][]float64{
			{77.22, 28.64}, {76.5, 27.0}, {75.85, 25.18}, {72.82, 18.97},
		}),
	}}

	result, err := NewEngine(source, router).Resolve(context.Background(), "12951")
	require.NoError(t, err)

	assert.Equal(t, "4321", source.routedID)
	assert.Equal(t, "12951", result.TrainNumber)
	assert.Equal(t, "MMCT RAJDHANI", result.TrainName)
	assert.Equal(t, 1386, result.TotalDistanceKm)
	// The zero-coordinate stop stays listed but is not a waypoint.
	assert.Len(t, result.Stops, 4)
	require.Len(t, router.waypoints, 3)
	assert.Equal(t, []float64{75.85, 25.18}, router.waypoints[1])
	assert.Len(t, result.Geometry.Coordinates, 4)
}

func TestResolveKeepsStraightLineOnRouterFailure(t *testing.T) {
	source := &fakeSource{details: testDetails(), stops: testStops()}
	router := &fakeRouter{err: errors.New("router unreachable")}

	result, err := NewEngine(source, router).Resolve(context.Background(), "12951")
	require.NoError(t, err)

	assert.Equal(t, "LineString", result.Geometry.Type)
	require.Len(t, result.Geometry.Coordinates, 3)
	assert.Equal(t, []float64{77.22, 28.64}, result.Geometry.Coordinates[0])
	assert.Equal(t, []float64{72.82, 18.97}, result.Geometry.Coordinates[2])
}

func TestResolveTrainNotFound(t *testing.T) {
	source := &fakeSource{detailsErr: models.ErrTrainNotFound}

	_, err := NewEngine(source, &fakeRouter{}).Resolve(context.Background(), "99999")
	assert.ErrorIs(t, err, models.ErrTrainNotFound)
}

func TestResolveEmptyRoute(t *testing.T) {
	source := &fakeSource{details: testDetails(), stops: nil}

	_, err := NewEngine(source, &fakeRouter{}).Resolve(context.Background(), "12951")
	assert.ErrorIs(t, err, models.ErrTrainNotFound)
}

func TestResolveSingleMappedStopSkipsRouter(t *testing.T) {
	stops := []models.TrainRouteStop{
		{Seq: 1, Code: "NDLS", DistanceKm: 0, Lat: 28.64, Lon: 77.22},
		{Seq: 2, Code: "XNEW", DistanceKm: 120},
	}
	source := &fakeSource{details: testDetails(), stops: stops}
	router := &fakeRouter{err: errors.New("should not be called")}

	result, err := NewEngine(source, router).Resolve(context.Background(), "12951")
	require.NoError(t, err)

	assert.Nil(t, router.waypoints)
	assert.Len(t, result.Geometry.Coordinates, 1)
	assert.Equal(t, 120, result.TotalDistanceKm)
}
