// Package trainroute resolves a train's full stop list through the
// two-stage legacy lookup (metadata record, then route record stream)
// and enriches the geometry through the geometric router.
package trainroute

import (
	"context"
	"fmt"
	"log"

	"github.com/BRAVO68WEB/railmap-map-india/internal/erail"
	"github.com/BRAVO68WEB/railmap-map-india/internal/models"
	"github.com/BRAVO68WEB/railmap-map-india/internal/osrm"
)

// TrainSource is the legacy record API the engine reads from.
type TrainSource interface {
	Details(ctx context.Context, trainNo string) (*erail.TrainDetails, error)
	Route(ctx context.Context, internalID string) ([]models.TrainRouteStop, error)
}

// GeometricRouter resolves a travel path through ordered [lon, lat]
// waypoints.
type GeometricRouter interface {
	Route(ctx context.Context, waypoints [][]float64) (*osrm.Route, error)
}

// Engine is the train route resolution engine.
type Engine struct {
	source TrainSource
	router GeometricRouter
}

// NewEngine creates a train route resolution engine.
func NewEngine(source TrainSource, router GeometricRouter) *Engine {
	return &Engine{source: source, router: router}
}

// Resolve looks up the full route for a train number.
//
// Stops with zero coordinates stay in the stop list for display but are
// excluded from geometry. When at least two stops carry coordinates the
// straight-line polyline is upgraded to a detailed path routed through
// every coordinate as a waypoint; that enrichment is best-effort and
// silently degrades back to the straight line.
func (e *Engine) Resolve(ctx context.Context, trainNo string) (*models.TrainRouteResult, error) {
	details, err := e.source.Details(ctx, trainNo)
	if err != nil {
		return nil, err
	}

	stops, err := e.source.Route(ctx, details.InternalID)
	if err != nil {
		return nil, err
	}
	if len(stops) == 0 {
		return nil, fmt.Errorf("no route data for train %s: %w", trainNo, models.ErrTrainNotFound)
	}

	coordinates := [][]float64{}
	for _, s := range stops {
		if s.Lat != 0 && s.Lon != 0 {
			coordinates = append(coordinates, []float64{s.Lon, s.Lat})
		}
	}

	geometry := models.NewLineString(coordinates)
	if len(coordinates) >= 2 {
		if detailed, err := e.router.Route(ctx, coordinates); err == nil {
			geometry = detailed.Geometry
		} else {
			log.Printf("trainroute: geometry enrichment failed for %s, keeping straight line: %v", trainNo, err)
		}
	}

	return &models.TrainRouteResult{
		TrainNumber:     trainNo,
		TrainName:       details.Name,
		Source:          details.Source,
		Destination:     details.Destination,
		RunDays:         details.RunDays,
		Classes:         details.Classes,
		Stops:           stops,
		Geometry:        geometry,
		TotalDistanceKm: stops[len(stops)-1].DistanceKm,
	}, nil
}
