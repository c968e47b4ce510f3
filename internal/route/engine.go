// Package route resolves a railway path between two stations by
// combining the geometric router with the shortest-path authority
// under a deterministic fallback policy.
package route

import (
	"context"
	"log"
	"math"
	"sync"

	"github.com/BRAVO68WEB/railmap-map-india/internal/models"
	"github.com/BRAVO68WEB/railmap-map-india/internal/osrm"
)

// StationDirectory is the subset of the station database the engine
// needs.
type StationDirectory interface {
	ByCode(ctx context.Context, code string) (*models.Station, error)
	Corridor(ctx context.Context, geom models.Geometry, fromCode, toCode string) ([]models.Station, error)
}

// GeometricRouter resolves a travel path through ordered [lon, lat]
// waypoints.
type GeometricRouter interface {
	Route(ctx context.Context, waypoints [][]float64) (*osrm.Route, error)
}

// AuthorityClient resolves the authoritative shortest rail path between
// two station codes.
type AuthorityClient interface {
	ShortestPath(ctx context.Context, from, to string) (*models.AuthorityRoute, error)
}

// Engine is the route resolution engine. It is stateless and safe for
// concurrent use.
type Engine struct {
	stations  StationDirectory
	router    GeometricRouter
	authority AuthorityClient
}

// NewEngine creates a route resolution engine.
func NewEngine(stations StationDirectory, router GeometricRouter, authority AuthorityClient) *Engine {
	return &Engine{stations: stations, router: router, authority: authority}
}

// Resolve finds a route between two station codes.
//
// The geometric router and the shortest-path authority are queried
// concurrently and each may fail independently. Router success always
// wins; the authority route is a pure fallback and, when the router
// succeeded, is attached only as cross-reference data. When every
// source fails the operation fails with ErrRouteUnavailable.
func (e *Engine) Resolve(ctx context.Context, fromCode, toCode string) (*models.RouteResult, error) {
	from, err := e.lookupStation(ctx, fromCode)
	if err != nil {
		return nil, err
	}
	to, err := e.lookupStation(ctx, toCode)
	if err != nil {
		return nil, err
	}

	var (
		wg        sync.WaitGroup
		geoRoute  *osrm.Route
		geoErr    error
		authority *models.AuthorityRoute
		authErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		geoRoute, geoErr = e.router.Route(ctx, [][]float64{
			{from.Lon, from.Lat},
			{to.Lon, to.Lat},
		})
	}()
	go func() {
		defer wg.Done()
		authority, authErr = e.authority.ShortestPath(ctx, from.Code, to.Code)
	}()
	wg.Wait()

	if geoErr != nil {
		log.Printf("route: geometric router failed for %s-%s: %v", from.Code, to.Code, geoErr)
		geoRoute = nil
	}
	if authErr != nil {
		log.Printf("route: shortest-path authority failed for %s-%s: %v", from.Code, to.Code, authErr)
		authority = nil
	}

	if geoRoute != nil {
		corridor, err := e.stations.Corridor(ctx, geoRoute.Geometry, from.Code, to.Code)
		if err != nil {
			return nil, err
		}

		duration := round1(geoRoute.DurationSeconds / 3600)
		return &models.RouteResult{
			Geometry:             geoRoute.Geometry,
			DistanceKm:           round1(geoRoute.DistanceMeters / 1000),
			DurationHours:        &duration,
			From:                 *from,
			To:                   *to,
			IntermediateStations: corridor,
			RBSRoute:             authority,
			RouteSource:          models.RouteSourcePrimary,
		}, nil
	}

	if authority != nil && len(authority.Stations) >= 2 {
		coordinates := make([][]float64, len(authority.Stations))
		for i, s := range authority.Stations {
			coordinates[i] = []float64{s.Lon, s.Lat}
		}

		intermediate := []models.Station{}
		for _, s := range authority.Stations[1 : len(authority.Stations)-1] {
			intermediate = append(intermediate, models.Station{
				Code: s.Code,
				Name: s.Name,
				Lat:  s.Lat,
				Lon:  s.Lon,
			})
		}

		return &models.RouteResult{
			Geometry:             models.NewLineString(coordinates),
			DistanceKm:           authority.TotalDistanceKm,
			DurationHours:        nil, // the authority source carries no timing data
			From:                 *from,
			To:                   *to,
			IntermediateStations: intermediate,
			RBSRoute:             authority,
			RouteSource:          models.RouteSourceFallback,
		}, nil
	}

	return nil, models.ErrRouteUnavailable
}

func (e *Engine) lookupStation(ctx context.Context, code string) (*models.Station, error) {
	station, err := e.stations.ByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if station == nil {
		return nil, &models.StationNotFoundError{Code: code}
	}
	return station, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
