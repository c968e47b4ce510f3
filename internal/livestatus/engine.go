// Package livestatus derives a train's live running status: the stop
// timeline with per-stop delay data, the next upcoming station, and a
// map geometry with coordinates backfilled from the station database.
package livestatus

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/BRAVO68WEB/railmap-map-india/internal/confirmtkt"
	"github.com/BRAVO68WEB/railmap-map-india/internal/models"
	"github.com/BRAVO68WEB/railmap-map-india/internal/osrm"
)

// StatusSource fetches the scraped running-status page.
type StatusSource interface {
	RunningStatus(ctx context.Context, trainNo, date string) (*confirmtkt.StatusPage, error)
}

// StationLookup batch-resolves station codes to coordinates.
type StationLookup interface {
	ByCodes(ctx context.Context, codes []string) (map[string]models.Station, error)
}

// GeometricRouter resolves a travel path through ordered [lon, lat]
// waypoints.
type GeometricRouter interface {
	Route(ctx context.Context, waypoints [][]float64) (*osrm.Route, error)
}

// Engine is the live status engine.
type Engine struct {
	source   StatusSource
	stations StationLookup
	router   GeometricRouter
	now      func() time.Time
}

// NewEngine creates a live status engine.
func NewEngine(source StatusSource, stations StationLookup, router GeometricRouter) *Engine {
	return &Engine{source: source, stations: stations, router: router, now: time.Now}
}

// delayPresent reports whether a scraped delay value actually carries
// data. The upstream uses several sentinel strings for "nothing yet".
func delayPresent(delay *string) bool {
	if delay == nil {
		return false
	}
	switch *delay {
	case "", "-", "--", "null":
		return false
	}
	return true
}

// Status fetches the live running status of a train for a date in
// YYYY-MM-DD form; an empty date means today.
//
// A stop carries live data when either of its delay fields is present.
// The next station is the stop immediately after the last one carrying
// live data, unless that was the final stop.
func (e *Engine) Status(ctx context.Context, trainNo, date string) (*models.LiveStatusResult, error) {
	if date == "" {
		date = e.now().Format("2006-01-02")
	}

	page, err := e.source.RunningStatus(ctx, trainNo, date)
	if err != nil {
		return nil, err
	}
	if len(page.Schedule) == 0 {
		return nil, fmt.Errorf("no schedule for train %s on %s: %w", trainNo, date, models.ErrNoScheduleData)
	}

	hasLiveData := false
	lastDelayIndex := -1

	stops := make([]models.LiveStatusStop, len(page.Schedule))
	for i, s := range page.Schedule {
		if delayPresent(s.ArrivalDelay) || delayPresent(s.DepartureDelay) {
			hasLiveData = true
			lastDelayIndex = i
		}

		day := s.Day
		if day < 1 {
			day = 1
		}
		halt := s.HaltMinutes
		if halt == "" {
			halt = "--"
		}
		distance := s.Distance
		if distance == "" {
			distance = "0"
		}

		stops[i] = models.LiveStatusStop{
			StationCode:    s.StationCode,
			StationName:    s.StationName,
			ArrivalTime:    s.ArrivalTime,
			DepartureTime:  s.DepartureTime,
			HaltMinutes:    halt,
			Distance:       distance,
			Day:            day,
			ArrivalDelay:   s.ArrivalDelay,
			DepartureDelay: s.DepartureDelay,
			Lat:            s.Latitude,
			Lon:            s.Longitude,
		}
	}

	if err := e.backfillCoordinates(ctx, stops); err != nil {
		return nil, err
	}

	var nextStationIndex *int
	if hasLiveData && lastDelayIndex < len(stops)-1 {
		next := lastDelayIndex + 1
		nextStationIndex = &next
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
			log.Printf("livestatus: geometry enrichment failed for %s, keeping straight line: %v", trainNo, err)
		}
	}

	return &models.LiveStatusResult{
		TrainNo:          trainNo,
		TrainName:        page.TrainName,
		Stops:            stops,
		HasLiveData:      hasLiveData,
		NextStationIndex: nextStationIndex,
		Geometry:         geometry,
	}, nil
}

// backfillCoordinates patches stops scraped with (0,0) coordinates from
// the station database in one batched lookup. Codes with no match keep
// (0,0) and are later excluded from geometry.
func (e *Engine) backfillCoordinates(ctx context.Context, stops []models.LiveStatusStop) error {
	var missing []string
	for _, s := range stops {
		if s.Lat == 0 || s.Lon == 0 {
			missing = append(missing, s.StationCode)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	known, err := e.stations.ByCodes(ctx, missing)
	if err != nil {
		return fmt.Errorf("coordinate backfill failed: %w", err)
	}

	for i := range stops {
		if stops[i].Lat != 0 && stops[i].Lon != 0 {
			continue
		}
		if s, ok := known[strings.ToUpper(stops[i].StationCode)]; ok {
			stops[i].Lat = s.Lat
			stops[i].Lon = s.Lon
		}
	}
	return nil
}
