package models

import (
	"errors"
	"fmt"
)

// Domain errors shared across engines. Handlers classify responses with
// errors.Is / errors.As against these.
var (
	// ErrRouteUnavailable means every routing source failed for a pair.
	ErrRouteUnavailable = errors.New("could not find route: all routing sources failed")

	// ErrTrainNotFound means a train number resolved to no upstream record.
	ErrTrainNotFound = errors.New("train not found")

	// ErrNoScheduleData means a live-status page decoded to an empty schedule.
	ErrNoScheduleData = errors.New("no schedule data found")

	// ErrParse means an upstream payload changed shape or is unparseable.
	ErrParse = errors.New("failed to parse upstream payload")

	// ErrUpstreamUnavailable means a scraped source returned a network
	// error, a timeout, or a non-success HTTP status.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// StationNotFoundError reports a station code that did not resolve
// against the station database.
type StationNotFoundError struct {
	Code string
}

func (e *StationNotFoundError) Error() string {
	return fmt.Sprintf("station not found: %s", e.Code)
}
