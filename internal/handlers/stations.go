package handlers

import (
	"context"
	"net/http"

	"github.com/BRAVO68WEB/railmap-map-india/internal/models"
)

// StationSearcher finds stations matching a free-text query.
type StationSearcher interface {
	Search(ctx context.Context, q string) ([]models.Station, error)
}

// StationsHandler handles HTTP requests for station search
type StationsHandler struct {
	directory StationSearcher
}

// NewStationsHandler creates a new handler with the given directory
func NewStationsHandler(directory StationSearcher) *StationsHandler {
	return &StationsHandler{directory: directory}
}

// SearchStations handles GET /api/stations/search?q=
// Queries shorter than 2 characters return an empty list.
func (h *StationsHandler) SearchStations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if len(q) < 2 {
		writeJSON(w, http.StatusOK, []models.Station{})
		return
	}

	stations, err := h.directory.Search(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	writeJSON(w, http.StatusOK, stations)
}
