package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/BRAVO68WEB/railmap-map-india/internal/models"
)

// LiveStatusProvider fetches the live running status of a train.
type LiveStatusProvider interface {
	Status(ctx context.Context, trainNo, date string) (*models.LiveStatusResult, error)
}

// LiveStatusHandler handles HTTP requests for live running status
type LiveStatusHandler struct {
	engine LiveStatusProvider
}

// NewLiveStatusHandler creates a new handler with the given engine
func NewLiveStatusHandler(engine LiveStatusProvider) *LiveStatusHandler {
	return &LiveStatusHandler{engine: engine}
}

// GetLiveStatus handles GET /api/live-status?trainNo=&date=
// date is optional YYYY-MM-DD, defaulting to today.
func (h *LiveStatusHandler) GetLiveStatus(w http.ResponseWriter, r *http.Request) {
	trainNo := r.URL.Query().Get("trainNo")
	if trainNo == "" {
		writeError(w, http.StatusBadRequest, "Missing 'trainNo' parameter")
		return
	}

	date := r.URL.Query().Get("date")
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid 'date' parameter, expected YYYY-MM-DD")
			return
		}
	}

	result, err := h.engine.Status(r.Context(), trainNo, date)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
