package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/BRAVO68WEB/railmap-map-india/internal/models"
)

// ErrorResponse is the JSON error response structure
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeEngineError maps a domain error to its response class:
// user-correctable not-found errors become 404, everything else 500.
func writeEngineError(w http.ResponseWriter, err error) {
	var notFound *models.StationNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, models.ErrTrainNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
