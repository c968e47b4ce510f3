package handlers

import (
	"context"
	"net/http"

	"github.com/BRAVO68WEB/railmap-map-india/internal/models"
)

// TrainLister aggregates train listings between two stations.
type TrainLister interface {
	Search(ctx context.Context, from, to string) []models.Train
}

// TrainSearcher provides typeahead suggestions for train numbers.
type TrainSearcher interface {
	Search(ctx context.Context, query string) ([]models.TrainSuggestion, error)
}

// TrainRouteResolver resolves a train's full stop list and geometry.
type TrainRouteResolver interface {
	Resolve(ctx context.Context, trainNo string) (*models.TrainRouteResult, error)
}

// TrainsHandler handles HTTP requests for train listings, suggestions,
// and train routes
type TrainsHandler struct {
	lister   TrainLister
	searcher TrainSearcher
	routes   TrainRouteResolver
}

// NewTrainsHandler creates a new handler with the given engines
func NewTrainsHandler(lister TrainLister, searcher TrainSearcher, routes TrainRouteResolver) *TrainsHandler {
	return &TrainsHandler{lister: lister, searcher: searcher, routes: routes}
}

// ListTrainsResponse is the JSON response structure for GET /api/trains
type ListTrainsResponse struct {
	Trains []models.Train `json:"trains"`
}

// ListTrains handles GET /api/trains?from=&to=
// Listings are advisory: the aggregator never fails, at worst the
// response carries an empty list.
func (h *TrainsHandler) ListTrains(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "Missing 'from' and 'to' station codes")
		return
	}

	trains := h.lister.Search(r.Context(), from, to)
	writeJSON(w, http.StatusOK, ListTrainsResponse{Trains: trains})
}

// SearchTrains handles GET /api/trains/search?q=
func (h *TrainsHandler) SearchTrains(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "Missing 'q' parameter")
		return
	}

	suggestions, err := h.searcher.Search(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Train search failed")
		return
	}

	writeJSON(w, http.StatusOK, suggestions)
}

// GetTrainRoute handles GET /api/trains/route?trainNo=
func (h *TrainsHandler) GetTrainRoute(w http.ResponseWriter, r *http.Request) {
	trainNo := r.URL.Query().Get("trainNo")
	if trainNo == "" {
		writeError(w, http.StatusBadRequest, "Missing 'trainNo' parameter")
		return
	}

	result, err := h.routes.Resolve(r.Context(), trainNo)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
