package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/BRAVO68WEB/railmap-map-india/internal/models"
)

// RouteResolver resolves a route between two station codes.
type RouteResolver interface {
	Resolve(ctx context.Context, fromCode, toCode string) (*models.RouteResult, error)
}

// RouteHandler handles HTTP requests for station-to-station routes
type RouteHandler struct {
	engine RouteResolver
}

// NewRouteHandler creates a new handler with the given engine
func NewRouteHandler(engine RouteResolver) *RouteHandler {
	return &RouteHandler{engine: engine}
}

// GetRoute handles GET /api/route?from=&to=
func (h *RouteHandler) GetRoute(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "Missing 'from' and 'to' station codes")
		return
	}
	if strings.EqualFold(from, to) {
		writeError(w, http.StatusBadRequest, "Source and destination cannot be the same")
		return
	}

	result, err := h.engine.Resolve(r.Context(), from, to)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
