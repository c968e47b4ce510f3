// Package osrm is a client for the geometric routing engine. It routes
// between two coordinates or through an ordered waypoint list using the
// rail profile.
package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/BRAVO68WEB/railmap-map-india/internal/models"
)

const (
	// pairTimeout bounds the simple two-point route lookup.
	pairTimeout = 5 * time.Second
	// waypointTimeout bounds multi-waypoint enrichment calls, which carry
	// much heavier payloads.
	waypointTimeout = 10 * time.Second
)

// Route is a resolved path between coordinates.
type Route struct {
	Geometry        models.Geometry
	DistanceMeters  float64
	DurationSeconds float64
}

// Client calls the routing engine over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a routing client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: waypointTimeout,
		},
	}
}

// rawResponse is the routing engine's response shape.
type rawResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry models.Geometry `json:"geometry"`
		Distance float64         `json:"distance"`
		Duration float64         `json:"duration"`
	} `json:"routes"`
}

// Route resolves a path through the given [lon, lat] waypoints in
// order. Two waypoints give a plain origin-destination route; more give
// a path constrained through every intermediate point.
func (c *Client) Route(ctx context.Context, waypoints [][]float64) (*Route, error) {
	if len(waypoints) < 2 {
		return nil, fmt.Errorf("need at least 2 waypoints, got %d", len(waypoints))
	}

	timeout := pairTimeout
	if len(waypoints) > 2 {
		timeout = waypointTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	parts := make([]string, len(waypoints))
	for i, wp := range waypoints {
		parts[i] = strconv.FormatFloat(wp[0], 'f', -1, 64) + "," + strconv.FormatFloat(wp[1], 'f', -1, 64)
	}
	url := fmt.Sprintf("%s/route/v1/train/%s?overview=full&geometries=geojson",
		c.baseURL, strings.Join(parts, ";"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch route: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("routing engine returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var raw rawResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if raw.Code != "Ok" || len(raw.Routes) == 0 {
		return nil, fmt.Errorf("no route found (%s)", raw.Code)
	}

	r := raw.Routes[0]
	return &Route{
		Geometry:        r.Geometry,
		DistanceMeters:  r.Distance,
		DurationSeconds: r.Duration,
	}, nil
}
