package osrm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRoute(t *testing.T) {
	var requestedPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Write([]byte(`{
			"code": "Ok",
			"routes": [{
				"geometry": {"type": "LineString", "coordinates": [[77.21, 28.64], [72.81, 18.97]]},
				"distance": 1411000.5,
				"duration": 57600
			}]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	route, err := client.Route(context.Background(), [][]float64{
		{77.2197, 28.6419},
		{72.8194, 18.9712},
	})
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}

	if !strings.HasPrefix(requestedPath, "/route/v1/train/") {
		t.Errorf("request path = %q, want the train profile", requestedPath)
	}
	if route.Geometry.Type != "LineString" || len(route.Geometry.Coordinates) != 2 {
		t.Errorf("unexpected geometry: %+v", route.Geometry)
	}
	if route.DistanceMeters != 1411000.5 {
		t.Errorf("DistanceMeters = %v, want 1411000.5", route.DistanceMeters)
	}
	if route.DurationSeconds != 57600 {
		t.Errorf("DurationSeconds = %v, want 57600", route.DurationSeconds)
	}
}

func TestRouteWaypointOrder(t *testing.T) {
	var requestedPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Write([]byte(`{"code": "Ok", "routes": [{"geometry": {"type": "LineString", "coordinates": []}, "distance": 1, "duration": 1}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Route(context.Background(), [][]float64{
		{77.1, 28.1},
		{77.2, 28.2},
		{77.3, 28.3},
	})
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}

	// Waypoints must appear in order as lon,lat pairs.
	want := "/route/v1/train/77.1,28.1;77.2,28.2;77.3,28.3"
	if requestedPath != want {
		t.Errorf("request path = %q, want %q", requestedPath, want)
	}
}

func TestRouteNoRouteFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.Route(context.Background(), [][]float64{{1, 2}, {3, 4}}); err == nil {
		t.Fatal("expected error for NoRoute response")
	}
}

func TestRouteHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.Route(context.Background(), [][]float64{{1, 2}, {3, 4}}); err == nil {
		t.Fatal("expected error for HTTP 502")
	}
}

func TestRouteTooFewWaypoints(t *testing.T) {
	client := NewClient("http://localhost:1")
	if _, err := client.Route(context.Background(), [][]float64{{1, 2}}); err == nil {
		t.Fatal("expected error for a single waypoint")
	}
}
