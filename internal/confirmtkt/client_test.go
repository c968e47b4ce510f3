package confirmtkt

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BRAVO68WEB/railmap-map-india/internal/models"
)

const statusHTML = `<html><head><script>
var other = 1;
var data = {"TrainName":"Mumbai Rajdhani","Schedule":[{"StationCode":"NDLS","StationName":"New Delhi","ArrivalTime":"Source","DepartureTime":"16:55","HaltMinutes":"--","Distance":"0","Day":1,"arrivalDelay":null,"departureDelay":"5 Min","Latitude":28.6419,"Longitude":77.2197}]};
</script></head><body></body></html>`

func TestRunningStatus(t *testing.T) {
	var gotPath, gotDate string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotDate = r.URL.Query().Get("Date")
		w.Write([]byte(statusHTML))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	page, err := client.RunningStatus(context.Background(), "12951", "2024-03-05")
	if err != nil {
		t.Fatalf("RunningStatus failed: %v", err)
	}

	if gotPath != "/train-running-status/12951" {
		t.Errorf("path = %q", gotPath)
	}
	// The upstream wants DD-Mon-YYYY.
	if gotDate != "05-Mar-2024" {
		t.Errorf("Date = %q, want 05-Mar-2024", gotDate)
	}

	if page.TrainName != "Mumbai Rajdhani" {
		t.Errorf("TrainName = %q", page.TrainName)
	}
	if len(page.Schedule) != 1 {
		t.Fatalf("got %d schedule stops, want 1", len(page.Schedule))
	}

	stop := page.Schedule[0]
	if stop.StationCode != "NDLS" || stop.Latitude != 28.6419 {
		t.Errorf("unexpected stop: %+v", stop)
	}
	if stop.ArrivalDelay != nil {
		t.Errorf("ArrivalDelay = %v, want nil", *stop.ArrivalDelay)
	}
	if stop.DepartureDelay == nil || *stop.DepartureDelay != "5 Min" {
		t.Errorf("DepartureDelay = %v", stop.DepartureDelay)
	}
}

func TestRunningStatusInvalidDate(t *testing.T) {
	client := NewClient("http://localhost:1")
	if _, err := client.RunningStatus(context.Background(), "12951", "05-03-2024"); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
}

func TestRunningStatusHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.RunningStatus(context.Background(), "12951", "2024-03-05")
	if !errors.Is(err, models.ErrUpstreamUnavailable) {
		t.Fatalf("err = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestExtractStatusMissingAnchor(t *testing.T) {
	_, err := extractStatus("<html><body>no embedded data here</body></html>")
	if !errors.Is(err, models.ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
}

func TestExtractStatusMalformedJSON(t *testing.T) {
	_, err := extractStatus(`var data = {"TrainName": oops};`)
	if !errors.Is(err, models.ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
}

func TestExtractStatusIgnoresSurroundingScript(t *testing.T) {
	page, err := extractStatus(statusHTML)
	if err != nil {
		t.Fatalf("extractStatus failed: %v", err)
	}
	if !strings.Contains(page.TrainName, "Rajdhani") {
		t.Errorf("TrainName = %q", page.TrainName)
	}
}
