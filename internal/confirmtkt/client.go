// Package confirmtkt scrapes the live running-status page. The page
// embeds one JSON object in its markup behind a fixed textual anchor;
// extraction is isolated here so the anchor logic is swappable without
// touching callers.
package confirmtkt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/BRAVO68WEB/railmap-map-india/internal/models"
)

const (
	requestTimeout = 10 * time.Second

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// dataAnchor locates the embedded status object in the page markup.
var dataAnchor = regexp.MustCompile(`var\s+data\s*=\s*(\{.+\})\s*;`)

// StatusPage is the decoded embedded status object.
type StatusPage struct {
	TrainName string         `json:"TrainName"`
	Schedule  []ScheduleStop `json:"Schedule"`
}

// ScheduleStop is one stop of the scraped schedule. Delay fields are
// nil when the upstream reported nothing; sentinel strings like "-"
// still count as absent and are interpreted by the caller.
type ScheduleStop struct {
	StationCode    string  `json:"StationCode"`
	StationName    string  `json:"StationName"`
	ArrivalTime    string  `json:"ArrivalTime"`
	DepartureTime  string  `json:"DepartureTime"`
	HaltMinutes    string  `json:"HaltMinutes"`
	Distance       string  `json:"Distance"`
	Day            int     `json:"Day"`
	ArrivalDelay   *string `json:"arrivalDelay"`
	DepartureDelay *string `json:"departureDelay"`
	Latitude       float64 `json:"Latitude"`
	Longitude      float64 `json:"Longitude"`
}

// Client fetches live running-status pages.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a live-status client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// RunningStatus fetches the status page for a train on a date given in
// YYYY-MM-DD form and returns the embedded status object.
func (c *Client) RunningStatus(ctx context.Context, trainNo, date string) (*StatusPage, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	// Upstream expects DD-Mon-YYYY.
	endpoint := fmt.Sprintf("%s/train-running-status/%s?Date=%s",
		c.baseURL, url.PathEscape(trainNo), d.Format("02-Jan-2006"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch status page: %v: %w", err, models.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status page returned HTTP %d: %w", resp.StatusCode, models.ErrUpstreamUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read status page: %v: %w", err, models.ErrUpstreamUnavailable)
	}

	return extractStatus(string(body))
}

// extractStatus pulls the embedded JSON object out of the page markup.
func extractStatus(html string) (*StatusPage, error) {
	match := dataAnchor.FindStringSubmatch(html)
	if match == nil {
		return nil, fmt.Errorf("status anchor not found in page: %w", models.ErrParse)
	}

	var page StatusPage
	if err := json.Unmarshal([]byte(match[1]), &page); err != nil {
		return nil, fmt.Errorf("embedded status object is not valid JSON: %w", models.ErrParse)
	}

	return &page, nil
}
