// Package railyatri scrapes the RailYatri trains-between-stations JSON
// API, the second of the two independent train listing sources.
package railyatri

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/BRAVO68WEB/railmap-map-india/internal/models"
	"github.com/BRAVO68WEB/railmap-map-india/internal/railtext"
)

const (
	requestTimeout = 5 * time.Second

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Client calls the RailYatri API over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
	now     func() time.Time
}

// NewClient creates a RailYatri client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: requestTimeout,
		},
		now: time.Now,
	}
}

// rawListing is the API's loosely-shaped response. Run days arrive as
// either a 7-char bitmask string or an array of 0/1 flags; classes as
// objects keyed by coach_type.
type rawListing struct {
	Success              bool       `json:"success"`
	TrainBetweenStations []rawTrain `json:"train_between_stations"`
}

type rawTrain struct {
	TrainNumber json.Number     `json:"train_number"`
	TrainName   string          `json:"train_name"`
	FromSTD     string          `json:"from_std"`
	ToSTA       string          `json:"to_sta"`
	Duration    string          `json:"duration"`
	Distance    *float64        `json:"distance"`
	RunDays     json.RawMessage `json:"run_days"`
	ClassType   []rawClass      `json:"class_type"`
}

type rawClass struct {
	CoachType string `json:"coach_type"`
}

// TrainsBetween lists trains running between two station codes for
// today's journey date.
func (c *Client) TrainsBetween(ctx context.Context, from, to string) ([]models.Train, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	now := c.now()
	journeyDate := fmt.Sprintf("%d-%d-%d", now.Day(), int(now.Month()), now.Year())

	params := url.Values{
		"from_code":    {from},
		"to_code":      {to},
		"journey_date": {journeyDate},
		"src":          {"new_tbs"},
	}
	endpoint := c.baseURL + "/api/trains-between-station-with-sa.json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Origin", "https://www.railyatri.in")
	req.Header.Set("Referer", "https://www.railyatri.in/")
	req.Header.Set("lang", "en")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("RailYatri returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var raw rawListing
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode listing: %w", err)
	}
	if !raw.Success {
		return nil, fmt.Errorf("RailYatri reported failure")
	}

	var trains []models.Train
	for _, t := range raw.TrainBetweenStations {
		trains = append(trains, models.Train{
			Number:     t.TrainNumber.String(),
			Name:       t.TrainName,
			From:       models.TrainEndpoint{Code: from, Departure: t.FromSTD},
			To:         models.TrainEndpoint{Code: to, Arrival: t.ToSTA},
			Duration:   t.Duration,
			DistanceKm: t.Distance,
			RunDays:    parseRunDays(t.RunDays),
			Classes:    classNames(t.ClassType),
			Source:     models.SourceRailYatri,
		})
	}

	return trains, nil
}

// parseRunDays accepts both run-day encodings the API is known to use:
// a 7-char bitmask string and an array of 0/1 flags.
func parseRunDays(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}

	var mask string
	if err := json.Unmarshal(raw, &mask); err == nil {
		return railtext.ParseRunDays(mask)
	}

	var flags []any
	if err := json.Unmarshal(raw, &flags); err == nil && len(flags) == 7 {
		var sb strings.Builder
		for _, f := range flags {
			set := false
			switch v := f.(type) {
			case float64:
				set = v == 1
			case string:
				set = v == "1"
			}
			if set {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		return railtext.ParseRunDays(sb.String())
	}

	return []string{}
}

func classNames(classes []rawClass) []string {
	names := []string{}
	for _, c := range classes {
		names = append(names, c.CoachType)
	}
	return names
}
