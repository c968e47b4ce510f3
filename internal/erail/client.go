// Package erail scrapes the eRail legacy text API: train listings
// between stations, train metadata, full train routes, and typeahead
// suggestions. Listing and route payloads are caret/tilde delimited
// records decoded with the railtext package.
package erail

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
	recordSep = "^"
	fieldSep  = "~"

	// listingTimeout bounds single-call lookups (listings, suggestions).
	listingTimeout = 5 * time.Second
	// detailTimeout bounds the heavier metadata and route payloads.
	detailTimeout = 8 * time.Second

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// minListingFields is the shortest listing record still carrying the
// run-day bitmask at index 13.
const minListingFields = 14

// minRouteFields is the shortest route record still carrying the stop
// coordinates at indices 14 and 15.
const minRouteFields = 16

// internalIDField is the fixed position of the numeric internal train
// id inside a train metadata record.
const internalIDField = 33

// TrainDetails is the stage-1 metadata for a train number, including
// the internal id needed for the route lookup.
type TrainDetails struct {
	Number      string
	Name        string
	Source      models.StationRef
	Destination models.StationRef
	RunDays     []string
	Classes     []string
	InternalID  string
}

// Client calls the eRail endpoints over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates an eRail client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: detailTimeout,
		},
	}
}

// TrainsBetween lists trains running between two station codes. The
// listing carries no class or distance data.
func (c *Client) TrainsBetween(ctx context.Context, from, to string) ([]models.Train, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)

	ctx, cancel := context.WithTimeout(ctx, listingTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/rail/getTrains.aspx?Station_From=%s&Station_To=%s&DataSource=0&Language=0&Cache=true",
		c.baseURL, url.QueryEscape(from), url.QueryEscape(to))

	text, err := c.fetchText(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	// The first segment is a header, not a train record.
	records := railtext.Decode(railtext.SkipFirstSegment(text, recordSep), recordSep, fieldSep, minListingFields)

	var trains []models.Train
	for _, f := range records {
		number := railtext.Field(f, 0)
		if number == "" {
			continue
		}

		boardingCode := railtext.Field(f, 7)
		if boardingCode == "" {
			boardingCode = from
		}
		alightingCode := railtext.Field(f, 9)
		if alightingCode == "" {
			alightingCode = to
		}

		trains = append(trains, models.Train{
			Number:   number,
			Name:     railtext.Field(f, 1),
			From:     models.TrainEndpoint{Code: boardingCode, Departure: railtext.Field(f, 10)},
			To:       models.TrainEndpoint{Code: alightingCode, Arrival: railtext.Field(f, 11)},
			Duration: railtext.Field(f, 12),
			RunDays:  railtext.ParseRunDays(railtext.Field(f, 13)),
			Classes:  []string{},
			Source:   models.SourceErail,
		})
	}

	return trains, nil
}

// Details fetches the stage-1 metadata record for a train number.
// A missing record or a blank internal id means the train does not
// exist upstream.
func (c *Client) Details(ctx context.Context, trainNo string) (*TrainDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, detailTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/rail/getTrains.aspx?TrainNo=%s&DataSource=0&Language=0&Cache=true",
		c.baseURL, url.QueryEscape(trainNo))

	text, err := c.fetchText(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	records := railtext.Decode(railtext.SkipFirstSegment(text, recordSep), recordSep, fieldSep, 2)
	if len(records) == 0 {
		return nil, fmt.Errorf("train %s: %w", trainNo, models.ErrTrainNotFound)
	}

	f := records[0]
	details := &TrainDetails{
		Number:      trainNo,
		Name:        railtext.Field(f, 1),
		Source:      models.StationRef{Code: railtext.Field(f, 3), Name: railtext.Field(f, 2)},
		Destination: models.StationRef{Code: railtext.Field(f, 5), Name: railtext.Field(f, 4)},
		RunDays:     railtext.ParseRunDays(railtext.Field(f, 13)),
		Classes:     splitClasses(railtext.Field(f, 14)),
		InternalID:  railtext.Field(f, internalIDField),
	}

	if details.InternalID == "" {
		return nil, fmt.Errorf("no internal id for train %s: %w", trainNo, models.ErrTrainNotFound)
	}

	return details, nil
}

// Route fetches the ordered stop list for an internal train id. The
// payload's first segment is fare data and is discarded unconditionally.
func (c *Client) Route(ctx context.Context, internalID string) ([]models.TrainRouteStop, error) {
	ctx, cancel := context.WithTimeout(ctx, detailTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/data.aspx?Action=TRAINROUTE&Password=2012&Data1=%s&Data2=0&Cache=true",
		c.baseURL, url.QueryEscape(internalID))

	text, err := c.fetchText(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	records := railtext.Decode(railtext.SkipFirstSegment(text, recordSep), recordSep, fieldSep, minRouteFields)

	var stops []models.TrainRouteStop
	for _, f := range records {
		stops = append(stops, models.TrainRouteStop{
			Seq:        railtext.FieldInt(f, 0),
			Code:       railtext.Field(f, 1),
			Name:       railtext.Field(f, 2),
			Arrival:    railtext.NormalizeTime(railtext.Field(f, 3)),
			Departure:  railtext.NormalizeTime(railtext.Field(f, 4)),
			HaltMins:   railtext.Field(f, 5),
			DistanceKm: railtext.FieldInt(f, 6),
			Day:        railtext.FieldDay(f, 7),
			Platform:   railtext.Field(f, 8),
			Zone:       railtext.Field(f, 10),
			Division:   railtext.Field(f, 11),
			Lat:        railtext.FieldFloat(f, 14),
			Lon:        railtext.FieldFloat(f, 15),
		})
	}

	return stops, nil
}

// rawSuggestions is the typeahead endpoint's response: display strings
// plus a parallel array of train numbers.
type rawSuggestions struct {
	Suggestions []string `json:"suggestions"`
	Data        []string `json:"data"`
}

// Search returns typeahead suggestions for a train number or name
// fragment.
func (c *Client) Search(ctx context.Context, query string) ([]models.TrainSuggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, listingTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/Rail/SearchTrains_External.ashx?query=%s",
		c.baseURL, url.QueryEscape(query))

	text, err := c.fetchText(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var raw rawSuggestions
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("failed to decode suggestions: %w", err)
	}

	suggestions := []models.TrainSuggestion{}
	for i, display := range raw.Suggestions {
		number := ""
		if i < len(raw.Data) {
			number = raw.Data[i]
		}
		if number == "" {
			// Fall back to the leading token of the display text.
			if parts := strings.Fields(display); len(parts) > 0 {
				number = parts[0]
			}
		}
		suggestions = append(suggestions, models.TrainSuggestion{
			Number:      number,
			DisplayText: display,
		})
	}

	return suggestions, nil
}

func (c *Client) fetchText(ctx context.Context, endpoint string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("Referer", c.baseURL+"/")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("eRail returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	return string(body), nil
}

func splitClasses(raw string) []string {
	classes := []string{}
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			classes = append(classes, c)
		}
	}
	return classes
}
