// Package rbs is a client for the rail authority's shortest-path
// service. The service speaks a stateful two-call protocol: the first
// POST establishes a server-side session identified by a cookie, the
// second POST retrieves the route computed for that session.
package rbs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/BRAVO68WEB/railmap-map-india/internal/models"
)

const (
	requestTimeout = 10 * time.Second

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	sessionCookieName = "JSESSIONID"
)

// Client calls the shortest-path service over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a shortest-path client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: requestTimeout,
			// The session handshake answers with a redirect that must not
			// be followed: the cookie is on the first response.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// looseString decodes an upstream scalar that may arrive as a JSON
// string, number, or null.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = looseString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*s = looseString(num.String())
		return nil
	}
	return fmt.Errorf("cannot decode %s as scalar", data)
}

// rawPayload is the service's route response. Every scalar is wrapped
// in a single-element array, an artifact of the upstream API.
type rawPayload struct {
	Distance []looseString `json:"distance"`
	Src      []looseString `json:"src"`
	Dest     []looseString `json:"dest"`
	Station  []rawStation  `json:"station"`
}

type rawStation struct {
	Code     []looseString `json:"code"`
	Name     []looseString `json:"name"`
	X        []looseString `json:"x"`
	Y        []looseString `json:"y"`
	Distance []looseString `json:"distance"`
	Gauge    []looseString `json:"gauge"`
}

// first unwraps the leading element of an array-wrapped scalar.
func first(values []looseString) string {
	if len(values) == 0 {
		return ""
	}
	return string(values[0])
}

func firstFloat(values []looseString) float64 {
	f, err := strconv.ParseFloat(first(values), 64)
	if err != nil {
		return 0
	}
	return f
}

// ShortestPath resolves the shortest rail path between two station
// codes. Any form of unavailability (no session cookie, bad status,
// empty station list) is reported as an error; the service carries no
// partial results.
func (c *Client) ShortestPath(ctx context.Context, from, to string) (*models.AuthorityRoute, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)

	cookie, err := c.establishSession(ctx, from, to)
	if err != nil {
		return nil, err
	}

	payload, err := c.fetchRoute(ctx, cookie)
	if err != nil {
		return nil, err
	}

	route := &models.AuthorityRoute{
		TotalDistanceKm: firstFloat(payload.Distance),
		FromCode:        from,
		ToCode:          to,
	}
	if code := first(payload.Src); code != "" {
		route.FromCode = code
	}
	if code := first(payload.Dest); code != "" {
		route.ToCode = code
	}

	for _, s := range payload.Station {
		lon := firstFloat(s.X)
		lat := firstFloat(s.Y)

		// Stations with missing coordinates are dropped, not nulled.
		if lon == 0 || lat == 0 {
			continue
		}

		route.Stations = append(route.Stations, models.AuthorityStation{
			Code:       first(s.Code),
			Name:       first(s.Name),
			Lat:        lat,
			Lon:        lon,
			DistanceKm: firstFloat(s.Distance),
			Gauge:      first(s.Gauge),
		})
	}

	if len(route.Stations) == 0 {
		return nil, fmt.Errorf("shortest-path service returned no usable stations")
	}

	return route, nil
}

// establishSession performs the first protocol step and returns the
// session cookie.
func (c *Client) establishSession(ctx context.Context, from, to string) (*http.Cookie, error) {
	form := url.Values{
		"srcCode":   {from},
		"destCode":  {to},
		"gaugeType": {"S"},
		"distance":  {"coach"},
		"PageName":  {"ShortPath"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/ShortPath/ShortPathServlet", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create session request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to establish session: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	for _, cookie := range resp.Cookies() {
		if cookie.Name == sessionCookieName {
			return cookie, nil
		}
	}
	return nil, fmt.Errorf("no session cookie in handshake response")
}

// fetchRoute performs the second protocol step with the session cookie.
func (c *Client) fetchRoute(ctx context.Context, cookie *http.Cookie) (*rawPayload, error) {
	form := url.Values{
		"map":      {"rbs"},
		"PageName": {"ShortPath"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/ShortPath/RbsMapServlet", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create route request: %w", err)
	}
	c.setHeaders(req)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch route: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("shortest-path service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var payload rawPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode route payload: %w", err)
	}

	return &payload, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", c.baseURL+"/ShortPath/")
}
