// Package geocode resolves free-text locations to coordinates through a
// Nominatim-compatible search endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/almehdi/jobview/internal/model"
)

// DefaultBaseURL is the public Nominatim instance. Its usage policy allows
// at most one request per second, which the resolution pipeline enforces.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// Status classifies a lookup outcome.
type Status int

const (
	// Resolved: the service returned at least one candidate.
	Resolved Status = iota
	// NoMatch: the service answered but found nothing for the query.
	NoMatch
	// TransportError: the request failed or the response was unusable.
	TransportError
)

// Outcome is the tri-state result of one lookup. The pipeline treats
// NoMatch and TransportError the same way (the record stays unresolved);
// the distinction only matters for the optional transport retry.
type Outcome struct {
	Coords *model.Coordinates
	Status Status
	Err    error // cause for TransportError, nil otherwise
}

// Geocoder is the lookup contract the resolution pipeline depends on.
type Geocoder interface {
	Lookup(ctx context.Context, query string) Outcome
}

// Client performs single lookups against a Nominatim-compatible endpoint.
// It never returns a Go error to its caller; every failure mode folds into
// the Outcome. It does not retry and it does not rate-limit itself — both
// are pipeline-level policies.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at an alternate endpoint (tests, mirrors).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if strings.TrimSpace(baseURL) != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient swaps the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithUserAgent sets the User-Agent header. Nominatim requires an
// identifying agent string.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if strings.TrimSpace(userAgent) != "" {
			c.userAgent = userAgent
		}
	}
}

// NewClient creates a geocode client with defaults suitable for the public
// Nominatim instance.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		userAgent:  "jobview-geocoder/0.1",
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// nominatimResult is one candidate in the search response. Nominatim
// serializes coordinates as strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Lookup resolves one non-empty location string to the first candidate
// match. An empty query is a NoMatch without any network traffic.
func (c *Client) Lookup(ctx context.Context, query string) Outcome {
	if strings.TrimSpace(query) == "" {
		return Outcome{Status: NoMatch}
	}

	endpoint := strings.TrimRight(c.baseURL, "/") + "/search"
	params := url.Values{}
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return transportError(err)
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return transportError(&model.HTTPError{StatusCode: resp.StatusCode})
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return transportError(fmt.Errorf("decode response: %w", err))
	}
	if len(results) == 0 {
		return Outcome{Status: NoMatch}
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return transportError(fmt.Errorf("parse lat %q: %w", results[0].Lat, err))
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return transportError(fmt.Errorf("parse lon %q: %w", results[0].Lon, err))
	}

	return Outcome{
		Coords: &model.Coordinates{Lat: lat, Lng: lng},
		Status: Resolved,
	}
}

func transportError(err error) Outcome {
	return Outcome{Status: TransportError, Err: err}
}
