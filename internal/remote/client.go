// Package remote reads the hosted application store: a realtime-database
// style endpoint serving JSON documents under fixed paths.
package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/almehdi/jobview/internal/importer"
	"github.com/almehdi/jobview/internal/model"
)

// Client fetches from the remote store. The store is read-only from this
// side; upload happens elsewhere.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the store rooted at baseURL.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// LastUpdate reads the store's scalar last-updated timestamp. The value is
// returned as the store recorded it, without interpretation.
func (c *Client) LastUpdate(ctx context.Context) (string, error) {
	body, err := c.get(ctx, "/last_update.json")
	if err != nil {
		return "", fmt.Errorf("fetch last update: %w", err)
	}
	// The scalar is stored as a JSON string; "null" means never uploaded.
	value := strings.Trim(strings.TrimSpace(string(body)), `"`)
	if value == "null" {
		value = ""
	}
	return value, nil
}

// FetchApplications reads the full nested application tree and flattens it
// into canonical records. The remote shape is identical to the nested file
// export, so the importer does the normalization.
func (c *Client) FetchApplications(ctx context.Context) ([]model.Application, error) {
	body, err := c.get(ctx, "/applications.json")
	if err != nil {
		return nil, fmt.Errorf("fetch applications: %w", err)
	}
	if strings.TrimSpace(string(body)) == "null" {
		// An empty database node serializes as null.
		return nil, nil
	}
	return importer.ParseNested(body)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.HTTPError{StatusCode: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}
