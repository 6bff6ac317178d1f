package searchapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/go-querystring/query"
)

var ErrUnexpectedStatus = errors.New("unexpected status from search api")

const maxBodyBytes = 1_048_578 // 1mb

// Client talks to the search API. The base URL is fixed at construction.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// SearchVenues calls GET /search/venues.
func (c *Client) SearchVenues(ctx context.Context, q VenueQuery) (*VenuePage, error) {
	var page VenuePage
	if err := c.get(ctx, "/search/venues", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SearchReviews calls GET /search/reviews.
func (c *Client) SearchReviews(ctx context.Context, q ReviewQuery) (*ReviewPage, error) {
	var page ReviewPage
	if err := c.get(ctx, "/search/reviews", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) get(ctx context.Context, path string, params any, out any) error {
	values, err := query.Values(params)
	if err != nil {
		return fmt.Errorf("encode %s query: %w", path, err)
	}

	url := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		url += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%s read body: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s http=%d body=%s", ErrUnexpectedStatus, path, resp.StatusCode, snippet(raw))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s decode: %w body=%s", path, err, snippet(raw))
	}
	return nil
}

func snippet(raw []byte) string {
	const limit = 256
	if len(raw) > limit {
		return string(raw[:limit]) + "..."
	}
	return string(raw)
}
