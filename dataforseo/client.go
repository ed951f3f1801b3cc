// Package dataforseo is a minimal client for the DataForSEO Trends Explore
// endpoint, the external source of search-interest time series.
package dataforseo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Hammad1029/trend-finder/config"
)

const exploreLivePath = "/v3/keywords_data/dataforseo_trends/explore/live"

// Client calls the DataForSEO API with basic auth
type Client struct {
	endpoint string
	login    string
	password string
	timeout  time.Duration
	client   *http.Client
}

// NewClient creates a DataForSEO client
func NewClient(cfg config.DataForSEOConfig) *Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		endpoint: cfg.Endpoint,
		login:    cfg.Login,
		password: cfg.Password,
		timeout:  time.Duration(cfg.TimeoutSeconds) * time.Second,
		client:   &http.Client{Transport: transport},
	}
}

// exploreTask is one task in the request body; the API accepts a task list
type exploreTask struct {
	Keywords  []string `json:"keywords"`
	TimeRange string   `json:"time_range,omitempty"`
}

// Explore fetches the interest-over-time series for up to five keywords.
// The per-call timeout bounds the pipeline's only blocking network hop.
func (c *Client) Explore(ctx context.Context, keywords []string) (*ExploreResponse, error) {
	if len(keywords) == 0 {
		return nil, fmt.Errorf("no keywords to explore")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal([]exploreTask{{
		Keywords:  keywords,
		TimeRange: "past_12_months",
	}})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint+exploreLivePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.login, c.password)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(raw))
	}

	var explore ExploreResponse
	if err := json.NewDecoder(resp.Body).Decode(&explore); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &explore, nil
}
