// Package apify runs the hosted Amazon search actor and normalizes its raw
// dataset items into product metric records.
package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/Hammad1029/trend-finder/config"
	"github.com/Hammad1029/trend-finder/database"
)

// Client runs Apify actors synchronously
type Client struct {
	endpoint string
	token    string
	actorID  string
	maxPages int
	client   *http.Client
	retry    retryConfig
}

// NewClient creates an Apify client
func NewClient(cfg config.ApifyConfig) *Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		endpoint: cfg.Endpoint,
		token:    cfg.Token,
		actorID:  cfg.ActorID,
		maxPages: cfg.MaxPages,
		client:   &http.Client{Transport: transport},
		retry:    retryConfig{maxAttempts: 3, baseDelay: 2 * time.Second},
	}
}

// actorInput is the Amazon search actor's request shape
type actorInput struct {
	Input []actorQuery `json:"input"`
}

type actorQuery struct {
	Keyword    string `json:"keyword"`
	DomainCode string `json:"domainCode"`
	SortBy     string `json:"sortBy"`
	MaxPages   int    `json:"maxPages"`
}

// SearchKeyword runs one actor search and returns the normalized listings.
// The actor call is synchronous: the response body is the dataset itself.
func (c *Client) SearchKeyword(ctx context.Context, keyword, region string) ([]database.ProductMetric, error) {
	domain := "com"
	if region != "us" && region != "" {
		domain = region
	}

	body, err := json.Marshal(actorInput{
		Input: []actorQuery{{
			Keyword:    keyword,
			DomainCode: domain,
			SortBy:     "relevanceblender",
			MaxPages:   c.maxPages,
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal actor input: %w", err)
	}

	runURL := fmt.Sprintf("%s/acts/%s/run-sync-get-dataset-items?token=%s",
		c.endpoint, c.actorID, url.QueryEscape(c.token))

	var items []rawListing
	err = c.retry.do(ctx, fmt.Sprintf("actor search %q", keyword), func() error {
		req, err := http.NewRequestWithContext(ctx, "POST", runURL, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("actor run failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
			raw, _ := io.ReadAll(resp.Body)
			return fmt.Errorf("actor error %d: %s", resp.StatusCode, string(raw))
		}

		items = items[:0]
		if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
			return fmt.Errorf("failed to decode dataset: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	products := NormalizeListings(items, region)
	log.Printf("🛒 Actor returned %d items for %q (%d usable)", len(items), keyword, len(products))
	return products, nil
}
