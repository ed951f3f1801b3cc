package llm

import (
	"context"
	"fmt"
)

// Extraction is the structured search-criteria payload the extraction
// prompt asks the model to emit.
type Extraction struct {
	PrimaryKeywords   []string `json:"primary_keywords"`
	NegativeKeywords  []string `json:"negative_keywords"`
	TargetRegion      string   `json:"target_region"`
	PriceMin          int      `json:"price_min"`
	PriceMax          int      `json:"price_max"`
	Currency          string   `json:"currency"`
	VerticalCategory  string   `json:"vertical_category"`
	TimeHorizonMonths int      `json:"time_horizon_in_months"`
}

const extractionSystemPrompt = `You are a shopping-search planner. Extract structured search criteria from the user's product research request.

Respond with a single JSON object with exactly these fields:
- "primary_keywords": array of 3-8 concrete product search phrases a shopper would type (no brand names unless the user asked for one)
- "negative_keywords": array of terms to exclude (empty array if none)
- "target_region": ISO country code, lowercase (default "us")
- "price_min": minimum price as integer, 0 if unspecified
- "price_max": maximum price as integer, 0 if unspecified
- "currency": ISO currency code (default "USD")
- "vertical_category": one broad category such as "toys", "home", "electronics", "fitness"
- "time_horizon_in_months": how far back trends matter, default 12

Output only the JSON object, no prose.`

// ExtractCriteria turns a free-text research request into search criteria
func (c *Client) ExtractCriteria(ctx context.Context, userRequest string) (*Extraction, error) {
	var out Extraction
	if err := c.ChatJSON(ctx, extractionSystemPrompt, userRequest, &out); err != nil {
		return nil, err
	}
	if len(out.PrimaryKeywords) == 0 {
		return nil, fmt.Errorf("extraction produced no keywords")
	}
	if out.TargetRegion == "" {
		out.TargetRegion = "us"
	}
	if out.Currency == "" {
		out.Currency = "USD"
	}
	if out.TimeHorizonMonths <= 0 {
		out.TimeHorizonMonths = 12
	}
	return &out, nil
}
