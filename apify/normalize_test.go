package apify

import "testing"

func TestParseRating(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"4.5 out of 5 stars", 4.5},
		{"4,3 von 5 Sternen", 4.3},
		{"", 0},
		{"not a rating", 0},
	}

	for _, tt := range tests {
		if got := parseRating(tt.in); got != tt.want {
			t.Errorf("parseRating(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseSalesVolume(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"200+", 200},
		{"1K+", 1000},
		{"2K", 2000},
		{"50", 50},
		{"", 0},
		{"n/a", 0},
	}

	for _, tt := range tests {
		if got := parseSalesVolume(tt.in); got != tt.want {
			t.Errorf("parseSalesVolume(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeListings(t *testing.T) {
	items := []rawListing{
		{
			StatusCode:           200,
			ASIN:                 "B0TEST1",
			ProductDescription:   "Fidget Spinner Toy",
			Price:                9.99,
			ProductRating:        "4.5 out of 5 stars",
			CountReview:          120,
			SalesVolume:          "1K+",
			SearchResultPosition: 3,
			Sponsored:            false,
			Prime:                true,
		},
	}

	products := NormalizeListings(items, "us")
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}

	p := products[0]
	if p.UniqueID != "B0TEST1" || p.Platform != "amazon" {
		t.Errorf("unexpected identity fields: %+v", p)
	}
	if p.Rating != 4.5 || p.SalesLastMonth != 1000 || p.ReviewCount != 120 {
		t.Errorf("unexpected metrics: %+v", p)
	}
	if p.Currency != "USD" {
		t.Errorf("currency = %s, want USD", p.Currency)
	}
	// prime listings count as sponsored
	if !p.Sponsored {
		t.Error("prime listing should be marked sponsored")
	}
}

func TestNormalizeListingsFailedScrape(t *testing.T) {
	items := []rawListing{{StatusCode: 403}}
	if got := NormalizeListings(items, "us"); got != nil {
		t.Errorf("expected nil for failed scrape, got %v", got)
	}
	if got := NormalizeListings(nil, "us"); got != nil {
		t.Errorf("expected nil for empty dataset, got %v", got)
	}
}
