package apify

import (
	"strconv"
	"strings"

	"github.com/Hammad1029/trend-finder/database"
)

// rawListing is one dataset item as the Amazon actor emits it
type rawListing struct {
	StatusCode           int     `json:"statusCode"`
	ASIN                 string  `json:"asin"`
	ProductDescription   string  `json:"productDescription"`
	Price                float64 `json:"price"`
	ImgURL               string  `json:"imgUrl"`
	SelectedCategory     string  `json:"selectedCategory"`
	ProductRating        string  `json:"productRating"`
	CountReview          int     `json:"countReview"`
	SalesVolume          string  `json:"salesVolume"`
	SearchResultPosition int     `json:"searchResultPosition"`
	Sponsored            bool    `json:"sponsored"`
	Prime                bool    `json:"prime"`
}

// NormalizeListings converts raw actor items into product metrics. A failed
// scrape (first item carrying a non-200 status) yields no products.
func NormalizeListings(items []rawListing, region string) []database.ProductMetric {
	if len(items) == 0 || items[0].StatusCode != 200 {
		return nil
	}

	currency := "unknown"
	if region == "us" {
		currency = "USD"
	}

	products := make([]database.ProductMetric, 0, len(items))
	for _, item := range items {
		products = append(products, database.ProductMetric{
			Platform:         "amazon",
			UniqueID:         item.ASIN,
			Description:      item.ProductDescription,
			Price:            item.Price,
			Currency:         currency,
			ImageURL:         item.ImgURL,
			PlatformCategory: item.SelectedCategory,
			PlatformRegion:   region,
			Rating:           parseRating(item.ProductRating),
			ReviewCount:      item.CountReview,
			SalesLastMonth:   parseSalesVolume(item.SalesVolume),
			SearchRanking:    item.SearchResultPosition,
			Sponsored:        item.Sponsored || item.Prime,
		})
	}
	return products
}

// parseRating extracts the leading number from strings like
// "4.5 out of 5 stars"; European decimal commas are accepted.
func parseRating(raw string) float64 {
	if raw == "" {
		return 0
	}
	first := strings.Fields(raw)
	if len(first) == 0 {
		return 0
	}
	val, err := strconv.ParseFloat(strings.ReplaceAll(first[0], ",", "."), 64)
	if err != nil {
		return 0
	}
	return val
}

// parseSalesVolume parses listings like "200+" or "1K+" into a monthly
// count. Anything unparseable counts as zero sales.
func parseSalesVolume(raw string) int {
	if raw == "" {
		return 0
	}
	numeric := strings.SplitN(raw, "+", 2)[0]
	multiplier := 1
	if strings.Contains(numeric, "K") {
		multiplier = 1000
		numeric = strings.ReplaceAll(numeric, "K", "")
	}
	val, err := strconv.Atoi(numeric)
	if err != nil {
		return 0
	}
	return val * multiplier
}
