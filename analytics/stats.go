// Package analytics computes per-cluster summary statistics. Everything here
// is derived, recomputed fresh on every run, and carries no lifecycle of its
// own.
package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Product carries the per-listing numbers the aggregator summarizes.
type Product struct {
	Price          float64
	Rating         float64
	ReviewCount    int
	SalesLastMonth int
	SearchRanking  int
	Score          int
}

// ClusterStats summarizes one cluster's members. Monetary and rating
// averages keep two decimals; count-like averages round to the nearest
// integer, half away from zero.
type ClusterStats struct {
	ClusterSize           int     `json:"cluster_size"`
	MinPrice              float64 `json:"min_price"`
	MaxPrice              float64 `json:"max_price"`
	AveragePrice          float64 `json:"average_price"`
	AverageSalesLastMonth int     `json:"average_sales_last_month"`
	AverageRating         float64 `json:"average_rating"`
	AverageReviewCount    int     `json:"average_review_count"`
	AverageSearchRanking  int     `json:"average_search_ranking"`
	AverageProductScore   float64 `json:"average_product_score"`
}

// Compute aggregates the cluster's members. Empty input yields an all-zero
// record with size 0.
func Compute(products []Product) ClusterStats {
	if len(products) == 0 {
		return ClusterStats{}
	}

	prices := make([]float64, len(products))
	sales := make([]float64, len(products))
	ratings := make([]float64, len(products))
	reviews := make([]float64, len(products))
	rankings := make([]float64, len(products))
	scores := make([]float64, len(products))
	for i, p := range products {
		prices[i] = p.Price
		sales[i] = float64(p.SalesLastMonth)
		ratings[i] = p.Rating
		reviews[i] = float64(p.ReviewCount)
		rankings[i] = float64(p.SearchRanking)
		scores[i] = float64(p.Score)
	}

	minPrice, maxPrice := prices[0], prices[0]
	for _, p := range prices[1:] {
		if p < minPrice {
			minPrice = p
		}
		if p > maxPrice {
			maxPrice = p
		}
	}

	return ClusterStats{
		ClusterSize:           len(products),
		MinPrice:              minPrice,
		MaxPrice:              maxPrice,
		AveragePrice:          round2(stat.Mean(prices, nil)),
		AverageSalesLastMonth: roundInt(stat.Mean(sales, nil)),
		AverageRating:         round2(stat.Mean(ratings, nil)),
		AverageReviewCount:    roundInt(stat.Mean(reviews, nil)),
		AverageSearchRanking:  roundInt(stat.Mean(rankings, nil)),
		AverageProductScore:   round2(stat.Mean(scores, nil)),
	}
}

// round2 rounds to two decimals, half away from zero
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// roundInt rounds to the nearest integer, half away from zero
func roundInt(v float64) int {
	return int(math.Round(v))
}
