package analytics

import "testing"

func TestComputeEmpty(t *testing.T) {
	got := Compute(nil)
	if got != (ClusterStats{}) {
		t.Errorf("expected all-zero stats, got %+v", got)
	}
}

func TestComputeIdenticalProducts(t *testing.T) {
	p := Product{
		Price:          19.99,
		Rating:         4.5,
		ReviewCount:    120,
		SalesLastMonth: 300,
		SearchRanking:  7,
		Score:          64,
	}

	got := Compute([]Product{p, p, p})

	if got.ClusterSize != 3 {
		t.Errorf("size = %d, want 3", got.ClusterSize)
	}
	if got.MinPrice != 19.99 || got.MaxPrice != 19.99 || got.AveragePrice != 19.99 {
		t.Errorf("price fields should all equal 19.99: %+v", got)
	}
	if got.AverageSalesLastMonth != 300 {
		t.Errorf("avg sales = %d, want 300", got.AverageSalesLastMonth)
	}
	if got.AverageRating != 4.5 {
		t.Errorf("avg rating = %v, want 4.5", got.AverageRating)
	}
	if got.AverageReviewCount != 120 {
		t.Errorf("avg reviews = %d, want 120", got.AverageReviewCount)
	}
	if got.AverageSearchRanking != 7 {
		t.Errorf("avg ranking = %d, want 7", got.AverageSearchRanking)
	}
	if got.AverageProductScore != 64 {
		t.Errorf("avg score = %v, want 64", got.AverageProductScore)
	}
}

func TestComputeMixedProducts(t *testing.T) {
	got := Compute([]Product{
		{Price: 10, Rating: 4, ReviewCount: 100, SalesLastMonth: 200, SearchRanking: 1, Score: 80},
		{Price: 30, Rating: 5, ReviewCount: 101, SalesLastMonth: 201, SearchRanking: 2, Score: 61},
	})

	if got.MinPrice != 10 || got.MaxPrice != 30 {
		t.Errorf("min/max = %v/%v, want 10/30", got.MinPrice, got.MaxPrice)
	}
	if got.AveragePrice != 20 {
		t.Errorf("avg price = %v, want 20", got.AveragePrice)
	}
	if got.AverageRating != 4.5 {
		t.Errorf("avg rating = %v, want 4.5", got.AverageRating)
	}
	// 100.5 and 200.5 round half away from zero
	if got.AverageReviewCount != 101 {
		t.Errorf("avg reviews = %d, want 101", got.AverageReviewCount)
	}
	if got.AverageSalesLastMonth != 201 {
		t.Errorf("avg sales = %d, want 201", got.AverageSalesLastMonth)
	}
	if got.AverageSearchRanking != 2 {
		t.Errorf("avg ranking = %d, want 2", got.AverageSearchRanking)
	}
	if got.AverageProductScore != 70.5 {
		t.Errorf("avg score = %v, want 70.5", got.AverageProductScore)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.2345, 1.23},
		{1.236, 1.24},
		{-1.236, -1.24},
		{2.5, 2.5},
		{0, 0},
	}
	for _, tt := range tests {
		if got := round2(tt.in); got != tt.want {
			t.Errorf("round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
