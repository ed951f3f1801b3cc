// Package trends turns an external search-interest time series plus a
// cluster's realized sales and competition figures into a composite
// opportunity verdict: a 0-100 score, a classification label and the
// intermediate metrics behind both.
package trends

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/Hammad1029/trend-finder/config"
)

// Label classifies a cluster's trend
type Label string

const (
	LabelDead        Label = "Dead"
	LabelSaturated   Label = "Saturated"
	LabelDeclining   Label = "Declining"
	LabelViral       Label = "Viral"
	LabelGrowth      Label = "Growth"
	LabelStable      Label = "Stable"
	LabelSpeculative Label = "Speculative"
	LabelUnknown     Label = "Unknown"
)

// SeriesPoint is one time point of a search-interest series. Values carries
// one entry per queried keyword; nil marks a missing value.
type SeriesPoint struct {
	Timestamp int64
	Values    []*float64
}

// Analytics is the full trend verdict for one cluster
type Analytics struct {
	FinalScore      int     `json:"final_score"`
	Label           Label   `json:"label"`
	Explanation     string  `json:"explanation"`
	SearchScore     float64 `json:"search_score"`
	MarketScore     float64 `json:"market_score"`
	Slope           float64 `json:"slope"`
	Volatility      float64 `json:"volatility"`
	SalesVolume     int     `json:"sales_volume"`
	SaturationRatio float64 `json:"saturation_ratio"`
}

// SeriesObserver receives the normalized series and its regression line.
// Purely diagnostic; scoring never depends on it.
type SeriesObserver interface {
	ObserveSeries(x, y []float64, slope, intercept float64)
}

// Analyzer scores clusters. Stateless given its inputs; safe for concurrent
// use.
type Analyzer struct {
	cfg      config.TrendConfig
	observer SeriesObserver
}

// NewAnalyzer creates an analyzer with the given thresholds
func NewAnalyzer(cfg config.TrendConfig) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// SetObserver installs an optional diagnostics hook
func (a *Analyzer) SetObserver(obs SeriesObserver) {
	a.observer = obs
}

// searchMetrics are derived from the interest series alone
type searchMetrics struct {
	slope          float64
	volatility     float64
	recentStrength float64
}

// Analyze combines a search-interest series (possibly nil or empty) with the
// cluster's average monthly sales and average review count. A missing or
// all-zero series degrades to zero search metrics instead of failing.
func (a *Analyzer) Analyze(points []SeriesPoint, avgSales, avgReviews int) Analytics {
	metrics := a.searchMetrics(points)
	searchScore := a.searchScore(metrics)
	marketScore := a.marketScore(avgSales, avgReviews)

	finalScore := int(math.Floor(searchScore*a.cfg.SearchWeight + marketScore*a.cfg.MarketWeight))

	label, explanation := a.classify(metrics.slope, metrics.volatility, avgSales, avgReviews, searchScore)

	return Analytics{
		FinalScore:      finalScore,
		Label:           label,
		Explanation:     explanation,
		SearchScore:     round2(searchScore),
		MarketScore:     round2(marketScore),
		Slope:           round2(metrics.slope),
		Volatility:      round2(metrics.volatility),
		SalesVolume:     avgSales,
		SaturationRatio: round2(math.Min(1, float64(avgReviews)/float64(a.cfg.SaturationLimit))),
	}
}

// searchMetrics sums the per-keyword values of each time point into a topic
// volume series, normalizes it to a 0-100 scale so niche and mass trends
// compare fairly, then derives slope (OLS against index positions),
// volatility (population standard deviation) and recent strength (last
// normalized value).
func (a *Analyzer) searchMetrics(points []SeriesPoint) searchMetrics {
	if len(points) == 0 {
		return searchMetrics{}
	}

	y := make([]float64, len(points))
	maxVal := 0.0
	for i, p := range points {
		sum := 0.0
		for _, v := range p.Values {
			if v != nil {
				sum += *v
			}
		}
		y[i] = sum
		if sum > maxVal {
			maxVal = sum
		}
	}
	if maxVal == 0 {
		return searchMetrics{}
	}

	x := make([]float64, len(y))
	for i := range y {
		y[i] = y[i] / maxVal * 100
		x[i] = float64(i)
	}

	slope := 0.0
	intercept := 0.0
	if len(y) > 1 {
		intercept, slope = stat.LinearRegression(x, y, nil, false)
	}

	mean := stat.Mean(y, nil)
	volatility := math.Sqrt(stat.MomentAbout(2, y, mean, nil))

	if a.observer != nil {
		a.observer.ObserveSeries(x, y, slope, intercept)
	}

	return searchMetrics{
		slope:          slope,
		volatility:     volatility,
		recentStrength: y[len(y)-1],
	}
}

// searchScore applies the viral-reward rule: while interest grows,
// volatility is hype and adds points; while it shrinks, volatility is a
// crash signal and subtracts them. Clamped to [0, 100].
func (a *Analyzer) searchScore(m searchMetrics) float64 {
	var score float64
	if m.slope > 0 {
		score = m.recentStrength + m.slope*10 + m.volatility*0.5
	} else {
		score = m.recentStrength - (math.Abs(m.slope)*10 + m.volatility*0.5)
	}
	return math.Max(0, math.Min(100, score))
}

// marketScore weighs log-scale sales volume against review-count saturation.
// Saturation never erases more than the configured discount of the sales
// score, so high-volume niches keep a floor value.
func (a *Analyzer) marketScore(sales, reviews int) float64 {
	if sales == 0 {
		return 0
	}

	salesScore := math.Log10(float64(sales)+1) / a.cfg.SalesPerfectLog * 100
	salesScore = math.Min(100, salesScore)

	saturationRatio := math.Min(1, float64(reviews)/float64(a.cfg.SaturationLimit))

	return math.Max(0, salesScore*(1-saturationRatio*a.cfg.SaturationDiscount))
}

// classify walks the decision ladder in strict priority order; the first
// matching rule wins. Note that sales exactly equal to MinSalesProof satisfy
// neither the Dead nor the Stable rule and fall through.
func (a *Analyzer) classify(slope, volatility float64, sales, reviews int, searchScore float64) (Label, string) {
	minSales := a.cfg.MinSalesProof

	if sales < minSales && searchScore < 40 {
		return LabelDead, "Low search volume and negligible sales."
	}
	if reviews > a.cfg.SaturationLimit {
		return LabelSaturated, fmt.Sprintf("High competition (%d avg reviews). Hard to enter.", reviews)
	}
	if slope < -2 {
		return LabelDeclining, "Search interest is actively dropping."
	}
	if slope > 5 && volatility > a.cfg.ViralityThreshold {
		return LabelViral, "Explosive growth with high social volatility."
	}
	if slope > 3 {
		return LabelGrowth, "Steady, reliable upward trend."
	}
	if slope >= -2 && slope < 3 && sales > minSales {
		return LabelStable, "Flat search trend but proven consistent sales."
	}
	if searchScore > 70 && sales < minSales {
		return LabelSpeculative, "High search interest but low supply. Opportunity?"
	}
	return LabelUnknown, "Data inconclusive."
}

// round2 rounds to two decimals, half away from zero
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
