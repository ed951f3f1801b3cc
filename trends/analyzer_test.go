package trends

import (
	"math"
	"testing"

	"github.com/Hammad1029/trend-finder/config"
)

func newTestAnalyzer() *Analyzer {
	return NewAnalyzer(config.DefaultTrends())
}

func fp(v float64) *float64 { return &v }

func seriesOf(values ...float64) []SeriesPoint {
	points := make([]SeriesPoint, len(values))
	for i, v := range values {
		points[i] = SeriesPoint{Timestamp: int64(i), Values: []*float64{fp(v)}}
	}
	return points
}

func TestSearchMetricsDefaults(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		name   string
		points []SeriesPoint
	}{
		{"nil series", nil},
		{"empty series", []SeriesPoint{}},
		{"all zero", seriesOf(0, 0, 0)},
		{"all missing", []SeriesPoint{{Values: []*float64{nil, nil}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := a.searchMetrics(tt.points)
			if m.slope != 0 || m.volatility != 0 || m.recentStrength != 0 {
				t.Errorf("expected zero metrics, got %+v", m)
			}
		})
	}
}

func TestSearchMetricsNormalization(t *testing.T) {
	a := newTestAnalyzer()

	// max maps to 100, last value is recent strength
	m := a.searchMetrics(seriesOf(10, 20, 40))
	if m.recentStrength != 100 {
		t.Errorf("recent strength = %v, want 100", m.recentStrength)
	}
	// normalized series 25, 50, 100: OLS slope = 37.5
	if math.Abs(m.slope-37.5) > 1e-9 {
		t.Errorf("slope = %v, want 37.5", m.slope)
	}
	// population std of {25, 50, 100}
	wantStd := math.Sqrt(((25-175.0/3)*(25-175.0/3) + (50-175.0/3)*(50-175.0/3) + (100-175.0/3)*(100-175.0/3)) / 3)
	if math.Abs(m.volatility-wantStd) > 1e-9 {
		t.Errorf("volatility = %v, want %v", m.volatility, wantStd)
	}
}

func TestSearchMetricsSumsKeywordsAndSkipsMissing(t *testing.T) {
	a := newTestAnalyzer()

	points := []SeriesPoint{
		{Values: []*float64{fp(10), fp(10), nil}},
		{Values: []*float64{fp(20), nil, fp(20)}},
	}
	m := a.searchMetrics(points)
	// sums: 20, 40 -> normalized 50, 100
	if m.recentStrength != 100 {
		t.Errorf("recent strength = %v, want 100", m.recentStrength)
	}
	if math.Abs(m.slope-50) > 1e-9 {
		t.Errorf("slope = %v, want 50", m.slope)
	}
}

func TestSearchMetricsSinglePointSlopeZero(t *testing.T) {
	a := newTestAnalyzer()

	m := a.searchMetrics(seriesOf(42))
	if m.slope != 0 {
		t.Errorf("slope = %v, want 0 for single point", m.slope)
	}
	if m.recentStrength != 100 {
		t.Errorf("recent strength = %v, want 100", m.recentStrength)
	}
}

func TestSearchScoreClamps(t *testing.T) {
	a := newTestAnalyzer()

	// strong growth blows past 100 and clamps
	if got := a.searchScore(searchMetrics{slope: 20, volatility: 30, recentStrength: 90}); got != 100 {
		t.Errorf("expected clamp at 100, got %v", got)
	}
	// steep decline drops below zero and clamps
	if got := a.searchScore(searchMetrics{slope: -20, volatility: 30, recentStrength: 10}); got != 0 {
		t.Errorf("expected clamp at 0, got %v", got)
	}
	// declining branch subtracts the volatility penalty
	got := a.searchScore(searchMetrics{slope: -1, volatility: 10, recentStrength: 50})
	if math.Abs(got-35) > 1e-9 {
		t.Errorf("expected 35, got %v", got)
	}
}

func TestMarketScore(t *testing.T) {
	a := newTestAnalyzer()

	if got := a.marketScore(0, 9999); got != 0 {
		t.Errorf("sales=0 must yield 0 regardless of reviews, got %v", got)
	}

	// 999 sales, no reviews: log10(1000)/3*100 = 100, no saturation discount
	if got := a.marketScore(999, 0); math.Abs(got-100) > 1e-9 {
		t.Errorf("expected 100, got %v", got)
	}

	// fully saturated keeps a 20% floor
	if got := a.marketScore(999, 500); math.Abs(got-20) > 1e-9 {
		t.Errorf("expected 20, got %v", got)
	}

	// saturation beyond the limit clamps at the same floor
	if got := a.marketScore(999, 5000); math.Abs(got-20) > 1e-9 {
		t.Errorf("expected 20, got %v", got)
	}
}

func TestSaturationRatioMonotonicAndClamped(t *testing.T) {
	a := newTestAnalyzer()

	prev := -1.0
	for _, reviews := range []int{0, 100, 250, 499, 500, 750, 10000} {
		got := a.Analyze(nil, 100, reviews).SaturationRatio
		if got < prev {
			t.Errorf("saturation ratio decreased at reviews=%d: %v < %v", reviews, got, prev)
		}
		if reviews >= 500 && got != 1.0 {
			t.Errorf("saturation ratio at reviews=%d is %v, want 1.0", reviews, got)
		}
		prev = got
	}
}

func TestClassifyPriorityOrder(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		name        string
		slope       float64
		volatility  float64
		sales       int
		reviews     int
		searchScore float64
		want        Label
	}{
		// rule 1 beats rule 2 even with saturated reviews
		{"dead before saturated", 0, 0, 10, 600, 10, LabelDead},
		{"saturated", 0, 0, 100, 600, 50, LabelSaturated},
		{"declining", -5, 0, 100, 100, 50, LabelDeclining},
		{"viral", 6, 25, 100, 100, 50, LabelViral},
		{"growth without hype", 6, 5, 100, 100, 50, LabelGrowth},
		{"growth moderate slope", 4, 25, 100, 100, 50, LabelGrowth},
		{"stable", 1, 5, 100, 100, 50, LabelStable},
		{"stable at lower slope bound", -2, 5, 100, 100, 50, LabelStable},
		{"speculative", 1, 5, 10, 100, 80, LabelSpeculative},
		{"unknown", 1, 5, 10, 100, 50, LabelUnknown},
		// sales exactly at the proof threshold satisfy neither rule 1 nor rule 6
		{"boundary sales fall through", 1, 5, 50, 100, 10, LabelUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, explanation := a.classify(tt.slope, tt.volatility, tt.sales, tt.reviews, tt.searchScore)
			if got != tt.want {
				t.Errorf("classify() = %s, want %s", got, tt.want)
			}
			if explanation == "" {
				t.Error("expected a non-empty explanation")
			}
		})
	}
}

func TestAnalyzeFinalScore(t *testing.T) {
	a := newTestAnalyzer()

	// flat series at full strength: slope 0, volatility 0, recent 100
	// search score 100, market score for 999 sales / 0 reviews is 100
	got := a.Analyze(seriesOf(50, 50, 50), 999, 0)
	if got.FinalScore != 100 {
		t.Errorf("final score = %d, want 100", got.FinalScore)
	}
	if got.SearchScore != 100 {
		t.Errorf("search score = %v, want 100", got.SearchScore)
	}

	// no series, sales below proof: dead with market-only weight
	dead := a.Analyze(nil, 10, 0)
	if dead.Label != LabelDead {
		t.Errorf("label = %s, want Dead", dead.Label)
	}
	if dead.FinalScore < 0 || dead.FinalScore > 100 {
		t.Errorf("final score %d out of range", dead.FinalScore)
	}
}

func TestAnalyzeWeightedComposite(t *testing.T) {
	a := newTestAnalyzer()

	// floor(0.6*80 + 0.4*50) = 68
	if got := int(math.Floor(80*a.cfg.SearchWeight + 50*a.cfg.MarketWeight)); got != 68 {
		t.Errorf("weighted composite = %d, want 68", got)
	}
}

type recordingObserver struct {
	called bool
	slope  float64
}

func (r *recordingObserver) ObserveSeries(x, y []float64, slope, intercept float64) {
	r.called = true
	r.slope = slope
}

func TestObserverHook(t *testing.T) {
	a := newTestAnalyzer()
	obs := &recordingObserver{}
	a.SetObserver(obs)

	a.Analyze(seriesOf(10, 20, 30), 100, 100)
	if !obs.called {
		t.Error("observer was not invoked")
	}

	// absent series: nothing to observe
	obs.called = false
	a.Analyze(nil, 100, 100)
	if obs.called {
		t.Error("observer invoked for missing series")
	}
}
