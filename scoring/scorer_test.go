package scoring

import (
	"strings"
	"testing"

	"github.com/Hammad1029/trend-finder/config"
)

func TestScoreKnownScenario(t *testing.T) {
	s := NewScorer(config.DefaultScoring())

	// demand = 18, velocity capped at 30, friction capped at 30
	p := ProductSignals{
		Description:    strings.Repeat("x", 150),
		ReviewCount:    10,
		SalesLastMonth: 200,
		SearchRanking:  5,
		Sponsored:      true,
	}

	if got := s.Score(p); got != 78 {
		t.Errorf("expected score 78, got %d", got)
	}
}

func TestScoreBounds(t *testing.T) {
	s := NewScorer(config.DefaultScoring())

	tests := []struct {
		name string
		p    ProductSignals
	}{
		{"zero everything", ProductSignals{}},
		{"huge sales", ProductSignals{SalesLastMonth: 10_000_000, ReviewCount: 1}},
		{"deep ranking unsponsored short desc", ProductSignals{SearchRanking: 500, Sponsored: false}},
		{"negative sales treated as one", ProductSignals{SalesLastMonth: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(tt.p)
			if got < 0 || got > 100 {
				t.Errorf("score %d out of [0,100]", got)
			}
		})
	}
}

func TestWeighNeverExceedsWeight(t *testing.T) {
	s := NewScorer(config.DefaultScoring())

	values := []float64{0, 0.1, 0.5, 1, 1.5, 10, 1000}
	weights := []int{0, 10, 30, 40, 100}

	for _, v := range values {
		for _, w := range weights {
			if got := s.weigh(v, w); got > w {
				t.Errorf("weigh(%v, %d) = %d exceeds weight", v, w, got)
			}
		}
	}
}

func TestWeighTruncates(t *testing.T) {
	s := NewScorer(config.DefaultScoring())

	// 40 * 0.4602... = 18.408..., truncated to 18
	if got := s.weigh(0.46021, 40); got != 18 {
		t.Errorf("expected 18, got %d", got)
	}
}

func TestFrictionComponents(t *testing.T) {
	s := NewScorer(config.DefaultScoring())

	// No sales: demand = weigh(0, 40) = 0, velocity = 0.
	// Unsponsored + short description + rank 4 -> friction = weigh(1+15, 30) = 30 capped.
	p := ProductSignals{SearchRanking: 4, Sponsored: false, Description: "short"}
	if got := s.Score(p); got != 30 {
		t.Errorf("expected 30, got %d", got)
	}

	// Sponsored with long description removes both flaws; rank 4 contributes 1.
	p.Sponsored = true
	p.Description = strings.Repeat("y", 120)
	if got := s.Score(p); got != 30 {
		// friction = weigh(1, 30) = 30 (30*1 capped at 30)
		t.Errorf("expected 30, got %d", got)
	}

	// Rank 2 -> frictionRank 0.5, friction = weigh(0.5, 30) = 15.
	p.SearchRanking = 2
	if got := s.Score(p); got != 15 {
		t.Errorf("expected 15, got %d", got)
	}
}
