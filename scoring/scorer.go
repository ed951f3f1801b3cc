package scoring

import (
	"math"

	"github.com/Hammad1029/trend-finder/config"
)

// ProductSignals carries the raw listing signals the scorer reads.
// Callers map their own product records into this at the boundary.
type ProductSignals struct {
	Description    string
	ReviewCount    int
	SalesLastMonth int
	SearchRanking  int
	Sponsored      bool
}

// Scorer converts one listing's raw signals into a 0-100 opportunity score.
// It is a pure function of its input: three weighted components (demand,
// velocity, friction) whose weights sum to 100.
type Scorer struct {
	cfg config.ScoringConfig
}

// NewScorer creates a scorer with the given weights
func NewScorer(cfg config.ScoringConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score computes the opportunity score for one listing.
//
// Demand rewards log-scale sales volume, velocity rewards sales relative to
// review count (fresh movers beat entrenched listings), friction rewards a
// deep search ranking and listing flaws the incumbent carries. Every division
// is protected by construction: sales are floored to 1 before the log and the
// review smoother keeps the velocity denominator positive.
func (s *Scorer) Score(p ProductSignals) int {
	sales := p.SalesLastMonth
	if sales <= 0 {
		sales = 1
	}
	demand := s.weigh(math.Log10(float64(sales))/s.cfg.DemandMaxLog, s.cfg.DemandWeight)

	velocity := s.weigh(
		float64(p.SalesLastMonth)/float64(p.ReviewCount+s.cfg.ReviewSmoother)*s.cfg.VelocityScaler,
		s.cfg.VelocityWeight,
	)

	frictionRank := math.Min(
		float64(s.cfg.FrictionWeight)/2,
		float64(p.SearchRanking)/s.cfg.FrictionRankDivider,
	)
	frictionFlaws := 0
	if !p.Sponsored {
		frictionFlaws += s.cfg.FlawNotSponsored
	}
	if len(p.Description) < s.cfg.ShortDescLen {
		frictionFlaws += s.cfg.FlawShortDesc
	}
	friction := s.weigh(frictionRank+float64(frictionFlaws), s.cfg.FrictionWeight)

	return int(math.Floor(float64(demand + velocity + friction)))
}

// weigh scales value by weight, caps the result at the weight itself and
// truncates the fractional remainder. weigh(v, w) <= w for all v, w >= 0.
func (s *Scorer) weigh(value float64, weight int) int {
	return int(math.Floor(math.Min(float64(weight), float64(weight)*value)))
}
