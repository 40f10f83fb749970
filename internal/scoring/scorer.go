package scoring

import (
	"math"
	"time"

	"github.com/leadforge/leadscout/internal/model"
)

// Calculator combines feature sub-scores into a composite 0-100 lead score.
// It holds only immutable weights and may be shared across goroutines.
type Calculator struct {
	weights   map[string]float64
	extractor *Extractor
}

// NewCalculator creates a Calculator with the given weights. Callers should
// validate the config first; see Validate.
func NewCalculator(cfg Config) *Calculator {
	return &Calculator{
		weights:   weightMap(cfg),
		extractor: NewExtractor(),
	}
}

// Score computes the weighted composite score for a single lead.
// The result is pure: identical inputs produce identical outputs, and
// nothing is persisted here.
func (c *Calculator) Score(lead model.Lead) model.ScoreResult {
	features := c.extractor.Extract(lead)

	var total float64
	for name, value := range features {
		total += value * c.weights[name]
	}
	total = clamp(total, 0, 100)

	return model.ScoreResult{
		LeadID:   lead.ID,
		Score:    round2(total),
		Features: features,
		ScoredAt: c.extractor.now(),
	}
}

// ScoreBatch scores each lead independently, preserving input order.
// There is no cross-lead state.
func (c *Calculator) ScoreBatch(leads []model.Lead) []model.ScoreResult {
	results := make([]model.ScoreResult, len(leads))
	for i, lead := range leads {
		results[i] = c.Score(lead)
	}
	return results
}

// Interpret returns a human-readable quality label for a composite score.
func Interpret(score float64) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	case score >= 20:
		return "Poor"
	default:
		return "Very Poor"
	}
}

// round2 rounds to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// withClock returns a copy of the Calculator whose extractor uses the
// given clock. Used by tests; results stay deterministic under a fixed now.
func (c *Calculator) withClock(now func() time.Time) *Calculator {
	return &Calculator{
		weights:   c.weights,
		extractor: &Extractor{now: now},
	}
}
