package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/leadforge/leadscout/internal/config"
)

// Config is an alias for the application-level scoring configuration.
type Config = config.ScoringConfig

// DefaultConfig returns the standard feature weights. Weights sum to 1.0.
func DefaultConfig() Config {
	return Config{
		ContactWeight:      0.30,
		BusinessWeight:     0.25,
		FreshnessWeight:    0.20,
		VerificationWeight: 0.15,
		EngagementWeight:   0.10,
	}
}

// WeightSum returns the sum of all feature weights.
func WeightSum(c Config) float64 {
	return c.ContactWeight + c.BusinessWeight + c.FreshnessWeight +
		c.VerificationWeight + c.EngagementWeight
}

// Validate checks that a scoring config is internally consistent.
func Validate(c Config) error {
	var errs []string

	weights := map[string]float64{
		"contact_weight":      c.ContactWeight,
		"business_weight":     c.BusinessWeight,
		"freshness_weight":    c.FreshnessWeight,
		"verification_weight": c.VerificationWeight,
		"engagement_weight":   c.EngagementWeight,
	}
	for name, w := range weights {
		if w < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
		}
	}

	// Weights must sum to 1.0 (allow tolerance for floating-point).
	if sum := WeightSum(c); math.Abs(sum-1.0) > 0.001 {
		errs = append(errs, fmt.Sprintf("weights should sum to 1.0, got %.3f", sum))
	}

	if len(errs) > 0 {
		return eris.Errorf("scoring: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// weightMap keys the weights by feature name for the composite calculation.
func weightMap(c Config) map[string]float64 {
	return map[string]float64{
		FeatureContactCompleteness: c.ContactWeight,
		FeatureBusinessPresence:    c.BusinessWeight,
		FeatureDataFreshness:       c.FreshnessWeight,
		FeatureVerificationStatus:  c.VerificationWeight,
		FeatureEngagementSignals:   c.EngagementWeight,
	}
}
