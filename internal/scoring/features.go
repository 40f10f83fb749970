// Package scoring implements rule-based lead quality scoring: five
// normalized feature sub-scores combined into a weighted 0-100 composite.
package scoring

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/leadforge/leadscout/internal/model"
)

// Feature names. Every breakdown map contains exactly these five keys.
const (
	FeatureContactCompleteness = "contact_completeness"
	FeatureBusinessPresence    = "business_presence"
	FeatureDataFreshness       = "data_freshness"
	FeatureVerificationStatus  = "verification_status"
	FeatureEngagementSignals   = "engagement_signals"
)

// FeatureNames lists the five recognized features in weight order.
var FeatureNames = []string{
	FeatureContactCompleteness,
	FeatureBusinessPresence,
	FeatureDataFreshness,
	FeatureVerificationStatus,
	FeatureEngagementSignals,
}

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "+", "")
)

// Extractor converts a lead into five normalized feature sub-scores,
// each in [0,100]. It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	now func() time.Time
}

// NewExtractor creates an Extractor using the wall clock.
func NewExtractor() *Extractor {
	return &Extractor{now: func() time.Time { return time.Now().UTC() }}
}

// Extract returns the feature breakdown for a lead. The returned map
// always contains exactly the five recognized feature names.
func (e *Extractor) Extract(lead model.Lead) map[string]float64 {
	now := e.now()
	return map[string]float64{
		FeatureContactCompleteness: scoreContactCompleteness(lead),
		FeatureBusinessPresence:    scoreBusinessPresence(lead),
		FeatureDataFreshness:       scoreDataFreshness(lead, now),
		FeatureVerificationStatus:  scoreVerification(lead),
		FeatureEngagementSignals:   scoreEngagement(lead, now),
	}
}

// scoreContactCompleteness scores available contact information.
// Valid phone and email are worth 40 each; present-but-invalid 20 each;
// social profile and website 10 each. Capped at 100.
func scoreContactCompleteness(lead model.Lead) float64 {
	var score float64

	if lead.Phone != "" {
		if validPhone(lead.Phone) {
			score += 40
		} else {
			score += 20
		}
	}
	if lead.Email != "" {
		if validEmail(lead.Email) {
			score += 40
		} else {
			score += 20
		}
	}
	if lead.SocialMediaURL != "" {
		score += 10
	}
	if lead.Website != "" {
		score += 10
	}

	return clamp(score, 0, 100)
}

// scoreBusinessPresence scores the lead's business footprint.
func scoreBusinessPresence(lead model.Lead) float64 {
	var score float64

	if lead.Company != "" {
		score += 20
	}
	if lead.Location != "" {
		score += 20
	}
	if lead.Rating != nil {
		// Rating on a 0-5 scale contributes up to 30.
		score += (*lead.Rating / 5.0) * 30
	}
	if lead.Reviews != nil {
		score += math.Min(15, float64(*lead.Reviews)/10.0)
	}
	if lead.Description != "" {
		score += 15
	}

	return clamp(score, 0, 100)
}

// scoreDataFreshness buckets the lead's age. An unknown creation date
// (missing, or unparseable upstream) scores a neutral 50.
func scoreDataFreshness(lead model.Lead, now time.Time) float64 {
	if lead.CreatedAt == nil {
		return 50
	}

	days := daysBetween(*lead.CreatedAt, now)
	switch {
	case days <= 7:
		return 100
	case days <= 30:
		return 80
	case days <= 90:
		return 60
	case days <= 180:
		return 40
	default:
		return 20
	}
}

// scoreVerification returns 100 for explicitly verified leads, otherwise
// partial credit for each verifiable contact field present.
func scoreVerification(lead model.Lead) float64 {
	if lead.Verified {
		return 100
	}

	var fields int
	if lead.Phone != "" {
		fields++
	}
	if lead.Email != "" {
		fields++
	}
	if lead.Website != "" {
		fields++
	}
	return float64(fields) / 3.0 * 50
}

// scoreEngagement scores activity indicators: recent activity, social
// media presence, and responsiveness. Capped at 100.
func scoreEngagement(lead model.Lead, now time.Time) float64 {
	var score float64

	if lead.LastActivity != nil {
		switch days := daysBetween(*lead.LastActivity, now); {
		case days <= 7:
			score += 50
		case days <= 30:
			score += 30
		case days <= 90:
			score += 15
		}
	}
	if lead.SocialMediaActive {
		score += 25
	}
	if lead.ResponseRate != nil {
		score += *lead.ResponseRate * 25
	}

	return clamp(score, 0, 100)
}

// validPhone strips common separators and accepts 7-15 remaining digits.
func validPhone(phone string) bool {
	cleaned := phoneSeparators.Replace(phone)
	if len(cleaned) < 7 || len(cleaned) > 15 {
		return false
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// daysBetween returns whole days elapsed from t to now, matching integer
// day arithmetic: 6d23h is 6 days. Future timestamps count as 0 days old.
func daysBetween(t, now time.Time) int {
	d := now.Sub(t)
	if d < 0 {
		return 0
	}
	return int(d.Hours() / 24)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
