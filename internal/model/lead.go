// Package model defines the domain types shared across the lead pipeline.
package model

import (
	"strings"
	"time"
)

// Lead represents a business contact record collected from a source.
// Optional fields use pointers so that "absent" is distinguishable from
// a zero value; timestamp parsing happens at the ingestion boundary, so
// an unparseable date arrives here as nil.
type Lead struct {
	ID        string `json:"id"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Company   string `json:"company,omitempty"`
	Role      string `json:"role,omitempty"`
	Niche     string `json:"niche,omitempty"`
	Source    string `json:"source,omitempty"`
	URL       string `json:"url,omitempty"`
	Location  string `json:"location,omitempty"`

	// Online presence.
	Website        string `json:"website,omitempty"`
	SocialMediaURL string `json:"social_media_url,omitempty"`
	Description    string `json:"description,omitempty"`

	// Quality signals.
	Rating            *float64   `json:"rating,omitempty"`  // 0-5 scale
	Reviews           *int       `json:"reviews,omitempty"` // review count
	Verified          bool       `json:"verified,omitempty"`
	SocialMediaActive bool       `json:"social_media_active,omitempty"`
	ResponseRate      *float64   `json:"response_rate,omitempty"` // 0-1
	LastActivity      *time.Time `json:"last_activity,omitempty"`

	CreatedAt *time.Time `json:"created_at,omitempty"`

	// Scoring output, persisted alongside the lead.
	Score         float64            `json:"score"`
	ScoreFeatures map[string]float64 `json:"score_features,omitempty"`
	ScoredAt      *time.Time         `json:"scored_at,omitempty"`
}

// Identifier returns the contact handle used for deduplication and
// blacklist checks: email when present, otherwise phone.
func (l Lead) Identifier() string {
	if l.Email != "" {
		return l.Email
	}
	return l.Phone
}

// DisplayName returns the lead's name, falling back to company.
func (l Lead) DisplayName() string {
	name := strings.TrimSpace(l.FirstName + " " + l.LastName)
	if name != "" {
		return name
	}
	return l.Company
}

// ScoreResult is the ephemeral outcome of scoring one lead. It is produced
// per call, immutable, and owned by the caller; persistence is separate.
type ScoreResult struct {
	LeadID   string             `json:"lead_id,omitempty"`
	Score    float64            `json:"score"`
	Features map[string]float64 `json:"features"`
	ScoredAt time.Time          `json:"scored_at"`
}

// SimilarMatch pairs a candidate lead with its similarity to the target.
type SimilarMatch struct {
	Lead       Lead    `json:"lead"`
	Similarity float64 `json:"similarity"`
}

// SimilarityResult holds candidates ranked by similarity to a target lead,
// sorted descending. Length never exceeds the requested limit.
type SimilarityResult struct {
	TargetID string         `json:"target_id"`
	Matches  []SimilarMatch `json:"matches"`
}

// TrendingEntry reports recent lead volume for one niche inside a window.
// Trend is always "up": there is no comparison against a prior window.
type TrendingEntry struct {
	Niche      string `json:"niche"`
	Count      int    `json:"count"`
	WindowDays int    `json:"window_days"`
	Trend      string `json:"trend"`
}
