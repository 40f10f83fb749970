// Package store provides lead persistence over SQLite or Postgres.
package store

import (
	"context"
	"time"

	"github.com/leadforge/leadscout/internal/model"
)

// Order determines the sort applied by ListLeads.
type Order string

const (
	// OrderByCreated sorts newest first.
	OrderByCreated Order = "created"
	// OrderByScore sorts by score descending, then newest first.
	OrderByScore Order = "score"
)

// LeadFilter specifies criteria for listing leads.
type LeadFilter struct {
	Niche    string    `json:"niche,omitempty"`
	Since    time.Time `json:"since,omitempty"` // zero value = no time bound
	MinScore float64   `json:"min_score,omitempty"`
	Unscored bool      `json:"unscored,omitempty"` // only leads never scored
	OrderBy  Order     `json:"order_by,omitempty"` // default OrderByCreated
	Limit    int       `json:"limit,omitempty"`
	Offset   int       `json:"offset,omitempty"`
}

// Store defines the persistence interface for leads.
// Lookup methods return (nil, nil) when no row matches.
type Store interface {
	// Leads
	InsertLead(ctx context.Context, lead model.Lead) (*model.Lead, error)
	GetLead(ctx context.Context, id string) (*model.Lead, error)
	FindByContact(ctx context.Context, email, phone string) (*model.Lead, error)
	ListLeads(ctx context.Context, filter LeadFilter) ([]model.Lead, error)

	// Scoring write-back. The computed result stays valid even if this
	// single-row write fails; callers surface the two outcomes separately.
	SaveScore(ctx context.Context, leadID string, score float64, features map[string]float64, at time.Time) error

	// Blacklist suppression, keyed by email-or-phone identifier.
	AddToBlacklist(ctx context.Context, identifier, reason string) error
	IsBlacklisted(ctx context.Context, identifier string) (bool, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
