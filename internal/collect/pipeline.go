package collect

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/leadforge/leadscout/internal/events"
	"github.com/leadforge/leadscout/internal/model"
	"github.com/leadforge/leadscout/internal/scoring"
	"github.com/leadforge/leadscout/internal/store"
)

// Pipeline persists collected leads: each lead is cleaned upstream, then
// checked against the blacklist and for duplicates already in the store,
// scored, inserted, and announced on the bus.
type Pipeline struct {
	store store.Store
	calc  *scoring.Calculator
	bus   events.Bus
}

// NewPipeline creates a Pipeline.
func NewPipeline(st store.Store, calc *scoring.Calculator, bus events.Bus) *Pipeline {
	return &Pipeline{store: st, calc: calc, bus: bus}
}

// Stats summarizes one SaveAll run.
type Stats struct {
	Saved       int
	Duplicates  int
	Blacklisted int
	Failed      int
}

// SaveAll runs every lead through the pipeline. Individual failures are
// logged and counted; an error is returned only when nothing could be
// processed at all.
func (p *Pipeline) SaveAll(ctx context.Context, leads []model.Lead) (Stats, error) {
	var stats Stats

	for _, lead := range leads {
		if err := ctx.Err(); err != nil {
			return stats, eris.Wrap(err, "collect: save interrupted")
		}

		switch err := p.save(ctx, lead); {
		case err == nil:
			stats.Saved++
		case eris.Is(err, errDuplicate):
			stats.Duplicates++
		case eris.Is(err, errBlacklisted):
			stats.Blacklisted++
		default:
			stats.Failed++
			zap.L().Warn("failed to save lead",
				zap.String("identifier", lead.Identifier()),
				zap.Error(err))
		}
	}

	zap.L().Info("collection pipeline finished",
		zap.Int("saved", stats.Saved),
		zap.Int("duplicates", stats.Duplicates),
		zap.Int("blacklisted", stats.Blacklisted),
		zap.Int("failed", stats.Failed))

	if stats.Saved == 0 && stats.Failed > 0 {
		return stats, eris.Errorf("collect: all %d saves failed", stats.Failed)
	}
	return stats, nil
}

var (
	errDuplicate   = eris.New("duplicate lead")
	errBlacklisted = eris.New("blacklisted lead")
)

func (p *Pipeline) save(ctx context.Context, lead model.Lead) error {
	blocked, err := p.store.IsBlacklisted(ctx, lead.Identifier())
	if err != nil {
		return eris.Wrap(err, "collect: check blacklist")
	}
	if blocked {
		return errBlacklisted
	}

	existing, err := p.store.FindByContact(ctx, lead.Email, lead.Phone)
	if err != nil {
		return eris.Wrap(err, "collect: check duplicate")
	}
	if existing != nil {
		return errDuplicate
	}

	// Score before insert so new leads land queryable by score.
	result := p.calc.Score(lead)
	lead.Score = result.Score
	lead.ScoreFeatures = result.Features
	lead.ScoredAt = &result.ScoredAt

	saved, err := p.store.InsertLead(ctx, lead)
	if err != nil {
		return eris.Wrap(err, "collect: insert lead")
	}

	p.bus.Publish(ctx, events.LeadScored{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    saved.ID,
		Score:     saved.Score,
	})
	return nil
}
