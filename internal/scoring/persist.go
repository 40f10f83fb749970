package scoring

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/leadforge/leadscout/internal/events"
	"github.com/leadforge/leadscout/internal/model"
	"github.com/leadforge/leadscout/internal/store"
)

// Persister writes computed scores back to the store and announces them
// on the event bus. Scoring itself stays pure; this is the only place the
// scoring package touches storage.
type Persister struct {
	store store.Store
	bus   events.Bus
}

// NewPersister creates a Persister. A NopBus is a fine bus for callers
// that do not care about score events.
func NewPersister(st store.Store, bus events.Bus) *Persister {
	return &Persister{store: st, bus: bus}
}

// Save persists a single score result and publishes a LeadScored event.
func (p *Persister) Save(ctx context.Context, result model.ScoreResult) error {
	if err := p.store.SaveScore(ctx, result.LeadID, result.Score, result.Features, result.ScoredAt); err != nil {
		return eris.Wrapf(err, "scoring: persist score for %s", result.LeadID)
	}

	p.bus.Publish(ctx, events.LeadScored{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    result.LeadID,
		Score:     result.Score,
	})
	return nil
}

// SaveAll persists a batch of results, continuing past individual
// failures. It returns the number saved; the error covers only the
// leads that failed.
func (p *Persister) SaveAll(ctx context.Context, results []model.ScoreResult) (int, error) {
	var saved int
	var failed []string

	for _, result := range results {
		if err := p.Save(ctx, result); err != nil {
			zap.L().Warn("failed to persist score",
				zap.String("lead_id", result.LeadID),
				zap.Error(err))
			failed = append(failed, result.LeadID)
			continue
		}
		saved++
	}

	if len(failed) > 0 {
		return saved, eris.Errorf("scoring: failed to persist %d of %d scores", len(failed), len(results))
	}
	return saved, nil
}
