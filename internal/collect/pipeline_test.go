package collect

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadforge/leadscout/internal/events"
	"github.com/leadforge/leadscout/internal/model"
	"github.com/leadforge/leadscout/internal/scoring"
	"github.com/leadforge/leadscout/internal/store"
)

func newPipeline(t *testing.T) (*Pipeline, store.Store, *events.MemoryBus) {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, st.Migrate(context.Background()))
	t.Cleanup(func() { _ = st.Close() })

	bus := events.NewMemoryBus()
	return NewPipeline(st, scoring.NewCalculator(scoring.DefaultConfig()), bus), st, bus
}

func TestPipelineSavesAndScores(t *testing.T) {
	p, st, bus := newPipeline(t)
	ctx := context.Background()

	var published int
	bus.Subscribe(events.LeadScoredName, events.HandlerFunc(func(context.Context, events.Event) error {
		published++
		return nil
	}))

	leads := []model.Lead{
		{Email: "a@example.com", Phone: "0821234567", Niche: "tutors", Verified: true},
		{Email: "b@example.com", Phone: "0839876543", Niche: "tutors"},
	}
	stats, err := p.SaveAll(ctx, leads)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Saved)
	assert.Equal(t, 2, published)

	saved, err := st.ListLeads(ctx, store.LeadFilter{})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	for _, lead := range saved {
		assert.Greater(t, lead.Score, 0.0)
		assert.NotNil(t, lead.ScoredAt)
	}
}

func TestPipelineSkipsDuplicates(t *testing.T) {
	p, _, _ := newPipeline(t)
	ctx := context.Background()

	lead := model.Lead{Email: "dup@example.com", Phone: "0821234567"}

	stats, err := p.SaveAll(ctx, []model.Lead{lead})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Saved)

	stats, err = p.SaveAll(ctx, []model.Lead{lead})
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Saved)
	assert.Equal(t, 1, stats.Duplicates)
}

func TestPipelineSkipsBlacklisted(t *testing.T) {
	p, st, _ := newPipeline(t)
	ctx := context.Background()

	require.NoError(t, st.AddToBlacklist(ctx, "spam@example.com", "opt-out"))

	stats, err := p.SaveAll(ctx, []model.Lead{
		{Email: "spam@example.com", Phone: "0821234567"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Saved)
	assert.Equal(t, 1, stats.Blacklisted)
}
