package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadforge/leadscout/internal/config"
	"github.com/leadforge/leadscout/internal/model"
)

func testEngine() *Engine {
	return NewEngine(config.RecommendConfig{
		ScoreThreshold: 70,
		TopNiches:      3,
		CandidateLimit: 1000,
	})
}

func TestSimilarRanksByContent(t *testing.T) {
	pool := []model.Lead{
		{ID: "target", Niche: "real_estate", Company: "Acme Realty", Location: "Austin"},
		{ID: "close", Niche: "real_estate", Company: "Best Realty", Location: "Austin"},
		{ID: "far", Niche: "tutoring", Company: "Math Wizards", Location: "Boston"},
	}

	result := testEngine().Similar("target", pool, 10)

	assert.Equal(t, "target", result.TargetID)
	require.Len(t, result.Matches, 2)
	assert.Equal(t, "close", result.Matches[0].Lead.ID)
	assert.Equal(t, "far", result.Matches[1].Lead.ID)
	assert.Greater(t, result.Matches[0].Similarity, result.Matches[1].Similarity)
}

func TestSimilarExcludesTarget(t *testing.T) {
	pool := []model.Lead{
		{ID: "target", Niche: "real_estate"},
		{ID: "twin", Niche: "real_estate"},
	}

	result := testEngine().Similar("target", pool, 10)

	require.Len(t, result.Matches, 1)
	assert.Equal(t, "twin", result.Matches[0].Lead.ID)
}

func TestSimilarBounds(t *testing.T) {
	pool := []model.Lead{
		{ID: "target", Niche: "real_estate", Company: "Acme"},
		{ID: "a", Niche: "real_estate", Company: "Acme"},
		{ID: "b", Niche: "plumbing", Company: "Drains R Us"},
		{ID: "c", Niche: "real_estate"},
	}

	result := testEngine().Similar("target", pool, 10)

	require.Len(t, result.Matches, 3)
	for i, m := range result.Matches {
		assert.GreaterOrEqual(t, m.Similarity, 0.0)
		assert.LessOrEqual(t, m.Similarity, 1.0+1e-9)
		if i > 0 {
			assert.LessOrEqual(t, m.Similarity, result.Matches[i-1].Similarity)
		}
	}
}

func TestSimilarLimit(t *testing.T) {
	pool := []model.Lead{
		{ID: "target", Niche: "real_estate"},
		{ID: "a", Niche: "real_estate"},
		{ID: "b", Niche: "real_estate"},
		{ID: "c", Niche: "real_estate"},
	}

	result := testEngine().Similar("target", pool, 2)
	assert.Len(t, result.Matches, 2)
}

func TestSimilarTiesKeepPoolOrder(t *testing.T) {
	pool := []model.Lead{
		{ID: "target", Niche: "real_estate"},
		{ID: "first", Niche: "real_estate"},
		{ID: "second", Niche: "real_estate"},
	}

	result := testEngine().Similar("target", pool, 10)

	require.Len(t, result.Matches, 2)
	assert.InDelta(t, result.Matches[0].Similarity, result.Matches[1].Similarity, 1e-9)
	assert.Equal(t, "first", result.Matches[0].Lead.ID)
	assert.Equal(t, "second", result.Matches[1].Lead.ID)
}

func TestSimilarUnknownTarget(t *testing.T) {
	pool := []model.Lead{{ID: "a", Niche: "real_estate"}}

	result := testEngine().Similar("ghost", pool, 10)

	assert.Equal(t, "ghost", result.TargetID)
	assert.Empty(t, result.Matches)
}

func TestSimilarEmptyPool(t *testing.T) {
	result := testEngine().Similar("target", nil, 10)
	assert.Empty(t, result.Matches)
}

func TestSimilarDegenerateCorpus(t *testing.T) {
	// All soups empty: no vocabulary can be built.
	pool := []model.Lead{
		{ID: "target"},
		{ID: "a"},
	}

	result := testEngine().Similar("target", pool, 10)
	assert.Empty(t, result.Matches)
}

func TestSoup(t *testing.T) {
	lead := model.Lead{
		Niche:    "Real_Estate",
		Company:  "Acme Realty",
		Role:     "Agent",
		Location: "Austin, TX",
		Source:   "gumtree",
	}
	assert.Equal(t, "real_estate acme realty agent austin, tx gumtree", soup(lead))
}
