// Package recommend ranks leads: content similarity against a target,
// trending niches inside a time window, and a composed recommendation
// list gated by score threshold. All entry points are pure functions
// over the snapshot the caller supplies.
package recommend

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/leadforge/leadscout/internal/config"
	"github.com/leadforge/leadscout/internal/model"
)

// Engine holds recommendation thresholds. It has no mutable state and
// may be shared across goroutines.
type Engine struct {
	cfg config.RecommendConfig
}

// NewEngine creates an Engine with the given thresholds.
func NewEngine(cfg config.RecommendConfig) *Engine {
	return &Engine{cfg: cfg}
}

// soup flattens a lead's descriptive fields into one lowercase document
// for vectorization.
func soup(lead model.Lead) string {
	parts := []string{lead.Niche, lead.Company, lead.Role, lead.Location, lead.Source}
	return strings.ToLower(strings.TrimSpace(strings.Join(parts, " ")))
}

// Similar ranks the pool by textual similarity to the target lead.
// The target must be present in the pool; an unknown target, an empty
// pool, or a corpus with no usable terms all produce an empty result.
// The pool is expected to be bounded by the caller.
func (e *Engine) Similar(targetID string, pool []model.Lead, limit int) model.SimilarityResult {
	result := model.SimilarityResult{TargetID: targetID}

	targetIdx := -1
	for i, lead := range pool {
		if lead.ID == targetID {
			targetIdx = i
			break
		}
	}
	if targetIdx < 0 {
		zap.L().Debug("similarity target not in pool", zap.String("target_id", targetID))
		return result
	}

	docs := make([]string, len(pool))
	for i, lead := range pool {
		docs[i] = soup(lead)
	}

	v := newVectorizer(docs)
	if v == nil {
		zap.L().Warn("similarity corpus has no usable terms",
			zap.String("target_id", targetID),
			zap.Int("pool_size", len(pool)))
		return result
	}

	target := v.transform(docs[targetIdx])
	matches := make([]model.SimilarMatch, 0, len(pool)-1)
	for i, lead := range pool {
		if i == targetIdx {
			continue
		}
		matches = append(matches, model.SimilarMatch{
			Lead:       lead,
			Similarity: cosine(target, v.transform(docs[i])),
		})
	}

	// Stable sort keeps original pool order between equal scores.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	result.Matches = matches
	return result
}
