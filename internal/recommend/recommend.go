package recommend

import (
	"sort"
	"time"

	"github.com/leadforge/leadscout/internal/model"
)

// Recommend picks high-scoring leads, restricted to the hottest trending
// niches when any exist. There is no fallback: if trending niches are
// given and no qualifying lead belongs to one, the result is empty.
// Output is ordered by score descending, then recency descending.
func (e *Engine) Recommend(leads []model.Lead, trending []model.TrendingEntry, limit int) []model.Lead {
	topNiches := make(map[string]bool)
	for i, entry := range trending {
		if i >= e.cfg.TopNiches {
			break
		}
		topNiches[entry.Niche] = true
	}

	var picked []model.Lead
	for _, lead := range leads {
		if lead.Score < e.cfg.ScoreThreshold {
			continue
		}
		if len(topNiches) > 0 && !topNiches[lead.Niche] {
			continue
		}
		picked = append(picked, lead)
	}

	sort.SliceStable(picked, func(i, j int) bool {
		if picked[i].Score != picked[j].Score {
			return picked[i].Score > picked[j].Score
		}
		return createdAt(picked[i]).After(createdAt(picked[j]))
	})

	if limit > 0 && len(picked) > limit {
		picked = picked[:limit]
	}
	return picked
}

// createdAt treats a missing creation timestamp as the oldest possible,
// so leads with known recency sort ahead on ties.
func createdAt(lead model.Lead) time.Time {
	if lead.CreatedAt == nil {
		return time.Time{}
	}
	return *lead.CreatedAt
}
