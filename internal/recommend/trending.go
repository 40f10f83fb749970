package recommend

import (
	"sort"

	"github.com/leadforge/leadscout/internal/model"
)

// Trending counts leads per niche and returns the busiest niches first.
// The caller supplies leads already filtered to the window; windowDays is
// recorded on each entry for reporting. Ties break by niche name so output
// is deterministic. Direction is reported "up" unconditionally; there is
// no prior-window baseline to compare against.
func Trending(leads []model.Lead, windowDays, limit int) []model.TrendingEntry {
	counts := make(map[string]int)
	for _, lead := range leads {
		if lead.Niche == "" {
			continue
		}
		counts[lead.Niche]++
	}

	entries := make([]model.TrendingEntry, 0, len(counts))
	for niche, count := range counts {
		entries = append(entries, model.TrendingEntry{
			Niche:      niche,
			Count:      count,
			WindowDays: windowDays,
			Trend:      "up",
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Niche < entries[j].Niche
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
