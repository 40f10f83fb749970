package recommend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadforge/leadscout/internal/model"
)

func nicheLeads(niche string, n int) []model.Lead {
	leads := make([]model.Lead, n)
	for i := range leads {
		leads[i] = model.Lead{Niche: niche}
	}
	return leads
}

func TestTrendingCountsAndOrder(t *testing.T) {
	var leads []model.Lead
	leads = append(leads, nicheLeads("tutoring", 3)...)
	leads = append(leads, nicheLeads("real_estate", 5)...)
	leads = append(leads, nicheLeads("plumbing", 1)...)

	entries := Trending(leads, 7, 10)

	require.Len(t, entries, 3)
	assert.Equal(t, "real_estate", entries[0].Niche)
	assert.Equal(t, 5, entries[0].Count)
	assert.Equal(t, "tutoring", entries[1].Niche)
	assert.Equal(t, "plumbing", entries[2].Niche)
	for _, e := range entries {
		assert.Equal(t, 7, e.WindowDays)
		assert.Equal(t, "up", e.Trend)
	}
}

func TestTrendingTieBreaksByName(t *testing.T) {
	var leads []model.Lead
	leads = append(leads, nicheLeads("zebra_care", 2)...)
	leads = append(leads, nicheLeads("aquariums", 2)...)

	entries := Trending(leads, 30, 10)

	require.Len(t, entries, 2)
	assert.Equal(t, "aquariums", entries[0].Niche)
	assert.Equal(t, "zebra_care", entries[1].Niche)
}

func TestTrendingLimit(t *testing.T) {
	var leads []model.Lead
	leads = append(leads, nicheLeads("a", 3)...)
	leads = append(leads, nicheLeads("b", 2)...)
	leads = append(leads, nicheLeads("c", 1)...)

	entries := Trending(leads, 7, 2)
	assert.Len(t, entries, 2)
}

func TestTrendingSkipsEmptyNiche(t *testing.T) {
	leads := []model.Lead{{Niche: ""}, {Niche: "tutoring"}}

	entries := Trending(leads, 7, 10)

	require.Len(t, entries, 1)
	assert.Equal(t, "tutoring", entries[0].Niche)
}

func TestTrendingEmptyInput(t *testing.T) {
	assert.Empty(t, Trending(nil, 7, 10))
}

func TestTrendingMonotonicWithWindow(t *testing.T) {
	now := time.Now().UTC()
	mk := func(daysOld int) model.Lead {
		created := now.Add(-time.Duration(daysOld) * 24 * time.Hour)
		return model.Lead{Niche: "tutoring", CreatedAt: &created}
	}
	all := []model.Lead{mk(1), mk(10), mk(45), mk(120)}

	inWindow := func(days int) []model.Lead {
		cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)
		var out []model.Lead
		for _, l := range all {
			if l.CreatedAt.After(cutoff) {
				out = append(out, l)
			}
		}
		return out
	}

	var prev int
	for _, days := range []int{7, 30, 90, 180} {
		entries := Trending(inWindow(days), days, 10)
		var count int
		if len(entries) > 0 {
			count = entries[0].Count
		}
		assert.GreaterOrEqual(t, count, prev, "window %d days", days)
		prev = count
	}
}
