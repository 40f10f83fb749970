// Package collect gathers sample leads per niche and runs them through a
// cleaning and persistence pipeline. Collectors are independent
// implementations of one interface; there is no shared base type.
package collect

import (
	"context"
	"math/rand"

	"golang.org/x/time/rate"

	"github.com/leadforge/leadscout/internal/model"
)

// Collector produces leads for one niche.
type Collector interface {
	// Niche returns the niche name stamped onto collected leads.
	Niche() string
	// Collect gathers up to n leads. Collectors pace themselves and
	// honor ctx cancellation mid-run.
	Collect(ctx context.Context, n int) ([]model.Lead, error)
}

// source bundles what every sample collector needs: a seeded generator
// for reproducible runs and a limiter so runs pace like polite scrapers.
type source struct {
	rng     *rand.Rand
	limiter *rate.Limiter
}

func newSource(seed int64, perSec float64) source {
	if perSec <= 0 {
		perSec = 10
	}
	return source{
		rng:     rand.New(rand.NewSource(seed)),
		limiter: rate.NewLimiter(rate.Limit(perSec), 1),
	}
}

func (s source) wait(ctx context.Context) error {
	return s.limiter.Wait(ctx)
}

func (s source) pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[s.rng.Intn(len(pool))]
}

// digits returns a string of n random digits with a nonzero leading digit.
func (s source) digits(n int) string {
	buf := make([]byte, n)
	buf[0] = byte('1' + s.rng.Intn(9))
	for i := 1; i < n; i++ {
		buf[i] = byte('0' + s.rng.Intn(10))
	}
	return string(buf)
}
