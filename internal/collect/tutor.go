package collect

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/leadforge/leadscout/internal/model"
)

// TutorCollector generates leads for private tutors.
type TutorCollector struct {
	source
	profile Profile
}

func NewTutorCollector(profile Profile, seed int64, ratePerSec float64) *TutorCollector {
	return &TutorCollector{
		source:  newSource(seed, ratePerSec),
		profile: profile,
	}
}

func (*TutorCollector) Niche() string { return "tutors" }

func (c *TutorCollector) Collect(ctx context.Context, n int) ([]model.Lead, error) {
	zap.L().Info("starting collection", zap.String("niche", c.Niche()), zap.Int("samples", n))

	leads := make([]model.Lead, 0, n)
	for i := 0; i < n; i++ {
		if err := c.wait(ctx); err != nil {
			return leads, err
		}

		subject := c.pick(c.profile.Tutors.Subjects)
		years := 1 + c.rng.Intn(15)

		leads = append(leads, model.Lead{
			FirstName:   "Tutor",
			LastName:    fmt.Sprintf("%d", i+1),
			Role:        subject + " Tutor",
			Niche:       c.Niche(),
			Source:      "sample",
			Location:    c.pick(c.profile.Tutors.Areas),
			Phone:       "07" + c.digits(8),
			Email:       fmt.Sprintf("tutor%d@example.com", i+1),
			Description: fmt.Sprintf("%s tutor, %d years experience", subject, years),
			Verified:    true,
		})
	}

	zap.L().Info("collection finished", zap.String("niche", c.Niche()), zap.Int("collected", len(leads)))
	return leads, nil
}
