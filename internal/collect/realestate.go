package collect

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/leadforge/leadscout/internal/model"
)

// RealEstateCollector generates leads for real estate agents.
type RealEstateCollector struct {
	source
	profile Profile
}

// NewRealEstateCollector creates a collector seeded for reproducible runs.
func NewRealEstateCollector(profile Profile, seed int64, ratePerSec float64) *RealEstateCollector {
	return &RealEstateCollector{
		source:  newSource(seed, ratePerSec),
		profile: profile,
	}
}

func (*RealEstateCollector) Niche() string { return "real_estate" }

func (c *RealEstateCollector) Collect(ctx context.Context, n int) ([]model.Lead, error) {
	zap.L().Info("starting collection", zap.String("niche", c.Niche()), zap.Int("samples", n))

	leads := make([]model.Lead, 0, n)
	for i := 0; i < n; i++ {
		if err := c.wait(ctx); err != nil {
			return leads, err
		}

		agency := c.pick(c.profile.RealEstate.Agencies)
		domain := strings.ReplaceAll(strings.ToLower(agency), " ", "")

		leads = append(leads, model.Lead{
			FirstName: "Agent",
			LastName:  fmt.Sprintf("%d", i+1),
			Company:   agency,
			Role:      "Estate Agent",
			Niche:     c.Niche(),
			Source:    "sample",
			Location:  c.pick(c.profile.RealEstate.Areas),
			Phone:     "08" + c.digits(8),
			Email:     fmt.Sprintf("agent%d@%s.co.za", i+1, domain),
			Verified:  true,
		})
	}

	zap.L().Info("collection finished", zap.String("niche", c.Niche()), zap.Int("collected", len(leads)))
	return leads, nil
}
