package collect

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/leadforge/leadscout/internal/model"
)

// ServiceProviderCollector generates leads for trade service providers
// such as plumbers and electricians.
type ServiceProviderCollector struct {
	source
	profile Profile
}

func NewServiceProviderCollector(profile Profile, seed int64, ratePerSec float64) *ServiceProviderCollector {
	return &ServiceProviderCollector{
		source:  newSource(seed, ratePerSec),
		profile: profile,
	}
}

func (*ServiceProviderCollector) Niche() string { return "service_providers" }

func (c *ServiceProviderCollector) Collect(ctx context.Context, n int) ([]model.Lead, error) {
	zap.L().Info("starting collection", zap.String("niche", c.Niche()), zap.Int("samples", n))

	leads := make([]model.Lead, 0, n)
	for i := 0; i < n; i++ {
		if err := c.wait(ctx); err != nil {
			return leads, err
		}

		// Ratings land in [3.5, 5.0] at one decimal.
		rating := math.Round((3.5+c.rng.Float64()*1.5)*10) / 10
		reviews := 5 + c.rng.Intn(96)

		leads = append(leads, model.Lead{
			FirstName: "Provider",
			LastName:  fmt.Sprintf("%d", i+1),
			Company:   fmt.Sprintf("Provider %d", i+1),
			Role:      c.pick(c.profile.ServiceProviders.Services),
			Niche:     c.Niche(),
			Source:    "sample",
			Location:  c.pick(c.profile.ServiceProviders.Areas),
			Phone:     "06" + c.digits(8),
			Email:     fmt.Sprintf("info@provider%d.co.za", i+1),
			Rating:    &rating,
			Reviews:   &reviews,
			Verified:  true,
		})
	}

	zap.L().Info("collection finished", zap.String("niche", c.Niche()), zap.Int("collected", len(leads)))
	return leads, nil
}
