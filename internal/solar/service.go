package solar

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/i474232898/gridsight-site-planner/internal/energy"
)

// Service resolves solar potential for a location, preferring cached values,
// then the configured provider, then the latitude estimate.
type Service struct {
	cache      Cache
	provider   Provider
	ratePerKWh float64
	logger     zerolog.Logger
	now        func() time.Time
}

// NewService creates a new Service. cache and provider may be nil.
func NewService(cache Cache, provider Provider, ratePerKWh float64, logger zerolog.Logger) *Service {
	return &Service{
		cache:      cache,
		provider:   provider,
		ratePerKWh: ratePerKWh,
		logger:     logger.With().Str("component", "solar").Logger(),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Potential returns the solar potential for loc. Provider failures degrade to
// the latitude estimate; only context cancellation is reported as an error.
func (s *Service) Potential(ctx context.Context, loc Location) (energy.SolarPotential, error) {
	if s.cache != nil {
		if entry, err := s.cache.Get(loc); err == nil {
			return entry.Potential, nil
		}
	}
	return s.Refresh(ctx, loc)
}

// Refresh looks the location up again, bypassing any cached value, and stores
// the result. A latitude estimate standing in for a failed provider call is not
// stored, so the next lookup asks the provider again.
func (s *Service) Refresh(ctx context.Context, loc Location) (energy.SolarPotential, error) {
	potential, fromProvider, err := s.fetch(ctx, loc)
	if err != nil {
		return energy.SolarPotential{}, err
	}

	if s.cache != nil && (fromProvider || s.provider == nil) {
		s.cache.Save(Entry{
			Location:  loc,
			Potential: potential,
			FetchedAt: s.now(),
		})
	}
	return potential, nil
}

func (s *Service) fetch(ctx context.Context, loc Location) (energy.SolarPotential, bool, error) {
	if s.provider != nil {
		potential, err := s.provider.Fetch(ctx, loc)
		if err == nil {
			s.logger.Info().
				Str("location", loc.Key()).
				Float64("sunshine_hours", potential.SunshineHoursPerYear).
				Int("max_panels", potential.MaxPanels).
				Msg("solar potential fetched")
			return potential, true, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return energy.SolarPotential{}, false, ctxErr
		}
		s.logger.Warn().Err(err).
			Str("provider", s.provider.Name()).
			Str("location", loc.Key()).
			Msg("solar lookup failed, using latitude estimate")
	}

	return EstimateFromLatitude(loc.Lat, s.ratePerKWh), false, nil
}
