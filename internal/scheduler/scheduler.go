package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"

	"github.com/i474232898/gridsight-site-planner/internal/energy"
	"github.com/i474232898/gridsight-site-planner/internal/solar"
)

// Refresher re-fetches solar potential for a site.
type Refresher interface {
	Refresh(ctx context.Context, loc solar.Location) (energy.SolarPotential, error)
}

// Pruner drops expired cache entries.
type Pruner interface {
	Prune() int
}

// Scheduler periodically warms the solar cache for configured sites and prunes
// expired entries.
type Scheduler struct {
	scheduler *gocron.Scheduler
	refresher Refresher
	pruner    Pruner
	sites     []solar.Location
	interval  time.Duration
	logger    zerolog.Logger
}

// New creates a new Scheduler.
func New(sites []solar.Location, interval time.Duration, refresher Refresher, pruner Pruner, logger zerolog.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		refresher: refresher,
		pruner:    pruner,
		sites:     sites,
		interval:  interval,
		logger:    logger.With().Str("component", "scheduler").Logger(),
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 60
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		s.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce refreshes every site concurrently, then prunes the cache.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.logger.Debug().Int("sites", len(s.sites)).Msg("running solar refresh job")

	var wg sync.WaitGroup
	for _, loc := range s.sites {
		loc := loc
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()

			if _, err := s.refresher.Refresh(ctx, loc); err != nil {
				s.logger.Warn().Err(err).Str("location", loc.Key()).Msg("solar refresh failed")
			}
		}()
	}
	wg.Wait()

	if s.pruner != nil {
		if n := s.pruner.Prune(); n > 0 {
			s.logger.Info().Int("removed", n).Msg("pruned expired solar cache entries")
		}
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
