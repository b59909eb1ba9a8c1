package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	httpapi "github.com/i474232898/gridsight-site-planner/internal/api/http"
	"github.com/i474232898/gridsight-site-planner/internal/config"
	"github.com/i474232898/gridsight-site-planner/internal/geocode"
	"github.com/i474232898/gridsight-site-planner/internal/scheduler"
	"github.com/i474232898/gridsight-site-planner/internal/solar"
	"github.com/i474232898/gridsight-site-planner/internal/store"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warn().Str("level", cfg.LogLevel).Msg("unknown LOG_LEVEL, using info")
		level = zerolog.InfoLevel
	}
	logger = logger.Level(level).With().Str("service", cfg.AppName).Logger()

	// Shared HTTP client for outbound API calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory solar cache with configured retention.
	cache := store.NewMemoryStore(cfg.SolarCacheMaxEntries, cfg.SolarCacheMaxAge)

	// Without a key the service answers from the latitude estimate only.
	var provider solar.Provider
	if cfg.GoogleSolarAPIKey != "" {
		provider = solar.NewGoogleSolarProvider(httpClient, cfg.GoogleSolarAPIKey, cfg.SolarRatePerKWh)
	}
	solarService := solar.NewService(cache, provider, cfg.SolarRatePerKWh, logger)

	var geocoder httpapi.Geocoder
	if cfg.GoogleMapsAPIKey != "" {
		geocoder = geocode.NewGoogleGeocoder(cfg.GoogleMapsAPIKey)
	}

	logger.Info().
		Str("version", cfg.AppVersion).
		Str("port", cfg.Port).
		Bool("solar_api", provider != nil).
		Bool("geocoding", geocoder != nil).
		Int("warm_sites", len(cfg.WarmSites)).
		Msg("site planner starting")

	// Scheduler that keeps warm sites cached and prunes expired entries.
	sched := scheduler.New(cfg.WarmSites, cfg.RefreshInterval, solarService, cache, logger)
	if err := sched.Start(); err != nil {
		logger.Fatal().Err(err).Msg("failed to start scheduler")
	}
	defer sched.Stop()

	app := httpapi.NewApp(httpapi.Dependencies{
		Solar:    solarService,
		Geocoder: geocoder,
		Info: httpapi.ServiceInfo{
			Name:        cfg.AppName,
			Version:     cfg.AppVersion,
			Environment: cfg.Environment,
		},
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error().Err(err).Msg("fiber server stopped")
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during shutdown")
	}
}
