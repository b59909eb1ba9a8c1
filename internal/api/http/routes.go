package httpapi

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/i474232898/gridsight-site-planner/internal/energy"
	"github.com/i474232898/gridsight-site-planner/internal/solar"
)

var validate = validator.New()

const defaultHomeSqft = 2400

// SolarLookup resolves solar potential for a location.
type SolarLookup interface {
	Potential(ctx context.Context, loc solar.Location) (energy.SolarPotential, error)
}

// Geocoder resolves a street address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (lat, lng float64, err error)
}

// ServiceInfo is reported by the health endpoint.
type ServiceInfo struct {
	Name        string
	Version     string
	Environment string
}

// Dependencies are the collaborators of the HTTP layer. Geocoder may be nil.
type Dependencies struct {
	Solar          SolarLookup
	Geocoder       Geocoder
	Info           ServiceInfo
	AllowedOrigins []string
	Logger         zerolog.Logger
}

// NewApp builds the fiber app with middleware and routes.
func NewApp(deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               deps.Info.Name,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          40 * time.Second,
		ErrorHandler:          ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(RequestLogger(deps.Logger))
	if len(deps.AllowedOrigins) > 0 {
		origins := strings.Join(deps.AllowedOrigins, ",")
		app.Use(cors.New(cors.Config{
			AllowOrigins: origins,
			// cors refuses credentials for a wildcard origin.
			AllowCredentials: origins != "*",
		}))
	}

	RegisterRoutes(app, deps)
	return app
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Dependencies) {
	h := &handler{solar: deps.Solar, geocoder: deps.Geocoder, info: deps.Info}

	app.Get("/health", h.health)

	v1 := app.Group("/api/v1/energy")
	v1.Post("/estimate", h.estimate)
	v1.Get("/solar/:lat/:lng", h.solarPotential)
	v1.Get("/reference", h.reference)
}

type handler struct {
	solar    SolarLookup
	geocoder Geocoder
	info     ServiceInfo
}

func (h *handler) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":      "healthy",
		"service":     h.info.Name,
		"version":     h.info.Version,
		"environment": h.info.Environment,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}

// estimateRequest is the body of POST /api/v1/energy/estimate.
// Coordinates may be omitted when an address is given.
type estimateRequest struct {
	Lat             *float64 `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lng             *float64 `json:"lng" validate:"omitempty,gte=-180,lte=180"`
	Address         string   `json:"address" validate:"omitempty,max=300"`
	HomeSqft        *int     `json:"home_sqft" validate:"omitempty,gte=500,lte=20000"`
	CoolingSqft     *int     `json:"cooling_sqft" validate:"omitempty,gt=0,lte=20000"`
	EfficiencyLevel string   `json:"efficiency_level" validate:"omitempty,oneof=efficient standard poor"`
	IncludeSolar    *bool    `json:"include_solar"`
}

func (h *handler) estimate(c *fiber.Ctx) error {
	var req estimateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	req.EfficiencyLevel = strings.ToLower(strings.TrimSpace(req.EfficiencyLevel))
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	tier, err := energy.ParseTier(req.EfficiencyLevel)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ctx := c.UserContext()
	logger := zerolog.Ctx(ctx)

	loc, err := h.resolveLocation(ctx, req)
	if err != nil {
		return err
	}

	homeSqft := defaultHomeSqft
	if req.HomeSqft != nil {
		homeSqft = *req.HomeSqft
	}
	in := energy.Input{
		FloorAreaSqft: float64(homeSqft),
		Latitude:      loc.Lat,
		Tier:          tier,
		IncludeSolar:  req.IncludeSolar == nil || *req.IncludeSolar,
	}
	if req.CoolingSqft != nil {
		cooled := float64(*req.CoolingSqft)
		in.CooledAreaSqft = &cooled
	}

	if in.IncludeSolar && h.solar != nil {
		sp, err := h.solar.Potential(ctx, loc)
		if err != nil {
			logger.Error().Err(err).Str("location", loc.Key()).Msg("solar lookup failed")
			return fiber.NewError(fiber.StatusServiceUnavailable, "solar potential lookup failed")
		}
		in.Solar = &sp
	}

	res, err := energy.Estimate(in)
	if err != nil {
		if errors.Is(err, energy.ErrInvalidInput) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, "energy estimation failed")
	}

	logger.Info().
		Float64("home_sqft", in.FloorAreaSqft).
		Str("zone", res.Assumptions.ClimateZone).
		Str("efficiency", string(tier)).
		Float64("base_kwh", res.AnnualBaseKWh).
		Float64("cooling_kwh", res.AnnualCoolingKWh).
		Float64("heating_kwh", res.AnnualHeatingKWh).
		Float64("total_kwh", res.AnnualTotalKWh).
		Msg("energy estimate")

	return c.JSON(res)
}

func (h *handler) resolveLocation(ctx context.Context, req estimateRequest) (solar.Location, error) {
	if req.Lat != nil && req.Lng != nil {
		return solar.Location{Lat: *req.Lat, Lng: *req.Lng}, nil
	}
	if strings.TrimSpace(req.Address) == "" {
		return solar.Location{}, fiber.NewError(fiber.StatusBadRequest, "lat and lng are required when no address is given")
	}
	if h.geocoder == nil {
		return solar.Location{}, fiber.NewError(fiber.StatusBadRequest, "address lookup is not configured; provide lat and lng")
	}

	lat, lng, err := h.geocoder.Geocode(ctx, req.Address)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("geocoding failed")
		return solar.Location{}, fiber.NewError(fiber.StatusBadGateway, "failed to geocode address")
	}
	return solar.Location{Lat: lat, Lng: lng}, nil
}

func (h *handler) solarPotential(c *fiber.Ctx) error {
	lat, err1 := strconv.ParseFloat(c.Params("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.Params("lng"), 64)
	loc := solar.Location{Lat: lat, Lng: lng}
	if err1 != nil || err2 != nil || !loc.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "lat and lng must be valid coordinates")
	}
	if h.solar == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "solar lookup is not configured")
	}

	sp, err := h.solar.Potential(c.UserContext(), loc)
	if err != nil {
		zerolog.Ctx(c.UserContext()).Error().Err(err).Str("location", loc.Key()).Msg("solar lookup failed")
		return fiber.NewError(fiber.StatusServiceUnavailable, "solar potential lookup failed")
	}
	return c.JSON(sp)
}

type zoneView struct {
	energy.ClimateZone
	// MaxLatitude is nil for the fallback bracket.
	MaxLatitude *float64 `json:"max_latitude"`
}

type tierView struct {
	Tier energy.EfficiencyTier `json:"tier"`
	energy.EfficiencyFactors
}

func (h *handler) reference(c *fiber.Ctx) error {
	var zones []zoneView
	for _, b := range energy.ZoneBrackets() {
		z := zoneView{ClimateZone: b.Zone}
		if !math.IsInf(b.MaxLatitude, 1) {
			limit := b.MaxLatitude
			z.MaxLatitude = &limit
		}
		zones = append(zones, z)
	}

	var tiers []tierView
	for _, t := range energy.AllTiers {
		f, err := energy.FactorsFor(t)
		if err != nil {
			return err
		}
		tiers = append(tiers, tierView{Tier: t, EfficiencyFactors: f})
	}

	return c.JSON(fiber.Map{
		"climate_zones":    zones,
		"efficiency_tiers": tiers,
		"months":           energy.MonthNames(),
	})
}
