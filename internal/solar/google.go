package solar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/i474232898/gridsight-site-planner/internal/energy"
)

const (
	sqftPerSquareMeter = 10.764
	dcToACEfficiency   = 0.85
)

// GoogleSolarProvider implements Provider for the Google Solar API building insights endpoint.
type GoogleSolarProvider struct {
	name       string
	apiKey     string
	baseURL    string
	ratePerKWh float64
	api        *apiClient
}

func NewGoogleSolarProvider(client *http.Client, apiKey string, ratePerKWh float64) *GoogleSolarProvider {
	return &GoogleSolarProvider{
		name:       "google_solar",
		apiKey:     apiKey,
		baseURL:    "https://solar.googleapis.com/v1",
		ratePerKWh: ratePerKWh,
		api:        newAPIClient("google-solar", client),
	}
}

func (p *GoogleSolarProvider) Name() string {
	return p.name
}

type buildingInsights struct {
	SolarPotential *struct {
		MaxSunshineHoursPerYear float64 `json:"maxSunshineHoursPerYear"`
		SolarPanelConfigs       []struct {
			PanelsCount       int     `json:"panelsCount"`
			YearlyEnergyDcKwh float64 `json:"yearlyEnergyDcKwh"`
		} `json:"solarPanelConfigs"`
		RoofSegmentStats []struct {
			Stats struct {
				AreaMeters2 float64 `json:"areaMeters2"`
			} `json:"stats"`
		} `json:"roofSegmentStats"`
	} `json:"solarPotential"`
}

func (p *GoogleSolarProvider) Fetch(ctx context.Context, loc Location) (energy.SolarPotential, error) {
	if p.apiKey == "" {
		return energy.SolarPotential{}, fmt.Errorf("google solar api key is not configured")
	}

	values := url.Values{}
	values.Set("location.latitude", strconv.FormatFloat(loc.Lat, 'f', -1, 64))
	values.Set("location.longitude", strconv.FormatFloat(loc.Lng, 'f', -1, 64))
	values.Set("requiredQuality", "HIGH")
	values.Set("key", p.apiKey)

	resp, err := p.api.get(ctx, p.baseURL+"/buildingInsights:findClosest?"+values.Encode())
	if err != nil {
		return energy.SolarPotential{}, err
	}
	defer resp.Body.Close()

	var payload buildingInsights
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return energy.SolarPotential{}, fmt.Errorf("decode building insights: %w", err)
	}
	if payload.SolarPotential == nil {
		return energy.SolarPotential{}, ErrNoSolarData
	}
	sp := payload.SolarPotential

	// The last panel config is the largest installation the roof supports.
	var panels int
	var dcKWh float64
	if n := len(sp.SolarPanelConfigs); n > 0 {
		panels = sp.SolarPanelConfigs[n-1].PanelsCount
		dcKWh = sp.SolarPanelConfigs[n-1].YearlyEnergyDcKwh
	}

	var roofSqft float64
	for _, seg := range sp.RoofSegmentStats {
		roofSqft += seg.Stats.AreaMeters2 * sqftPerSquareMeter
	}

	return energy.SolarPotential{
		MaxPanels:              panels,
		AnnualProductionKWh:    dcKWh * dcToACEfficiency,
		EstimatedSavingsAnnual: dcKWh * p.ratePerKWh * dcToACEfficiency,
		SunshineHoursPerYear:   sp.MaxSunshineHoursPerYear,
		RoofAreaSqft:           roofSqft,
		Source:                 p.name,
	}, nil
}
