package energy

// LoadCategory names the load that dominates a month's usage.
type LoadCategory string

const (
	LoadBase    LoadCategory = "base"
	LoadCooling LoadCategory = "cooling"
	LoadHeating LoadCategory = "heating"
)

// SolarPotential summarizes on-site solar generation for a location. It is
// produced by the solar lookup; the estimator only fills OffsetPct on its own copy.
type SolarPotential struct {
	MaxPanels              int     `json:"max_panels"`
	AnnualProductionKWh    float64 `json:"annual_production_kwh"`
	OffsetPct              float64 `json:"offset_pct"`
	EstimatedSavingsAnnual float64 `json:"estimated_savings_annual"`
	SunshineHoursPerYear   float64 `json:"sunshine_hours_per_year"`
	RoofAreaSqft           float64 `json:"roof_area_sqft"`
	Source                 string  `json:"source,omitempty"`
}

// Input describes one estimate request. CooledAreaSqft defaults to
// FloorAreaSqft when nil. Solar is read but never modified.
type Input struct {
	FloorAreaSqft  float64
	CooledAreaSqft *float64
	Latitude       float64
	Tier           EfficiencyTier
	Solar          *SolarPotential
	IncludeSolar   bool
}

// MonthlyEnergy is the estimate for a single calendar month.
type MonthlyEnergy struct {
	Month       string       `json:"month"`
	KWh         float64      `json:"kwh"`
	Cost        float64      `json:"cost"`
	PrimaryLoad LoadCategory `json:"primary_load"`
}

// Assumptions records the resolved inputs used by the model.
type Assumptions struct {
	ClimateZone     string         `json:"climate_zone"`
	CDD             int            `json:"cdd"`
	HDD             int            `json:"hdd"`
	RatePerKWh      float64        `json:"rate_per_kwh"`
	EfficiencyLevel EfficiencyTier `json:"efficiency_level"`
	HomeSqft        float64        `json:"home_sqft"`
	CoolingSqft     float64        `json:"cooling_sqft"`
}

// Result is the complete energy estimate. Annual kWh values are rounded to one
// decimal and costs to two.
type Result struct {
	AnnualTotalKWh    float64         `json:"annual_total_kwh"`
	AnnualTotalCost   float64         `json:"annual_total_cost"`
	AnnualBaseKWh     float64         `json:"annual_base_kwh"`
	AnnualBaseCost    float64         `json:"annual_base_cost"`
	AnnualCoolingKWh  float64         `json:"annual_cooling_kwh"`
	AnnualCoolingCost float64         `json:"annual_cooling_cost"`
	AnnualHeatingKWh  float64         `json:"annual_heating_kwh"`
	AnnualHeatingCost float64         `json:"annual_heating_cost"`
	Monthly           []MonthlyEnergy `json:"monthly"`
	SolarPotential    *SolarPotential `json:"solar_potential,omitempty"`
	Assumptions       Assumptions     `json:"assumptions"`
}
