package energy

import (
	"math"

	"github.com/shopspring/decimal"
)

// annualLoads holds the unrounded annual model output.
type annualLoads struct {
	Base    float64
	Cooling float64
	Heating float64
}

func (a annualLoads) Total() float64 {
	return a.Base + a.Cooling + a.Heating
}

// monthLoads holds the unrounded split of one month.
type monthLoads struct {
	Month   string
	Base    float64
	Cooling float64
	Heating float64
}

func (m monthLoads) Total() float64 {
	return m.Base + m.Cooling + m.Heating
}

// Estimate computes the annual and monthly energy usage of a residence.
//
// The model is
//
//	base    = floor area × base factor
//	cooling = cooled area × CDD × cooling factor / 1000
//	heating = floor area × HDD × heating factor / 1000
//
// Solar production is never subtracted from consumption; when solar data is
// included the result carries a copy of it with OffsetPct set against the
// annual total.
func Estimate(in Input) (Result, error) {
	factors, err := FactorsFor(in.Tier)
	if err != nil {
		return Result{}, err
	}

	cooled := in.FloorAreaSqft
	if in.CooledAreaSqft != nil {
		cooled = *in.CooledAreaSqft
	}

	zone := ResolveZone(in.Latitude)
	annual := computeAnnual(in.FloorAreaSqft, cooled, zone, factors)
	total := annual.Total()

	months := decompose(annual)
	monthly := make([]MonthlyEnergy, 0, len(months))
	for _, m := range months {
		mt := m.Total()
		monthly = append(monthly, MonthlyEnergy{
			Month:       m.Month,
			KWh:         roundKWh(mt),
			Cost:        roundCost(mt * zone.RatePerKWh),
			PrimaryLoad: classify(m.Base, m.Cooling, m.Heating),
		})
	}

	res := Result{
		AnnualTotalKWh:    roundKWh(total),
		AnnualTotalCost:   roundCost(total * zone.RatePerKWh),
		AnnualBaseKWh:     roundKWh(annual.Base),
		AnnualBaseCost:    roundCost(annual.Base * zone.RatePerKWh),
		AnnualCoolingKWh:  roundKWh(annual.Cooling),
		AnnualCoolingCost: roundCost(annual.Cooling * zone.RatePerKWh),
		AnnualHeatingKWh:  roundKWh(annual.Heating),
		AnnualHeatingCost: roundCost(annual.Heating * zone.RatePerKWh),
		Monthly:           monthly,
		Assumptions: Assumptions{
			ClimateZone:     zone.ID,
			CDD:             zone.CoolingDegreeDays,
			HDD:             zone.HeatingDegreeDays,
			RatePerKWh:      zone.RatePerKWh,
			EfficiencyLevel: in.Tier,
			HomeSqft:        in.FloorAreaSqft,
			CoolingSqft:     cooled,
		},
	}

	if in.IncludeSolar && in.Solar != nil {
		solar := *in.Solar
		solar.OffsetPct = SolarOffsetPct(solar.AnnualProductionKWh, total)
		res.SolarPotential = &solar
	}

	return res, nil
}

func computeAnnual(floor, cooled float64, zone ClimateZone, f EfficiencyFactors) annualLoads {
	return annualLoads{
		Base:    floor * f.BaseFactor,
		Cooling: cooled * float64(zone.CoolingDegreeDays) * f.CoolingFactor / 1000,
		Heating: floor * float64(zone.HeatingDegreeDays) * f.HeatingFactor / 1000,
	}
}

// decompose spreads the annual loads over the calendar: base uniformly,
// cooling and heating by the seasonal weights.
func decompose(a annualLoads) []monthLoads {
	out := make([]monthLoads, 0, len(monthWeights))
	for _, w := range monthWeights {
		out = append(out, monthLoads{
			Month:   w.Month,
			Base:    a.Base / 12,
			Cooling: a.Cooling * w.Cooling,
			Heating: a.Heating * w.Heating,
		})
	}
	return out
}

// classify picks the strictly largest load; ties fall back to base.
func classify(base, cooling, heating float64) LoadCategory {
	switch {
	case cooling > heating && cooling > base:
		return LoadCooling
	case heating > cooling && heating > base:
		return LoadHeating
	default:
		return LoadBase
	}
}

// SolarOffsetPct is the share of annual consumption covered by production,
// rounded to one decimal. Non-positive production or consumption yields 0.
func SolarOffsetPct(productionKWh, annualKWh float64) float64 {
	if productionKWh <= 0 || annualKWh <= 0 {
		return 0
	}
	return roundKWh(productionKWh / annualKWh * 100)
}

func roundKWh(v float64) float64 {
	return round(v, 1)
}

func roundCost(v float64) float64 {
	return round(v, 2)
}

// exactExponent is low enough that NewFromFloatWithExponent keeps every binary
// digit of a float64.
const exactExponent = -1100

// round rounds the exact binary value of v, with exact ties going to even.
// 15.45 is stored just below the tie and becomes 15.4. decimal cannot
// represent NaN or ±Inf, so those pass through unchanged.
func round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloatWithExponent(v, exactExponent).RoundBank(places).InexactFloat64()
}
