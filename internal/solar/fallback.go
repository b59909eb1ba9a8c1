package solar

import (
	"math"

	"github.com/i474232898/gridsight-site-planner/internal/energy"
)

const (
	// SourceEstimated marks potentials derived from latitude alone.
	SourceEstimated = "estimated"

	usableRoofSqft   = 600.0
	panelSqft        = 17.5
	wattsPerPanel    = 400.0
	systemEfficiency = 0.80
)

// EstimateFromLatitude approximates solar potential for a typical residential
// roof when no building data is available. Peak sun hours run from about 5.5 in
// north Florida to 6.0 in the south and are clamped to [4.5, 6.5].
func EstimateFromLatitude(lat, ratePerKWh float64) energy.SolarPotential {
	peakSunHours := 5.5 + (30-lat)*0.1
	peakSunHours = math.Max(4.5, math.Min(6.5, peakSunHours))

	maxPanels := int(math.Floor(usableRoofSqft / panelSqft))
	systemKW := float64(maxPanels) * wattsPerPanel / 1000
	annualKWh := systemKW * peakSunHours * 365 * systemEfficiency

	return energy.SolarPotential{
		MaxPanels:              maxPanels,
		AnnualProductionKWh:    annualKWh,
		EstimatedSavingsAnnual: annualKWh * ratePerKWh,
		SunshineHoursPerYear:   peakSunHours * 365,
		RoofAreaSqft:           usableRoofSqft,
		Source:                 SourceEstimated,
	}
}
