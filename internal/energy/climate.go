package energy

import "math"

// ClimateZone carries the degree-day constants and flat utility rate used by the
// estimator for a coarse latitude bracket.
type ClimateZone struct {
	ID                string  `json:"id"`
	Description       string  `json:"description"`
	CoolingDegreeDays int     `json:"cdd"`
	HeatingDegreeDays int     `json:"hdd"`
	RatePerKWh        float64 `json:"rate_per_kwh"`
}

// ZoneBracket maps latitudes strictly below MaxLatitude to Zone.
type ZoneBracket struct {
	MaxLatitude float64
	Zone        ClimateZone
}

// Brackets are evaluated in ascending order; the last one is the fallback and
// covers every remaining latitude.
var zoneBrackets = [...]ZoneBracket{
	{
		MaxLatitude: 26.5,
		Zone: ClimateZone{
			ID:                "1A",
			Description:       "Hot-Humid (South FL)",
			CoolingDegreeDays: 4000,
			HeatingDegreeDays: 200,
			RatePerKWh:        0.14,
		},
	},
	{
		MaxLatitude: 30.5,
		Zone: ClimateZone{
			ID:                "2A",
			Description:       "Hot-Humid (Central/North FL)",
			CoolingDegreeDays: 2800,
			HeatingDegreeDays: 1200,
			RatePerKWh:        0.13,
		},
	},
	{
		MaxLatitude: math.Inf(1),
		Zone: ClimateZone{
			ID:                "3A",
			Description:       "Warm-Humid (Panhandle)",
			CoolingDegreeDays: 2000,
			HeatingDegreeDays: 2000,
			RatePerKWh:        0.12,
		},
	},
}

// ResolveZone returns the climate zone for a latitude. It never fails: latitudes
// past the last threshold (and NaN) fall into the final bracket.
func ResolveZone(lat float64) ClimateZone {
	for _, b := range zoneBrackets {
		if lat < b.MaxLatitude {
			return b.Zone
		}
	}
	return zoneBrackets[len(zoneBrackets)-1].Zone
}

// ZoneBrackets returns a copy of the latitude brackets in evaluation order.
func ZoneBrackets() []ZoneBracket {
	out := make([]ZoneBracket, len(zoneBrackets))
	copy(out, zoneBrackets[:])
	return out
}
