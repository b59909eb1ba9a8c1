package energy

import (
	"fmt"
	"strings"
)

// EfficiencyTier is the qualitative thermal performance rating of a building.
type EfficiencyTier string

const (
	TierEfficient EfficiencyTier = "efficient"
	TierStandard  EfficiencyTier = "standard"
	TierPoor      EfficiencyTier = "poor"
)

// AllTiers lists every tier from most to least efficient.
var AllTiers = []EfficiencyTier{TierEfficient, TierStandard, TierPoor}

// EfficiencyFactors scale the cooling, heating and base loads of the model.
// BaseFactor is kWh per square foot per year.
type EfficiencyFactors struct {
	CoolingFactor float64 `json:"cooling_factor"`
	HeatingFactor float64 `json:"heating_factor"`
	BaseFactor    float64 `json:"base_factor"`
}

// FactorsFor returns the scaling factors of a tier. Unknown tiers are rejected
// with ErrInvalidInput instead of being mapped to a default.
func FactorsFor(tier EfficiencyTier) (EfficiencyFactors, error) {
	switch tier {
	case TierEfficient:
		return EfficiencyFactors{CoolingFactor: 0.35, HeatingFactor: 0.15, BaseFactor: 3.0}, nil
	case TierStandard:
		return EfficiencyFactors{CoolingFactor: 0.50, HeatingFactor: 0.25, BaseFactor: 3.5}, nil
	case TierPoor:
		return EfficiencyFactors{CoolingFactor: 0.70, HeatingFactor: 0.40, BaseFactor: 4.5}, nil
	default:
		return EfficiencyFactors{}, fmt.Errorf("%w: unknown efficiency tier %q", ErrInvalidInput, string(tier))
	}
}

// ParseTier parses a tier name case-insensitively. An empty string yields the
// standard tier.
func ParseTier(s string) (EfficiencyTier, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TierStandard, nil
	}
	tier := EfficiencyTier(s)
	if _, err := FactorsFor(tier); err != nil {
		return "", err
	}
	return tier, nil
}

func (t EfficiencyTier) String() string {
	return string(t)
}
