package energy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveZone(t *testing.T) {
	tests := []struct {
		lat  float64
		want string
	}{
		{25.7, "1A"},
		{-90, "1A"},
		{26.49, "1A"},
		{26.5, "2A"},
		{28.5, "2A"},
		{30.49, "2A"},
		{30.5, "3A"},
		{90, "3A"},
		{1000, "3A"},
		{math.NaN(), "3A"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveZone(tt.lat).ID, "lat %v", tt.lat)
	}
}

func TestZonesMonotonic(t *testing.T) {
	brackets := ZoneBrackets()
	require.Len(t, brackets, 3)
	for i := 1; i < len(brackets); i++ {
		prev, cur := brackets[i-1], brackets[i]
		assert.Less(t, prev.MaxLatitude, cur.MaxLatitude)
		assert.LessOrEqual(t, cur.Zone.CoolingDegreeDays, prev.Zone.CoolingDegreeDays)
		assert.GreaterOrEqual(t, cur.Zone.HeatingDegreeDays, prev.Zone.HeatingDegreeDays)
	}
	assert.True(t, math.IsInf(brackets[len(brackets)-1].MaxLatitude, 1))
}

func TestZoneBracketsIsACopy(t *testing.T) {
	b := ZoneBrackets()
	b[0].Zone.RatePerKWh = 99
	assert.Equal(t, 0.14, ResolveZone(20).RatePerKWh)
}

func TestFactorsForCoversAllTiers(t *testing.T) {
	var prev EfficiencyFactors
	for i, tier := range AllTiers {
		f, err := FactorsFor(tier)
		require.NoError(t, err, "tier %s", tier)
		assert.Greater(t, f.CoolingFactor, 0.0)
		assert.LessOrEqual(t, f.CoolingFactor, 1.0)
		assert.Greater(t, f.HeatingFactor, 0.0)
		assert.LessOrEqual(t, f.HeatingFactor, 1.0)
		assert.Greater(t, f.BaseFactor, 0.0)
		if i > 0 {
			assert.LessOrEqual(t, prev.CoolingFactor, f.CoolingFactor)
			assert.LessOrEqual(t, prev.HeatingFactor, f.HeatingFactor)
			assert.LessOrEqual(t, prev.BaseFactor, f.BaseFactor)
		}
		prev = f
	}
}

func TestFactorsForUnknownTier(t *testing.T) {
	_, err := FactorsFor("")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = FactorsFor("HIGH")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseTier(t *testing.T) {
	tier, err := ParseTier(" Efficient ")
	require.NoError(t, err)
	assert.Equal(t, TierEfficient, tier)

	tier, err = ParseTier("")
	require.NoError(t, err)
	assert.Equal(t, TierStandard, tier)

	_, err = ParseTier("gold")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMonthWeightsSumToOne(t *testing.T) {
	var cooling, heating float64
	for _, w := range monthWeights {
		assert.GreaterOrEqual(t, w.Cooling, 0.0)
		assert.GreaterOrEqual(t, w.Heating, 0.0)
		cooling += w.Cooling
		heating += w.Heating
	}
	assert.InDelta(t, 1.0, cooling, 0.011)
	assert.InDelta(t, 1.0, heating, 0.011)
	assert.Len(t, MonthNames(), 12)
	assert.Equal(t, "January", MonthNames()[0])
	assert.Equal(t, "December", MonthNames()[11])
}
