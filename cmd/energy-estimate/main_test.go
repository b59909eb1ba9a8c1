package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/gridsight-site-planner/internal/energy"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEstimateJSON(t *testing.T) {
	out, err := execute(t, "--sqft", "1800", "--lat", "28.5", "--solar-kwh", "8000", "--json")
	require.NoError(t, err)

	var res energy.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.InDelta(t, 9360.0, res.AnnualTotalKWh, 1e-9)
	assert.Equal(t, 1800.0, res.Assumptions.CoolingSqft)
	require.NotNil(t, res.SolarPotential)
	assert.InDelta(t, 85.5, res.SolarPotential.OffsetPct, 1e-9)
}

func TestEstimateTable(t *testing.T) {
	out, err := execute(t, "--sqft", "1800", "--cooled-sqft", "900", "--lat", "25.7", "-e", "poor", "--estimate-solar")
	require.NoError(t, err)

	assert.Contains(t, out, "Climate zone 1A")
	assert.Contains(t, out, "cooled 900 sqft")
	assert.Contains(t, out, "January")
	assert.Contains(t, out, "December")
	assert.Contains(t, out, "Solar:")
	assert.Contains(t, out, "(estimated)")
}

func TestEstimateRejectsBadInput(t *testing.T) {
	tests := [][]string{
		{"--lat", "28.5", "--sqft", "0"},
		{"--lat", "28.5", "--cooled-sqft", "-5"},
		{"--lat", "128.5"},
		{"--lat", "28.5", "--efficiency", "gold"},
		{"--sqft", "1800"},
	}
	for _, args := range tests {
		_, err := execute(t, args...)
		assert.Error(t, err, "%v", args)
	}
}
