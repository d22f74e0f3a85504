package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/elev8ted-roofs/estimator-api/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearPricingEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PRICING_FILE", "DEFAULT_MATERIAL_COST", "DEFAULT_LABOR_COST",
		"STEEP_ROOF_MULTIPLIER", "DAMAGE_REPAIR_MULTIPLIER", "FIREBASE_PROJECT_ID", "AI_RATE_PER_MINUTE",
	} {
		t.Setenv(k, "")
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	clearPricingEnv(t)
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParsePoints(t *testing.T) {
	got, err := parsePoints(" 0,0  80,0\t80,50 0,50 ")
	require.NoError(t, err)
	assert.Equal(t, []model.Point{{X: 0, Y: 0}, {X: 80, Y: 0}, {X: 80, Y: 50}, {X: 0, Y: 50}}, got)

	got, err = parsePoints("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = parsePoints("1,2 3")
	assert.Error(t, err)
	_, err = parsePoints("1,a")
	assert.Error(t, err)
}

func TestMeasureCommand(t *testing.T) {
	out, err := run(t, "measure", "--points", "0,0 80,0 80,50 0,50", "--scale", "0.5")
	require.NoError(t, err)

	var m model.Measurement
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, 1000.0, m.AreaSqFt)
	assert.Equal(t, 130.0, m.Perimeter)
	assert.Equal(t, 22.5, m.EstimatedPitch)
}

func TestEstimateCommand(t *testing.T) {
	out, err := run(t, "estimate", "--area", "1000", "--pitch", "20", "--damage")
	require.NoError(t, err)

	var est model.CostEstimate
	require.NoError(t, json.Unmarshal([]byte(out), &est))
	assert.Equal(t, 7302.5, est.Total)
	assert.Equal(t, 7.3, est.CostPerSqFt)
}

func TestEstimateCommandOverrideZero(t *testing.T) {
	out, err := run(t, "estimate", "--area", "1000", "--pitch", "20", "--material-cost", "0")
	require.NoError(t, err)

	var est model.CostEstimate
	require.NoError(t, json.Unmarshal([]byte(out), &est))
	assert.Equal(t, 0.0, est.MaterialCost)
	assert.Equal(t, 2500.0, est.Total)
}

func TestEstimateCommandRejectsZeroArea(t *testing.T) {
	_, err := run(t, "estimate", "--area", "0")
	assert.Error(t, err)
}

func TestQuoteCommandPitchOverride(t *testing.T) {
	out, err := run(t, "quote", "--points", "0,0 80,0 80,50 0,50", "--scale", "0.5", "--pitch", "40")
	require.NoError(t, err)

	var q model.Quote
	require.NoError(t, json.Unmarshal([]byte(out), &q))
	assert.Equal(t, 22.5, q.Measurement.EstimatedPitch)
	assert.Equal(t, 40.0, q.Estimate.PitchDegrees)
	assert.Equal(t, 1.25, q.Estimate.PitchMultiplier)
}

func TestHistoryRequiresProject(t *testing.T) {
	_, err := run(t, "history", "list")
	assert.Error(t, err)
}
