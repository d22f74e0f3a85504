package roof

import (
	"math"
	"testing"

	"github.com/elev8ted-roofs/estimator-api/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestMaterialCost(t *testing.T) {
	c := NewCalculator(DefaultPricing())

	assert.Equal(t, 3850.0, c.MaterialCost(1000, nil))
	assert.Equal(t, 4400.0, c.MaterialCost(1000, ptr(4.0)))
	assert.Equal(t, 0.0, c.MaterialCost(1000, ptr(0)))
}

func TestLaborCost(t *testing.T) {
	c := NewCalculator(DefaultPricing())

	assert.Equal(t, 2500.0, c.LaborCost(1000, 1.0, nil))
	assert.Equal(t, 3125.0, c.LaborCost(1000, 1.25, nil))
	assert.Equal(t, 3450.0, c.LaborCost(1000, 1.15, ptr(3.0)))
}

func TestCostsRoundHalfCentsOnExactValue(t *testing.T) {
	c := NewCalculator(DefaultPricing())

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{name: "exact tie goes to even", got: c.LaborCost(0.05, 1.0, nil), want: 0.12},
		{name: "stored below tie rounds down", got: c.LaborCost(1, 1.0, ptr(1.115)), want: 1.11},
		{name: "exact tie above odd digit rounds up", got: c.LaborCost(0.15, 1.0, nil), want: 0.38},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestTotalEstimate(t *testing.T) {
	c := NewCalculator(DefaultPricing())

	got, err := c.TotalEstimate(EstimateInput{AreaSqFt: 1000, PitchDegrees: 20})
	require.NoError(t, err)
	assert.Equal(t, model.CostEstimate{
		AreaSqFt:        1000,
		PitchDegrees:    20,
		PitchMultiplier: 1.0,
		MaterialCost:    3850,
		LaborCost:       2500,
		RepairCost:      0,
		Subtotal:        6350,
		Total:           6350,
		CostPerSqFt:     6.35,
	}, got)
}

func TestTotalEstimateWithDamage(t *testing.T) {
	c := NewCalculator(DefaultPricing())

	got, err := c.TotalEstimate(EstimateInput{AreaSqFt: 1000, PitchDegrees: 20, HasDamage: true})
	require.NoError(t, err)
	assert.Equal(t, 6350.0, got.Subtotal)
	assert.Equal(t, 952.5, got.RepairCost)
	assert.Equal(t, 7302.5, got.Total)
	assert.Equal(t, 7.3, got.CostPerSqFt)
}

func TestTotalEstimateSteepWithOverrides(t *testing.T) {
	c := NewCalculator(DefaultPricing())

	got, err := c.TotalEstimate(EstimateInput{
		AreaSqFt:            2000,
		PitchDegrees:        40,
		MaterialCostPerSqft: ptr(5),
		LaborCostPerSqft:    ptr(3),
	})
	require.NoError(t, err)
	assert.Equal(t, 1.25, got.PitchMultiplier)
	assert.Equal(t, 11000.0, got.MaterialCost)
	assert.Equal(t, 7500.0, got.LaborCost)
	assert.Equal(t, 18500.0, got.Total)
	assert.Equal(t, 9.25, got.CostPerSqFt)
}

func TestTotalEstimatePitchPassesThroughUnrounded(t *testing.T) {
	c := NewCalculator(DefaultPricing())

	got, err := c.TotalEstimate(EstimateInput{AreaSqFt: 1000, PitchDegrees: 22.123456})
	require.NoError(t, err)
	assert.Equal(t, 22.123456, got.PitchDegrees)
}

func TestTotalEstimateRejectsZeroArea(t *testing.T) {
	c := NewCalculator(DefaultPricing())

	for _, area := range []float64{0, -10, math.NaN(), math.Inf(1)} {
		_, err := c.TotalEstimate(EstimateInput{AreaSqFt: area, PitchDegrees: 20})
		assert.ErrorIs(t, err, ErrInvalidArea, "area %v", area)
	}
}

func TestTotalEstimateRejectsNegativeOverrides(t *testing.T) {
	c := NewCalculator(DefaultPricing())

	_, err := c.TotalEstimate(EstimateInput{AreaSqFt: 1000, MaterialCostPerSqft: ptr(-1)})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = c.TotalEstimate(EstimateInput{AreaSqFt: 1000, LaborCostPerSqft: ptr(math.NaN())})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestTotalEstimateIsDeterministic(t *testing.T) {
	c := NewCalculator(DefaultPricing())
	in := EstimateInput{AreaSqFt: 1873.37, PitchDegrees: 31.4, HasDamage: true, LaborCostPerSqft: ptr(2.75)}

	first, err := c.TotalEstimate(in)
	require.NoError(t, err)
	second, err := c.TotalEstimate(in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPricingValidate(t *testing.T) {
	require.NoError(t, DefaultPricing().Validate())

	p := DefaultPricing()
	p.MaterialCostPerSqft = -1
	assert.ErrorIs(t, p.Validate(), ErrInvalidPrice)

	p = DefaultPricing()
	p.DamageRepairMultiplier = 0.9
	assert.Error(t, p.Validate())

	p = DefaultPricing()
	p.WasteFactor = 0
	assert.Error(t, p.Validate())
}
