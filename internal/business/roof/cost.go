package roof

import (
	"errors"
	"fmt"
	"math"

	"github.com/elev8ted-roofs/estimator-api/pkg/model"
)

var (
	// ErrInvalidArea is returned when an estimate is requested for a roof with no area.
	ErrInvalidArea = errors.New("roof area must be greater than zero")
	// ErrInvalidPrice is returned for negative or non-finite per-square-foot overrides.
	ErrInvalidPrice = errors.New("cost per square foot must be a non-negative number")
)

// Pricing holds the rates and multipliers used by a Calculator.
type Pricing struct {
	MaterialCostPerSqft    float64 `koanf:"material_cost"`
	LaborCostPerSqft       float64 `koanf:"labor_cost"`
	SteepRoofMultiplier    float64 `koanf:"steep_roof_multiplier"`
	DamageRepairMultiplier float64 `koanf:"damage_repair_multiplier"`
	WasteFactor            float64 `koanf:"waste_factor"`
}

// DefaultPricing returns the standard residential pricing.
func DefaultPricing() Pricing {
	return Pricing{
		MaterialCostPerSqft:    3.50,
		LaborCostPerSqft:       2.50,
		SteepRoofMultiplier:    1.25,
		DamageRepairMultiplier: 1.15,
		WasteFactor:            1.1,
	}
}

// Validate checks that every rate is usable.
func (p Pricing) Validate() error {
	if !nonNegative(p.MaterialCostPerSqft) {
		return fmt.Errorf("material cost %v: %w", p.MaterialCostPerSqft, ErrInvalidPrice)
	}
	if !nonNegative(p.LaborCostPerSqft) {
		return fmt.Errorf("labor cost %v: %w", p.LaborCostPerSqft, ErrInvalidPrice)
	}
	if !finite(p.SteepRoofMultiplier) || p.SteepRoofMultiplier < 1 {
		return fmt.Errorf("steep roof multiplier must be >= 1, got %v", p.SteepRoofMultiplier)
	}
	if !finite(p.DamageRepairMultiplier) || p.DamageRepairMultiplier < 1 {
		return fmt.Errorf("damage repair multiplier must be >= 1, got %v", p.DamageRepairMultiplier)
	}
	if !finite(p.WasteFactor) || p.WasteFactor <= 0 {
		return fmt.Errorf("waste factor must be > 0, got %v", p.WasteFactor)
	}
	return nil
}

// EstimateInput describes a roof to price. Nil cost fields fall back to the
// calculator's pricing.
type EstimateInput struct {
	AreaSqFt            float64
	PitchDegrees        float64
	HasDamage           bool
	MaterialCostPerSqft *float64
	LaborCostPerSqft    *float64
}

// Calculator prices roofs with a fixed Pricing. It holds no mutable state and
// is safe for concurrent use.
type Calculator struct {
	pricing Pricing
}

func NewCalculator(pricing Pricing) *Calculator {
	return &Calculator{pricing: pricing}
}

// Pricing returns the calculator's configured rates.
func (c *Calculator) Pricing() Pricing {
	return c.pricing
}

// PitchMultiplier applies the configured steep roof multiplier.
func (c *Calculator) PitchMultiplier(pitchDegrees float64) float64 {
	return PitchMultiplier(pitchDegrees, c.pricing.SteepRoofMultiplier)
}

// MaterialCost prices shingles and underlayment, including waste.
func (c *Calculator) MaterialCost(areaSqFt float64, costPerSqft *float64) float64 {
	rate := c.pricing.MaterialCostPerSqft
	if costPerSqft != nil {
		rate = *costPerSqft
	}
	return round2(areaSqFt * rate * c.pricing.WasteFactor)
}

// LaborCost prices installation, scaled for roof steepness.
func (c *Calculator) LaborCost(areaSqFt, pitchMultiplier float64, costPerSqft *float64) float64 {
	rate := c.pricing.LaborCostPerSqft
	if costPerSqft != nil {
		rate = *costPerSqft
	}
	return round2(areaSqFt * rate * pitchMultiplier)
}

// TotalEstimate builds the full cost breakdown for a roof.
func (c *Calculator) TotalEstimate(in EstimateInput) (model.CostEstimate, error) {
	if !finite(in.AreaSqFt) || in.AreaSqFt <= 0 {
		return model.CostEstimate{}, fmt.Errorf("area %v: %w", in.AreaSqFt, ErrInvalidArea)
	}
	if in.MaterialCostPerSqft != nil && !nonNegative(*in.MaterialCostPerSqft) {
		return model.CostEstimate{}, fmt.Errorf("material cost %v: %w", *in.MaterialCostPerSqft, ErrInvalidPrice)
	}
	if in.LaborCostPerSqft != nil && !nonNegative(*in.LaborCostPerSqft) {
		return model.CostEstimate{}, fmt.Errorf("labor cost %v: %w", *in.LaborCostPerSqft, ErrInvalidPrice)
	}

	multiplier := c.PitchMultiplier(in.PitchDegrees)
	material := c.MaterialCost(in.AreaSqFt, in.MaterialCostPerSqft)
	labor := c.LaborCost(in.AreaSqFt, multiplier, in.LaborCostPerSqft)
	subtotal := material + labor

	var repair float64
	if in.HasDamage {
		repair = subtotal * (c.pricing.DamageRepairMultiplier - 1)
	}
	total := subtotal + repair

	return model.CostEstimate{
		AreaSqFt:        round2(in.AreaSqFt),
		PitchDegrees:    in.PitchDegrees,
		PitchMultiplier: multiplier,
		MaterialCost:    material,
		LaborCost:       labor,
		RepairCost:      round2(repair),
		Subtotal:        round2(subtotal),
		Total:           round2(total),
		CostPerSqFt:     round2(total / in.AreaSqFt),
	}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func nonNegative(v float64) bool {
	return finite(v) && v >= 0
}
