package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/elev8ted-roofs/estimator-api/internal/business/estimator"
	"github.com/elev8ted-roofs/estimator-api/internal/business/roof"
	"github.com/elev8ted-roofs/estimator-api/pkg/model"
	"github.com/spf13/cobra"
)

type outlineFlags struct {
	points   string
	scale    float64
	building string
}

func (f *outlineFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.points, "points", "", `outline vertices as "x,y x,y ..." in pixels`)
	cmd.Flags().Float64Var(&f.scale, "scale", 1.0, "feet per pixel")
	cmd.Flags().StringVar(&f.building, "building", roof.BuildingResidential, "building type: residential or commercial")
	_ = cmd.MarkFlagRequired("points")
}

type priceFlags struct {
	damage   bool
	material float64
	labor    float64
}

func (f *priceFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.damage, "damage", false, "include damage repair")
	cmd.Flags().Float64Var(&f.material, "material-cost", 0, "material cost per sq ft (default from pricing)")
	cmd.Flags().Float64Var(&f.labor, "labor-cost", 0, "labor cost per sq ft (default from pricing)")
}

// overrides returns pointers only for flags the user actually set.
func (f *priceFlags) overrides(cmd *cobra.Command) (material, labor *float64) {
	if cmd.Flags().Changed("material-cost") {
		v := f.material
		material = &v
	}
	if cmd.Flags().Changed("labor-cost") {
		v := f.labor
		labor = &v
	}
	return material, labor
}

func newMeasureCmd() *cobra.Command {
	var outline outlineFlags
	cmd := &cobra.Command{
		Use:   "measure",
		Short: "Compute area, perimeter, and estimated pitch of an outline",
		Long: `Compute area, perimeter, and estimated pitch of a traced outline.

Examples:
  roofcalc measure --points "0,0 80,0 80,50 0,50" --scale 0.5`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			points, err := parsePoints(outline.points)
			if err != nil {
				return err
			}
			calc, err := loadCalculator()
			if err != nil {
				return err
			}
			svc := estimator.NewService(calc, nil, nil, nil)
			return writeJSON(cmd.OutOrStdout(), svc.Measure(estimator.MeasureRequest{
				Points:       points,
				ScaleFactor:  outline.scale,
				BuildingType: outline.building,
			}))
		},
	}
	outline.register(cmd)
	return cmd
}

func newEstimateCmd() *cobra.Command {
	var (
		area  float64
		pitch float64
		price priceFlags
	)
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Price a roof of known area and pitch",
		Long: `Price a roof of known area and pitch.

Examples:
  roofcalc estimate --area 1000 --pitch 20
  roofcalc estimate --area 2000 --pitch 40 --damage --labor-cost 3`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			calc, err := loadCalculator()
			if err != nil {
				return err
			}
			material, labor := price.overrides(cmd)
			est, err := calc.TotalEstimate(roof.EstimateInput{
				AreaSqFt:            area,
				PitchDegrees:        pitch,
				HasDamage:           price.damage,
				MaterialCostPerSqft: material,
				LaborCostPerSqft:    labor,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), est)
		},
	}
	cmd.Flags().Float64Var(&area, "area", 0, "roof area in square feet")
	cmd.Flags().Float64Var(&pitch, "pitch", 0, "roof pitch in degrees")
	_ = cmd.MarkFlagRequired("area")
	price.register(cmd)
	return cmd
}

func newQuoteCmd() *cobra.Command {
	var (
		outline outlineFlags
		price   priceFlags
		pitch   float64
	)
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Measure an outline and price it",
		Long: `Measure an outline and price it in one step. Without --pitch the
pitch is estimated from the measured area.

Examples:
  roofcalc quote --points "0,0 80,0 80,50 0,50" --scale 0.5 --damage`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			points, err := parsePoints(outline.points)
			if err != nil {
				return err
			}
			calc, err := loadCalculator()
			if err != nil {
				return err
			}
			material, labor := price.overrides(cmd)
			req := estimator.QuoteRequest{
				Points:              points,
				ScaleFactor:         outline.scale,
				BuildingType:        outline.building,
				HasDamage:           price.damage,
				MaterialCostPerSqft: material,
				LaborCostPerSqft:    labor,
			}
			if cmd.Flags().Changed("pitch") {
				p := pitch
				req.PitchDegrees = &p
			}
			q, err := estimator.NewService(calc, nil, nil, nil).Quote(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), q)
		},
	}
	outline.register(cmd)
	price.register(cmd)
	cmd.Flags().Float64Var(&pitch, "pitch", 0, "override the estimated pitch in degrees")
	return cmd
}

// parsePoints reads whitespace-separated "x,y" pairs.
func parsePoints(s string) ([]model.Point, error) {
	fields := strings.Fields(s)
	points := make([]model.Point, 0, len(fields))
	for _, f := range fields {
		xs, ys, ok := strings.Cut(f, ",")
		if !ok {
			return nil, fmt.Errorf("point %q: expected x,y", f)
		}
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", f, err)
		}
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", f, err)
		}
		points = append(points, model.Point{X: x, Y: y})
	}
	return points, nil
}
