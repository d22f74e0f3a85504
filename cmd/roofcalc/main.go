// Package main implements roofcalc, a command-line front end for the roof
// measurement and cost calculator.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/elev8ted-roofs/estimator-api/internal/business/roof"
	"github.com/elev8ted-roofs/estimator-api/internal/platform/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	_ = godotenv.Load(".env.local", ".env")
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "roofcalc",
		Short: "Measure traced roof outlines and price replacements",
		Long: `roofcalc runs the estimator's calculator locally.

Pricing comes from the same environment as the API server: PRICING_FILE,
DEFAULT_MATERIAL_COST, DEFAULT_LABOR_COST, STEEP_ROOF_MULTIPLIER and
DAMAGE_REPAIR_MULTIPLIER.`,
		Version:      version,
		SilenceUsage: true,
	}
	root.AddCommand(newMeasureCmd(), newEstimateCmd(), newQuoteCmd(), newHistoryCmd())
	return root
}

func loadCalculator() (*roof.Calculator, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return roof.NewCalculator(cfg.Pricing), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
