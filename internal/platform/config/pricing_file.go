package config

import (
	"fmt"
	"io"
	"os"

	"github.com/elev8ted-roofs/estimator-api/internal/business/roof"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const maxPricingFileSize = 64 * 1024

// LoadPricingFile overlays the `pricing` section of a YAML file onto base.
// Keys missing from the file keep their base values.
//
//	pricing:
//	  material_cost: 4.25
//	  labor_cost: 2.75
//	  steep_roof_multiplier: 1.3
//	  damage_repair_multiplier: 1.2
//	  waste_factor: 1.12
func LoadPricingFile(path string, base roof.Pricing) (roof.Pricing, error) {
	f, err := os.Open(path)
	if err != nil {
		return base, fmt.Errorf("open pricing file: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxPricingFileSize+1))
	if err != nil {
		return base, fmt.Errorf("read pricing file: %w", err)
	}
	if len(content) > maxPricingFileSize {
		return base, fmt.Errorf("pricing file %s exceeds %d bytes", path, maxPricingFileSize)
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
		return base, fmt.Errorf("parse pricing file %s: %w", path, err)
	}

	pricing := base
	if err := k.Unmarshal("pricing", &pricing); err != nil {
		return base, fmt.Errorf("decode pricing section: %w", err)
	}
	return pricing, nil
}
