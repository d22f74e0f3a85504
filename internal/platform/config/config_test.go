package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/elev8ted-roofs/estimator-api/internal/business/roof"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "GIN_MODE", "CORS_ORIGINS", "GOOGLE_MAPS_API_KEY", "GOOGLE_GEOCODING_API_KEY",
		"OPENAI_API_KEY", "OPENAI_MODEL", "AI_RATE_PER_MINUTE", "PRICING_FILE",
		"DEFAULT_MATERIAL_COST", "DEFAULT_LABOR_COST", "STEEP_ROOF_MULTIPLIER", "DAMAGE_REPAIR_MULTIPLIER",
		"FIREBASE_PROJECT_ID", "FIREBASE_CREDS_BASE64", "FIREBASE_CREDS_FILE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, 30, cfg.AIRatePerMinute)
	assert.Equal(t, roof.DefaultPricing(), cfg.Pricing)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.CORSOriginList())
	assert.False(t, cfg.HasGoogleMapsKey())
	assert.False(t, cfg.HasOpenAIKey())
	assert.False(t, cfg.HistoryEnabled())
}

func TestLoadPricingEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEFAULT_MATERIAL_COST", "4.10")
	t.Setenv("DAMAGE_REPAIR_MULTIPLIER", "1.3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4.10, cfg.Pricing.MaterialCostPerSqft)
	assert.Equal(t, 2.50, cfg.Pricing.LaborCostPerSqft)
	assert.Equal(t, 1.3, cfg.Pricing.DamageRepairMultiplier)
}

func TestLoadRejectsBadPricing(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEFAULT_LABOR_COST", "cheap")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DEFAULT_LABOR_COST", "-2")
	_, err = Load()
	assert.ErrorIs(t, err, roof.ErrInvalidPrice)
}

func TestLoadPricingFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	content := []byte("pricing:\n  material_cost: 4.25\n  steep_roof_multiplier: 1.3\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("PRICING_FILE", path)
	t.Setenv("STEEP_ROOF_MULTIPLIER", "1.35")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4.25, cfg.Pricing.MaterialCostPerSqft)
	assert.Equal(t, 2.50, cfg.Pricing.LaborCostPerSqft)
	assert.Equal(t, 1.35, cfg.Pricing.SteepRoofMultiplier)
	assert.Equal(t, 1.1, cfg.Pricing.WasteFactor)
}

func TestLoadPricingFileMissing(t *testing.T) {
	_, err := LoadPricingFile(filepath.Join(t.TempDir(), "nope.yaml"), roof.DefaultPricing())
	assert.Error(t, err)
}

func TestPlaceholderKeysAreUnconfigured(t *testing.T) {
	cfg := Config{
		GoogleMapsAPIKey: placeholderMapsKey,
		OpenAIAPIKey:     placeholderOpenAIKey,
	}
	assert.False(t, cfg.HasGoogleMapsKey())
	assert.False(t, cfg.HasOpenAIKey())
	assert.Empty(t, cfg.GeocodingKey())

	cfg.GoogleMapsAPIKey = "maps"
	assert.Equal(t, "maps", cfg.GeocodingKey())
	cfg.GoogleGeocodingAPIKey = "geo"
	assert.Equal(t, "geo", cfg.GeocodingKey())
}

func TestValidateFirestorePartialConfig(t *testing.T) {
	cfg := Config{Port: "8000", Pricing: roof.DefaultPricing(), FirebaseProjectID: "roofs"}
	assert.Error(t, cfg.Validate())

	cfg.FirebaseCredsFile = "/secrets/sa.json"
	assert.NoError(t, cfg.Validate())
}
