package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/elev8ted-roofs/estimator-api/internal/business/roof"
)

// Placeholder values shipped in .env.example; treated as unset.
const (
	placeholderMapsKey   = "your_google_maps_api_key_here"
	placeholderOpenAIKey = "your_openai_api_key_here"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	Port       string
	GinMode    string
	LogLevel   string
	LogFormat  string
	AppName    string
	AppVersion string

	CORSOrigins string

	GoogleMapsAPIKey      string
	GoogleGeocodingAPIKey string
	OpenAIAPIKey          string
	OpenAIModel           string
	OpenAIBaseURL         string
	AIRatePerMinute       int

	PricingFile string
	Pricing     roof.Pricing

	FirebaseProjectID   string
	FirebaseCredsBase64 string
	FirebaseCredsFile   string
}

// Load reads environment variables into a Config with sensible defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:                  getEnv("PORT", "8000"),
		GinMode:               getEnv("GIN_MODE", "release"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             getEnv("LOG_FORMAT", "json"),
		AppName:               getEnv("APP_NAME", "Elev8ted Roofs"),
		AppVersion:            getEnv("APP_VERSION", "1.0.0"),
		CORSOrigins:           getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000"),
		GoogleMapsAPIKey:      strings.TrimSpace(os.Getenv("GOOGLE_MAPS_API_KEY")),
		GoogleGeocodingAPIKey: strings.TrimSpace(os.Getenv("GOOGLE_GEOCODING_API_KEY")),
		OpenAIAPIKey:          strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIModel:           getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:         strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		PricingFile:           strings.TrimSpace(os.Getenv("PRICING_FILE")),
		FirebaseProjectID:     strings.TrimSpace(os.Getenv("FIREBASE_PROJECT_ID")),
		FirebaseCredsBase64:   strings.TrimSpace(os.Getenv("FIREBASE_CREDS_BASE64")),
		FirebaseCredsFile:     strings.TrimSpace(os.Getenv("FIREBASE_CREDS_FILE")),
	}

	rate, err := parseIntEnv("AI_RATE_PER_MINUTE", 30)
	if err != nil {
		return Config{}, fmt.Errorf("parse AI_RATE_PER_MINUTE: %w", err)
	}
	cfg.AIRatePerMinute = rate

	pricing := roof.DefaultPricing()
	if cfg.PricingFile != "" {
		pricing, err = LoadPricingFile(cfg.PricingFile, pricing)
		if err != nil {
			return Config{}, err
		}
	}
	if pricing, err = applyPricingEnv(pricing); err != nil {
		return Config{}, err
	}
	cfg.Pricing = pricing

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate ensures required fields are present and pricing is usable.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.AIRatePerMinute < 0 {
		return errors.New("AI_RATE_PER_MINUTE must not be negative")
	}
	if err := c.Pricing.Validate(); err != nil {
		return fmt.Errorf("pricing: %w", err)
	}
	if c.FirebaseProjectID != "" && c.FirebaseCredsBase64 == "" && c.FirebaseCredsFile == "" {
		return errors.New("provide FIREBASE_CREDS_BASE64 or FIREBASE_CREDS_FILE when FIREBASE_PROJECT_ID is set")
	}
	return nil
}

// CORSOriginList splits CORSOrigins on commas.
func (c Config) CORSOriginList() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// HasGoogleMapsKey reports whether a usable Maps key is configured.
func (c Config) HasGoogleMapsKey() bool {
	return c.GoogleMapsAPIKey != "" && c.GoogleMapsAPIKey != placeholderMapsKey
}

// HasOpenAIKey reports whether a usable OpenAI key is configured.
func (c Config) HasOpenAIKey() bool {
	return c.OpenAIAPIKey != "" && c.OpenAIAPIKey != placeholderOpenAIKey
}

// GeocodingKey prefers the dedicated geocoding key and falls back to the Maps key.
func (c Config) GeocodingKey() string {
	if c.GoogleGeocodingAPIKey != "" && c.GoogleGeocodingAPIKey != placeholderMapsKey {
		return c.GoogleGeocodingAPIKey
	}
	if c.HasGoogleMapsKey() {
		return c.GoogleMapsAPIKey
	}
	return ""
}

// HistoryEnabled reports whether estimates should be archived to Firestore.
func (c Config) HistoryEnabled() bool {
	return c.FirebaseProjectID != ""
}

// FirebaseCredentialsJSON returns the service account JSON bytes and the source used.
func (c Config) FirebaseCredentialsJSON() ([]byte, string, error) {
	if c.FirebaseCredsBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(c.FirebaseCredsBase64)
		if err != nil {
			return nil, "base64", fmt.Errorf("decode FIREBASE_CREDS_BASE64: %w", err)
		}
		return decoded, "base64", nil
	}
	if c.FirebaseCredsFile != "" {
		data, err := os.ReadFile(c.FirebaseCredsFile)
		if err != nil {
			return nil, "file", fmt.Errorf("read FIREBASE_CREDS_FILE: %w", err)
		}
		return data, "file", nil
	}
	return nil, "", errors.New("no firebase credentials found")
}

func applyPricingEnv(p roof.Pricing) (roof.Pricing, error) {
	overrides := []struct {
		key string
		dst *float64
	}{
		{"DEFAULT_MATERIAL_COST", &p.MaterialCostPerSqft},
		{"DEFAULT_LABOR_COST", &p.LaborCostPerSqft},
		{"STEEP_ROOF_MULTIPLIER", &p.SteepRoofMultiplier},
		{"DAMAGE_REPAIR_MULTIPLIER", &p.DamageRepairMultiplier},
	}
	for _, o := range overrides {
		v, err := parseFloatEnv(o.key, *o.dst)
		if err != nil {
			return p, fmt.Errorf("parse %s: %w", o.key, err)
		}
		*o.dst = v
	}
	return p, nil
}

func getEnv(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func parseIntEnv(key string, defaultVal int) (int, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(val)
}

func parseFloatEnv(key string, defaultVal float64) (float64, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal, nil
	}
	return strconv.ParseFloat(val, 64)
}
