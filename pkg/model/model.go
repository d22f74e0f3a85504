package model

import "time"

// Point is a vertex of a traced roof outline in image pixel space.
type Point struct {
	X float64 `json:"x" firestore:"x"`
	Y float64 `json:"y" firestore:"y"`
}

// Measurement is the result of measuring a traced roof polygon.
type Measurement struct {
	AreaSqFt        float64 `json:"area_sq_ft"`
	EstimatedPitch  float64 `json:"estimated_pitch"`
	PitchMultiplier float64 `json:"pitch_multiplier"`
	Perimeter       float64 `json:"perimeter"`
	PointCount      int     `json:"point_count"`
}

// CostEstimate is the full cost breakdown for a roof replacement.
type CostEstimate struct {
	AreaSqFt        float64 `json:"area_sq_ft" firestore:"areaSqFt"`
	PitchDegrees    float64 `json:"pitch_degrees" firestore:"pitchDegrees"`
	PitchMultiplier float64 `json:"pitch_multiplier" firestore:"pitchMultiplier"`
	MaterialCost    float64 `json:"material_cost" firestore:"materialCost"`
	LaborCost       float64 `json:"labor_cost" firestore:"laborCost"`
	RepairCost      float64 `json:"repair_cost" firestore:"repairCost"`
	Subtotal        float64 `json:"subtotal" firestore:"subtotal"`
	Total           float64 `json:"total" firestore:"total"`
	CostPerSqFt     float64 `json:"cost_per_sqft" firestore:"costPerSqft"`
}

// Quote combines a polygon measurement with the estimate derived from it.
type Quote struct {
	Measurement Measurement  `json:"measurement"`
	Estimate    CostEstimate `json:"estimate"`
}

// PricingDefaults is the public view of the configured pricing.
type PricingDefaults struct {
	MaterialCostPerSqft    float64 `json:"material_cost_per_sqft"`
	LaborCostPerSqft       float64 `json:"labor_cost_per_sqft"`
	SteepRoofMultiplier    float64 `json:"steep_roof_multiplier"`
	DamageRepairMultiplier float64 `json:"damage_repair_multiplier"`
	Currency               string  `json:"currency"`
}

// EstimateInputs mirrors the caller-supplied inputs of an archived estimate.
type EstimateInputs struct {
	AreaSqFt            float64  `json:"area_sq_ft" firestore:"areaSqFt"`
	PitchDegrees        float64  `json:"pitch_degrees" firestore:"pitchDegrees"`
	HasDamage           bool     `json:"has_damage" firestore:"hasDamage"`
	MaterialCostPerSqft *float64 `json:"material_cost_per_sqft,omitempty" firestore:"materialCostPerSqft,omitempty"`
	LaborCostPerSqft    *float64 `json:"labor_cost_per_sqft,omitempty" firestore:"laborCostPerSqft,omitempty"`
}

// EstimateRecord is the document stored in the `estimates` collection.
type EstimateRecord struct {
	ID          string         `json:"id" firestore:"id"`
	Address     string         `json:"address,omitempty" firestore:"address,omitempty"`
	AddressHash string         `json:"addressHash,omitempty" firestore:"addressHash,omitempty"`
	Points      []Point        `json:"points,omitempty" firestore:"points,omitempty"`
	Inputs      EstimateInputs `json:"inputs" firestore:"inputs"`
	Estimate    CostEstimate   `json:"estimate" firestore:"estimate"`
	CreatedAt   time.Time      `json:"createdAt" firestore:"createdAt"`
}

// GeocodeResult is the response of an address lookup.
type GeocodeResult struct {
	Address          string  `json:"address"`
	FormattedAddress string  `json:"formatted_address"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Success          bool    `json:"success"`
	Error            string  `json:"error,omitempty"`
}

// AddressSuggestion is a single autocomplete prediction.
type AddressSuggestion struct {
	Description string `json:"description"`
	PlaceID     string `json:"place_id"`
}

// AutocompleteResult lists predictions for a partial address.
type AutocompleteResult struct {
	Suggestions []AddressSuggestion `json:"suggestions"`
	Success     bool                `json:"success"`
	Error       string              `json:"error,omitempty"`
}

// SatelliteImage carries a fetched static map image.
type SatelliteImage struct {
	ImageURL    string `json:"image_url"`
	ImageBase64 string `json:"image_base64,omitempty"`
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
}

// RoofDetection is the outline a vision model traced on an aerial image.
type RoofDetection struct {
	Success    bool    `json:"success"`
	Points     []Point `json:"points"`
	Confidence float64 `json:"confidence"`
	RoofType   string  `json:"roof_type"`
	Error      string  `json:"error,omitempty"`
	Message    string  `json:"message,omitempty"`
}

// RoofAnalysis holds model-generated insights for an estimate.
type RoofAnalysis struct {
	Success             bool     `json:"success"`
	ComplexityRating    int      `json:"complexity_rating,omitempty"`
	Recommendations     []string `json:"recommendations,omitempty"`
	MaterialSuggestions []string `json:"material_suggestions,omitempty"`
	TimelineEstimate    int      `json:"timeline_estimate,omitempty"`
	Considerations      []string `json:"considerations,omitempty"`
	Confidence          float64  `json:"confidence"`
	Error               string   `json:"error,omitempty"`
}

// DamageAssessment is a model-generated judgement of roof condition.
type DamageAssessment struct {
	HasDamage                     bool     `json:"has_damage"`
	DamageTypes                   []string `json:"damage_types"`
	Severity                      string   `json:"severity"`
	RepairPriority                string   `json:"repair_priority,omitempty"`
	EstimatedRepairCostMultiplier float64  `json:"estimated_repair_cost_multiplier,omitempty"`
	Confidence                    float64  `json:"confidence"`
	Error                         string   `json:"error,omitempty"`
}

// AIStatus reports whether model-backed features are available.
type AIStatus struct {
	Configured bool            `json:"configured"`
	Model      string          `json:"model"`
	Features   map[string]bool `json:"features"`
	Message    string          `json:"message"`
}

// EstimateStats is a singleton document that pre-aggregates archived estimates.
type EstimateStats struct {
	LastUpdated     time.Time `json:"lastUpdated,omitempty" firestore:"lastUpdated,omitempty"`
	TotalEstimates  int       `json:"totalEstimates" firestore:"totalEstimates"`
	WithDamage      int       `json:"withDamage" firestore:"withDamage"`
	AvgAreaSqFt     float64   `json:"avgAreaSqFt" firestore:"avgAreaSqFt"`
	AvgTotal        float64   `json:"avgTotal" firestore:"avgTotal"`
	AvgCostPerSqFt  float64   `json:"avgCostPerSqft" firestore:"avgCostPerSqft"`
	UniqueAddresses int       `json:"uniqueAddresses" firestore:"uniqueAddresses"`
}
