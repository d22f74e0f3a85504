package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/elev8ted-roofs/estimator-api/internal/platform/metrics"
	"github.com/elev8ted-roofs/estimator-api/pkg/model"
	"github.com/tmc/langchaingo/llms"
)

// AnalysisRequest describes an estimate to review.
type AnalysisRequest struct {
	Address      string
	AreaSqFt     float64
	PitchDegrees float64
	UserNotes    string
}

// DamageRequest describes the observed roof condition.
type DamageRequest struct {
	Description string
	AreaSqFt    float64
}

const analysisSystemPrompt = "You are an expert roofing consultant providing detailed, accurate estimates."

const analysisPrompt = `You are a roofing expert AI assistant for Elev8ted Roofs. Analyze this roof estimate and provide insights:

Address: %s
Roof Area: %.2f sq ft
Estimated Pitch: %v°
%s
Provide a JSON response with:
1. "complexity_rating": Rate the job complexity (1-10)
2. "recommendations": List of 3-5 specific recommendations for this roof
3. "material_suggestions": Suggested roofing materials for this property
4. "timeline_estimate": Estimated project duration in days
5. "considerations": Important factors to consider
6. "confidence": Your confidence in this estimate (0-1)

Keep recommendations practical and specific to the roof size and pitch.`

const damageSystemPrompt = "You are a roof damage assessment expert."

const damagePrompt = `Analyze this roof condition description and assess damage:

Roof Area: %.2f sq ft
Description: %s

Provide JSON with:
1. "has_damage": true/false
2. "damage_types": list of specific damage types found
3. "severity": "none", "minor", "moderate", or "severe"
4. "repair_priority": "low", "medium", "high", or "urgent"
5. "estimated_repair_cost_multiplier": 1.0 to 2.0 (how much repairs add to base cost)
6. "confidence": 0-1 confidence score`

type analysisPayload struct {
	ComplexityRating    float64  `json:"complexity_rating"`
	Recommendations     []string `json:"recommendations"`
	MaterialSuggestions []string `json:"material_suggestions"`
	TimelineEstimate    float64  `json:"timeline_estimate"`
	Considerations      []string `json:"considerations"`
	Confidence          float64  `json:"confidence"`
}

// AnalyzeRoof asks the model for recommendations on an estimate.
func (c *Client) AnalyzeRoof(ctx context.Context, req AnalysisRequest) model.RoofAnalysis {
	if !c.Configured() {
		c.recorder.IncUpstream(ProviderAnalysis, metrics.OutcomeUnconfigured)
		return model.RoofAnalysis{
			Error:           "OpenAI API key not configured",
			Recommendations: []string{"Configure OpenAI API key to enable AI insights"},
		}
	}

	var notes string
	if strings.TrimSpace(req.UserNotes) != "" {
		notes = "User Notes: " + req.UserNotes + "\n"
	}
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, analysisSystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, fmt.Sprintf(analysisPrompt, req.Address, req.AreaSqFt, req.PitchDegrees, notes)),
	}

	var payload analysisPayload
	err := c.generateJSON(ctx, messages, &payload, llms.WithTemperature(0.7), llms.WithMaxTokens(800))
	c.record(ProviderAnalysis, err)
	if err != nil {
		return model.RoofAnalysis{
			Error:           fmt.Sprintf("AI analysis failed: %v", err),
			Recommendations: []string{"Manual review recommended"},
		}
	}

	return model.RoofAnalysis{
		Success:             true,
		ComplexityRating:    roundInt(payload.ComplexityRating),
		Recommendations:     payload.Recommendations,
		MaterialSuggestions: payload.MaterialSuggestions,
		TimelineEstimate:    roundInt(payload.TimelineEstimate),
		Considerations:      payload.Considerations,
		Confidence:          payload.Confidence,
	}
}

// DetectDamage asks the model to assess a written description of the roof.
func (c *Client) DetectDamage(ctx context.Context, req DamageRequest) model.DamageAssessment {
	if !c.Configured() {
		c.recorder.IncUpstream(ProviderDamage, metrics.OutcomeUnconfigured)
		return model.DamageAssessment{DamageTypes: []string{}, Severity: "unknown"}
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, damageSystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, fmt.Sprintf(damagePrompt, req.AreaSqFt, req.Description)),
	}

	var out model.DamageAssessment
	err := c.generateJSON(ctx, messages, &out, llms.WithTemperature(0.5), llms.WithMaxTokens(500))
	c.record(ProviderDamage, err)
	if err != nil {
		return model.DamageAssessment{DamageTypes: []string{}, Severity: "unknown", Error: err.Error()}
	}
	if out.DamageTypes == nil {
		out.DamageTypes = []string{}
	}
	if out.Severity == "" {
		out.Severity = "unknown"
	}
	return out
}
