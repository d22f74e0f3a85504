package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	content  string
	err      error
	messages []llms.MessageContent
	options  llms.CallOptions
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, opts ...llms.CallOption) (*llms.ContentResponse, error) {
	f.messages = messages
	for _, opt := range opts {
		opt(&f.options)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.content}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, opts ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, opts...)
}

type countingRecorder map[string]int

func (r countingRecorder) IncUpstream(provider, outcome string) { r[provider+"/"+outcome]++ }

func TestNewWithoutKeyIsUnconfigured(t *testing.T) {
	c, err := New(Config{}, nil, nil)
	require.NoError(t, err)
	assert.False(t, c.Configured())

	status := c.Status()
	assert.False(t, status.Configured)
	assert.Equal(t, "not configured", status.Model)
	assert.False(t, status.Features["roof_analysis"])
}

func TestStatusConfigured(t *testing.T) {
	c := NewWithModel(&fakeModel{}, "gpt-4o-mini", nil, 0)
	status := c.Status()
	assert.True(t, status.Configured)
	assert.Equal(t, "gpt-4o-mini", status.Model)
	assert.Equal(t, "AI service ready", status.Message)
}

func TestDetectRoof(t *testing.T) {
	fm := &fakeModel{content: `{"points":[{"x":100,"y":150},{"x":700,"y":150},{"x":700,"y":450},{"x":100,"y":450}],"confidence":0.85,"roof_type":"hip"}`}
	rec := countingRecorder{}
	c := NewWithModel(fm, "gpt-4o-mini", rec, 0)

	got := c.DetectRoof(context.Background(), DetectionRequest{ImageBase64: "iVBORw0KGgo=", Latitude: 1, Longitude: 2})
	require.True(t, got.Success, got.Error)
	assert.Len(t, got.Points, 4)
	assert.Equal(t, "hip", got.RoofType)
	assert.Equal(t, "Detected hip with 4 corners", got.Message)
	assert.True(t, fm.options.JSONMode)
	assert.Equal(t, 500, fm.options.MaxTokens)
	assert.Equal(t, 1, rec["vision/success"])

	require.Len(t, fm.messages, 1)
	require.Len(t, fm.messages[0].Parts, 2)
	img, ok := fm.messages[0].Parts[1].(llms.ImageURLContent)
	require.True(t, ok)
	assert.Equal(t, "data:image/png;base64,iVBORw0KGgo=", img.URL)
	text, ok := fm.messages[0].Parts[0].(llms.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "Image dimensions: 800x600 pixels")
}

func TestDetectRoofTooFewPoints(t *testing.T) {
	c := NewWithModel(&fakeModel{content: `{"points":[{"x":1,"y":1}],"confidence":0.2}`}, "m", nil, 0)

	got := c.DetectRoof(context.Background(), DetectionRequest{ImageBase64: "data:image/png;base64,AAAA"})
	assert.False(t, got.Success)
	assert.Equal(t, "Could not detect roof outline", got.Error)
	assert.Empty(t, got.Points)
}

func TestDetectRoofDegrades(t *testing.T) {
	unconfigured := NewWithModel(nil, "m", nil, 0).DetectRoof(context.Background(), DetectionRequest{})
	assert.False(t, unconfigured.Success)
	assert.Equal(t, "OpenAI API key not configured", unconfigured.Error)

	failing := NewWithModel(&fakeModel{err: errors.New("rate limited")}, "m", nil, 0).
		DetectRoof(context.Background(), DetectionRequest{ImageBase64: "AAAA"})
	assert.False(t, failing.Success)
	assert.Contains(t, failing.Error, "rate limited")
	assert.Equal(t, "Please draw roof outline manually", failing.Message)
}

func TestAnalyzeRoof(t *testing.T) {
	fm := &fakeModel{content: "```json\n{\"complexity_rating\": 6, \"recommendations\": [\"Replace flashing\"], \"material_suggestions\": [\"Architectural shingles\"], \"timeline_estimate\": 3.4, \"considerations\": [\"Steep pitch\"], \"confidence\": 0.8}\n```"}
	c := NewWithModel(fm, "m", nil, 0)

	got := c.AnalyzeRoof(context.Background(), AnalysisRequest{Address: "1 Main St", AreaSqFt: 1850, PitchDegrees: 27.5, UserNotes: "old skylight"})
	require.True(t, got.Success, got.Error)
	assert.Equal(t, 6, got.ComplexityRating)
	assert.Equal(t, 3, got.TimelineEstimate)
	assert.Equal(t, []string{"Replace flashing"}, got.Recommendations)
	assert.Equal(t, 0.7, fm.options.Temperature)

	require.Len(t, fm.messages, 2)
	assert.Equal(t, llms.ChatMessageTypeSystem, fm.messages[0].Role)
	prompt := fm.messages[1].Parts[0].(llms.TextContent).Text
	assert.Contains(t, prompt, "Roof Area: 1850.00 sq ft")
	assert.Contains(t, prompt, "User Notes: old skylight")
}

func TestAnalyzeRoofDegrades(t *testing.T) {
	unconfigured := NewWithModel(nil, "m", nil, 0).AnalyzeRoof(context.Background(), AnalysisRequest{})
	assert.False(t, unconfigured.Success)
	assert.Equal(t, []string{"Configure OpenAI API key to enable AI insights"}, unconfigured.Recommendations)

	garbled := NewWithModel(&fakeModel{content: "not json"}, "m", nil, 0).AnalyzeRoof(context.Background(), AnalysisRequest{})
	assert.False(t, garbled.Success)
	assert.Equal(t, []string{"Manual review recommended"}, garbled.Recommendations)
	assert.Contains(t, garbled.Error, "AI analysis failed")
}

func TestDetectDamage(t *testing.T) {
	fm := &fakeModel{content: `{"has_damage":true,"damage_types":["missing shingles"],"severity":"moderate","repair_priority":"high","estimated_repair_cost_multiplier":1.2,"confidence":0.7}`}
	c := NewWithModel(fm, "m", nil, 0)

	got := c.DetectDamage(context.Background(), DamageRequest{Description: "shingles blown off after storm", AreaSqFt: 1200})
	assert.True(t, got.HasDamage)
	assert.Equal(t, "moderate", got.Severity)
	assert.Equal(t, 1.2, got.EstimatedRepairCostMultiplier)
	assert.Equal(t, 0.5, fm.options.Temperature)
}

func TestDetectDamageDegrades(t *testing.T) {
	unconfigured := NewWithModel(nil, "m", nil, 0).DetectDamage(context.Background(), DamageRequest{})
	assert.False(t, unconfigured.HasDamage)
	assert.Equal(t, "unknown", unconfigured.Severity)
	assert.NotNil(t, unconfigured.DamageTypes)

	failing := NewWithModel(&fakeModel{err: errors.New("boom")}, "m", nil, 0).DetectDamage(context.Background(), DamageRequest{})
	assert.False(t, failing.HasDamage)
	assert.Equal(t, "boom", failing.Error)
}
