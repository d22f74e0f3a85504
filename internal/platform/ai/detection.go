package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/elev8ted-roofs/estimator-api/internal/platform/metrics"
	"github.com/elev8ted-roofs/estimator-api/pkg/model"
	"github.com/tmc/langchaingo/llms"
)

// DetectionRequest carries an aerial image to trace.
type DetectionRequest struct {
	ImageBase64 string
	Latitude    float64
	Longitude   float64
	ImageWidth  int
	ImageHeight int
}

const detectionPrompt = `Analyze this satellite/aerial image of a property and detect the main roof structure.

Image dimensions: %dx%d pixels
Location: %v, %v

Your task:
1. Identify the PRIMARY roof structure (the main building)
2. Determine the roof outline polygon corners
3. Return corner coordinates as pixel positions (x, y) relative to image dimensions

Return a JSON response with this exact format:
{
  "points": [
    {"x": 100, "y": 150},
    {"x": 700, "y": 150},
    {"x": 700, "y": 450},
    {"x": 100, "y": 450}
  ],
  "confidence": 0.85,
  "roof_type": "rectangular"
}

Guidelines:
- Provide 4-8 corner points tracing the roof perimeter
- Points should be in clockwise order
- Use actual pixel coordinates within the image bounds
- roof_type can be: "rectangular", "L-shaped", "complex", "hip", "gable"
- confidence: 0-1 score of detection certainty`

type detectionPayload struct {
	Points     []model.Point `json:"points"`
	Confidence float64       `json:"confidence"`
	RoofType   string        `json:"roof_type"`
}

// DetectRoof asks the vision model for the outline of the main roof in the image.
func (c *Client) DetectRoof(ctx context.Context, req DetectionRequest) model.RoofDetection {
	if !c.Configured() {
		c.recorder.IncUpstream(ProviderVision, metrics.OutcomeUnconfigured)
		return model.RoofDetection{
			Points:   []model.Point{},
			RoofType: "unknown",
			Error:    "OpenAI API key not configured",
			Message:  "Configure OpenAI API key to enable AI roof detection",
		}
	}
	if req.ImageWidth <= 0 {
		req.ImageWidth = 800
	}
	if req.ImageHeight <= 0 {
		req.ImageHeight = 600
	}

	prompt := fmt.Sprintf(detectionPrompt, req.ImageWidth, req.ImageHeight, req.Latitude, req.Longitude)
	messages := []llms.MessageContent{{
		Role: llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{
			llms.TextContent{Text: prompt},
			llms.ImageURLPart(imageDataURL(req.ImageBase64)),
		},
	}}

	var payload detectionPayload
	err := c.generateJSON(ctx, messages, &payload, llms.WithMaxTokens(500))
	c.record(ProviderVision, err)
	if err != nil {
		return model.RoofDetection{
			Points:   []model.Point{},
			RoofType: "unknown",
			Error:    fmt.Sprintf("AI detection failed: %v", err),
			Message:  "Please draw roof outline manually",
		}
	}

	if len(payload.Points) < 3 {
		return model.RoofDetection{
			Points:   []model.Point{},
			RoofType: "unknown",
			Error:    "Could not detect roof outline",
			Message:  "AI could not identify a clear roof structure. Please draw manually.",
		}
	}

	roofType := payload.RoofType
	label := roofType
	if roofType == "" {
		roofType, label = "unknown", "roof"
	}
	return model.RoofDetection{
		Success:    true,
		Points:     payload.Points,
		Confidence: payload.Confidence,
		RoofType:   roofType,
		Message:    fmt.Sprintf("Detected %s with %d corners", label, len(payload.Points)),
	}
}

// imageDataURL accepts either a data URL or bare base64 PNG bytes.
func imageDataURL(image string) string {
	if strings.HasPrefix(image, "data:") || strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}
	return "data:image/png;base64," + image
}
