// Package ai wraps the language model used for roof outline detection,
// estimate insights, and damage assessment.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/elev8ted-roofs/estimator-api/internal/platform/metrics"
	"github.com/elev8ted-roofs/estimator-api/pkg/model"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Provider names reported to the Recorder.
const (
	ProviderVision   = "vision"
	ProviderAnalysis = "analysis"
	ProviderDamage   = "damage"
)

var errEmptyResponse = errors.New("model returned no choices")

// Recorder receives the outcome of each model call.
type Recorder interface {
	IncUpstream(provider, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) IncUpstream(string, string) {}

// Config defines settings for the model client.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client calls a chat model in JSON mode. A Client without a model answers
// every call with a degraded result.
type Client struct {
	llm       llms.Model
	modelName string
	recorder  Recorder
	timeout   time.Duration
}

// New builds an OpenAI-backed client. An empty API key yields an
// unconfigured client rather than an error.
func New(cfg Config, httpClient *http.Client, recorder Recorder) (*Client, error) {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.APIKey == "" {
		return NewWithModel(nil, cfg.Model, recorder, cfg.Timeout), nil
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	if httpClient != nil {
		opts = append(opts, openai.WithHTTPClient(httpClient))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("init openai client: %w", err)
	}
	return NewWithModel(llm, cfg.Model, recorder, cfg.Timeout), nil
}

// NewWithModel wraps an existing model. llm may be nil.
func NewWithModel(llm llms.Model, modelName string, recorder Recorder, timeout time.Duration) *Client {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{llm: llm, modelName: modelName, recorder: recorder, timeout: timeout}
}

// Configured reports whether a model is available.
func (c *Client) Configured() bool {
	return c.llm != nil
}

// Status describes which model-backed features are enabled.
func (c *Client) Status() model.AIStatus {
	on := c.Configured()
	status := model.AIStatus{
		Configured: on,
		Model:      "not configured",
		Features: map[string]bool{
			"roof_analysis":     on,
			"damage_detection":  on,
			"cost_optimization": on,
		},
		Message: "Configure OpenAI API key to enable AI features",
	}
	if on {
		status.Model = c.modelName
		status.Message = "AI service ready"
	}
	return status
}

// generateJSON sends the messages in JSON mode and decodes the first choice into out.
func (c *Client) generateJSON(ctx context.Context, messages []llms.MessageContent, out any, opts ...llms.CallOption) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	opts = append(opts, llms.WithJSONMode())
	resp, err := c.llm.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return errEmptyResponse
	}
	content := stripCodeFence(resp.Choices[0].Content)
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("decode model response: %w", err)
	}
	return nil
}

// stripCodeFence removes a ```json fence some models add despite JSON mode.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func (c *Client) record(provider string, err error) {
	if err != nil {
		c.recorder.IncUpstream(provider, metrics.OutcomeError)
		return
	}
	c.recorder.IncUpstream(provider, metrics.OutcomeSuccess)
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
