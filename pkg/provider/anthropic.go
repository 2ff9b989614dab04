package provider

import (
	"context"
	"net/http"
	"strings"

	"github.com/jdgilhuly/presto/pkg/parameter"
)

const (
	defaultAnthropicURL       = "https://api.anthropic.com/v1"
	defaultAnthropicVersion   = "2023-06-01"
	defaultAnthropicModel     = "claude-3-5-sonnet-20241022"
	defaultAnthropicMaxTokens = 1024
)

// anthropicModels is the curated catalog. Anthropic has no public listing
// endpoint for these keys, so no request is made.
var anthropicModels = []Model{
	{ID: "claude-3-5-sonnet-20241022", Name: "Claude 3.5 Sonnet", Description: "Most intelligent Claude 3.5 model", ContextLength: 200000},
	{ID: "claude-3-5-haiku-20241022", Name: "Claude 3.5 Haiku", Description: "Fastest Claude 3.5 model", ContextLength: 200000},
	{ID: "claude-3-opus-20240229", Name: "Claude 3 Opus", Description: "Powerful model for highly complex tasks", ContextLength: 200000},
	{ID: "claude-3-sonnet-20240229", Name: "Claude 3 Sonnet", Description: "Balance of intelligence and speed", ContextLength: 200000},
	{ID: "claude-3-haiku-20240307", Name: "Claude 3 Haiku", Description: "Fast and compact model for near-instant responsiveness", ContextLength: 200000},
	{ID: "claude-sonnet-4-5-20250929", Name: "Claude Sonnet 4.5", Description: "Claude 4 family model for complex agents and coding", ContextLength: 200000},
}

var anthropicTemperatureParam = parameter.MustNew(ParamTemperature, parameter.KindFloat,
	"Controls randomness in the output (higher is more random)",
	parameter.WithRange(0, 1), parameter.WithDefault(parameter.Float(0.7)))

// AnthropicProvider implements Provider for the Anthropic Messages API.
type AnthropicProvider struct {
	base
}

// NewAnthropicProvider creates a new Anthropic provider with the given API key.
func NewAnthropicProvider(apiKey string, opts ...Option) (*AnthropicProvider, error) {
	b, err := newBase(NameAnthropic, apiKey, defaultAnthropicURL, opts)
	if err != nil {
		return nil, err
	}
	return &AnthropicProvider{base: b}, nil
}

// DefaultModel returns "claude-3-5-sonnet-20241022".
func (p *AnthropicProvider) DefaultModel() string { return defaultAnthropicModel }

// AvailableModels returns the curated catalog with prices from the built-in
// table.
func (p *AnthropicProvider) AvailableModels(context.Context) ([]Model, error) {
	models := make([]Model, len(anthropicModels))
	copy(models, anthropicModels)
	for i := range models {
		if pr, ok := PricingFor(models[i].ID); ok {
			models[i].Pricing = pr
		}
	}
	return models, nil
}

// AvailableParameters returns the text parameters with temperature narrowed
// to [0, 1].
func (p *AnthropicProvider) AvailableParameters(string) parameter.Set {
	return TextParameters().With(anthropicTemperatureParam)
}

// Generate sends a Messages request for the prompt in params.
func (p *AnthropicProvider) Generate(ctx context.Context, model string, params parameter.Params) (*Response, error) {
	return generateText(ctx, p, model, params)
}

// anthropicRequest is the Anthropic Messages API request body.
type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int64              `json:"max_tokens"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature *float64           `json:"temperature,omitempty"`
	TopP        *float64           `json:"top_p,omitempty"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// anthropicResponse is the Anthropic Messages API response body.
type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      *struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func (p *AnthropicProvider) perform(ctx context.Context, model, prompt string, opts parameter.Params) (*Response, error) {
	req := anthropicRequest{
		Model:       model,
		MaxTokens:   defaultAnthropicMaxTokens,
		Messages:    []anthropicMessage{{Role: "user", Content: prompt}},
		Temperature: floatParam(opts, ParamTemperature),
		TopP:        floatParam(opts, ParamTopP),
	}
	if n := intParam(opts, ParamMaxTokens); n != nil {
		req.MaxTokens = *n
	}

	header := http.Header{
		"X-Api-Key":         {p.apiKey},
		"Anthropic-Version": {defaultAnthropicVersion},
	}

	var ar anthropicResponse
	if err := p.request(ctx, http.MethodPost, "/messages", header, req, &ar); err != nil {
		return nil, err
	}
	return parseAnthropicResponse(&ar), nil
}

func parseAnthropicResponse(ar *anthropicResponse) *Response {
	var texts []string
	for _, block := range ar.Content {
		if block.Type == "text" {
			texts = append(texts, block.Text)
		}
	}

	resp := &Response{
		Choices: []Choice{{
			Message:      Message{Content: strings.Join(texts, "\n"), Role: "assistant"},
			FinishReason: ar.StopReason,
		}},
	}
	if ar.Usage != nil {
		resp.Usage = &Usage{
			PromptTokens:     ar.Usage.InputTokens,
			CompletionTokens: ar.Usage.OutputTokens,
			TotalTokens:      ar.Usage.InputTokens + ar.Usage.OutputTokens,
		}
	}
	return resp
}
