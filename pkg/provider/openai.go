package provider

import (
	"context"
	"net/http"

	"github.com/jdgilhuly/presto/pkg/parameter"
)

const (
	defaultOpenAIURL   = "https://api.openai.com/v1"
	defaultOpenAIModel = "gpt-3.5-turbo"
)

// OpenAI penalty parameters.
const (
	ParamPresencePenalty  = "presence_penalty"
	ParamFrequencyPenalty = "frequency_penalty"
)

var (
	presencePenaltyParam = parameter.MustNew(ParamPresencePenalty, parameter.KindFloat,
		"Penalizes tokens that already appear, encouraging new topics",
		parameter.WithRange(-2, 2), parameter.WithDefault(parameter.Float(0)))

	frequencyPenaltyParam = parameter.MustNew(ParamFrequencyPenalty, parameter.KindFloat,
		"Penalizes tokens by how often they appear, reducing repetition",
		parameter.WithRange(-2, 2), parameter.WithDefault(parameter.Float(0)))
)

// OpenAIProvider implements Provider for the OpenAI Chat Completions API.
type OpenAIProvider struct {
	base
}

// NewOpenAIProvider creates a new OpenAI provider with the given API key.
func NewOpenAIProvider(apiKey string, opts ...Option) (*OpenAIProvider, error) {
	b, err := newBase(NameOpenAI, apiKey, defaultOpenAIURL, opts)
	if err != nil {
		return nil, err
	}
	return &OpenAIProvider{base: b}, nil
}

// DefaultModel returns "gpt-3.5-turbo".
func (p *OpenAIProvider) DefaultModel() string { return defaultOpenAIModel }

type openaiModels struct {
	Data []struct {
		ID            string `json:"id"`
		ContextWindow int    `json:"context_window"`
	} `json:"data"`
}

// AvailableModels fetches GET /models. OpenAI reports neither display names
// nor prices, so the ID doubles as the name and pricing comes from the
// built-in table.
func (p *OpenAIProvider) AvailableModels(ctx context.Context) ([]Model, error) {
	var list openaiModels
	if err := p.request(ctx, http.MethodGet, "/models", bearerHeader(p.apiKey), nil, &list); err != nil {
		return nil, err
	}

	models := make([]Model, 0, len(list.Data))
	for _, m := range list.Data {
		model := Model{ID: m.ID, Name: m.ID, ContextLength: m.ContextWindow}
		if pr, ok := PricingFor(m.ID); ok {
			model.Pricing = pr
		}
		models = append(models, model)
	}
	return models, nil
}

// AvailableParameters returns the text parameters plus the two penalties.
func (p *OpenAIProvider) AvailableParameters(string) parameter.Set {
	return TextParameters().With(presencePenaltyParam, frequencyPenaltyParam)
}

// Generate sends a chat completion for the prompt in params.
func (p *OpenAIProvider) Generate(ctx context.Context, model string, params parameter.Params) (*Response, error) {
	return generateText(ctx, p, model, params)
}

func (p *OpenAIProvider) perform(ctx context.Context, model, prompt string, opts parameter.Params) (*Response, error) {
	return p.chatCompletion(ctx, bearerHeader(p.apiKey), newChatRequest(model, prompt, opts))
}
