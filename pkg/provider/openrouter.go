package provider

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jdgilhuly/presto/pkg/parameter"
)

const (
	defaultOpenRouterURL   = "https://openrouter.ai/api/v1"
	defaultOpenRouterModel = "meta-llama/llama-3-8b-instruct"
)

// ParamStop is the OpenRouter stop sequence parameter.
const ParamStop = "stop"

var stopParam = parameter.MustNew(ParamStop, parameter.KindString,
	"Sequence at which generation stops",
	parameter.WithMaxLength(256))

// OpenRouterProvider implements Provider for the OpenRouter gateway.
type OpenRouterProvider struct {
	base
}

// NewOpenRouterProvider creates a new OpenRouter provider with the given API key.
func NewOpenRouterProvider(apiKey string, opts ...Option) (*OpenRouterProvider, error) {
	b, err := newBase(NameOpenRouter, apiKey, defaultOpenRouterURL, opts)
	if err != nil {
		return nil, err
	}
	return &OpenRouterProvider{base: b}, nil
}

// DefaultModel returns "meta-llama/llama-3-8b-instruct".
func (p *OpenRouterProvider) DefaultModel() string { return defaultOpenRouterModel }

type openRouterModels struct {
	Data []struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		Description   string `json:"description"`
		ContextLength int    `json:"context_length"`
		Pricing       *struct {
			Prompt     string `json:"prompt"`
			Completion string `json:"completion"`
		} `json:"pricing"`
	} `json:"data"`
}

// AvailableModels fetches the model catalog from GET /models.
func (p *OpenRouterProvider) AvailableModels(ctx context.Context) ([]Model, error) {
	var list openRouterModels
	if err := p.request(ctx, http.MethodGet, "/models", bearerHeader(p.apiKey), nil, &list); err != nil {
		return nil, err
	}

	models := make([]Model, 0, len(list.Data))
	for _, m := range list.Data {
		model := Model{
			ID:            m.ID,
			Name:          m.Name,
			Description:   m.Description,
			ContextLength: m.ContextLength,
		}
		if m.Pricing != nil {
			model.Pricing = &Pricing{
				Prompt:     perThousand(m.Pricing.Prompt),
				Completion: perThousand(m.Pricing.Completion),
			}
		}
		models = append(models, model)
	}
	return models, nil
}

// perThousand converts OpenRouter's per-token price string to USD per 1K
// tokens. Unparseable prices read as zero.
func perThousand(perToken string) float64 {
	f, err := strconv.ParseFloat(perToken, 64)
	if err != nil {
		return 0
	}
	return f * 1000
}

// AvailableParameters returns the text parameters plus stop.
func (p *OpenRouterProvider) AvailableParameters(string) parameter.Set {
	return TextParameters().With(stopParam)
}

// Generate sends a chat completion for the prompt in params.
func (p *OpenRouterProvider) Generate(ctx context.Context, model string, params parameter.Params) (*Response, error) {
	return generateText(ctx, p, model, params)
}

func (p *OpenRouterProvider) perform(ctx context.Context, model, prompt string, opts parameter.Params) (*Response, error) {
	return p.chatCompletion(ctx, bearerHeader(p.apiKey), newChatRequest(model, prompt, opts))
}
