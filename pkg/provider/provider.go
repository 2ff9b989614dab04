package provider

import (
	"context"

	"github.com/jdgilhuly/presto/pkg/parameter"
)

// Provider defines the interface for text-generation backends.
type Provider interface {
	// Name returns the provider identifier (e.g. "anthropic").
	Name() string

	// AvailableModels returns the models the provider can serve, in the
	// provider's order.
	AvailableModels(ctx context.Context) ([]Model, error)

	// AvailableParameters returns the parameters accepted for model. An empty
	// model selects the provider-wide set.
	AvailableParameters(model string) parameter.Set

	// DefaultModel returns the model used when the caller names none.
	DefaultModel() string

	// Generate validates model and params, sends the request and returns the
	// normalized response.
	Generate(ctx context.Context, model string, params parameter.Params) (*Response, error)
}

// Model describes a callable model. Only ID is guaranteed; the remaining
// fields are filled when the provider reports them.
type Model struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name,omitempty" yaml:"name,omitempty"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
	ContextLength int      `json:"context_length,omitempty" yaml:"context_length,omitempty"`
	Pricing       *Pricing `json:"pricing,omitempty" yaml:"pricing,omitempty"`
}

// Pricing holds USD prices per 1K tokens.
type Pricing struct {
	Prompt     float64 `json:"prompt" yaml:"prompt"`
	Completion float64 `json:"completion" yaml:"completion"`
}

// Response is the canonical generation result every provider produces.
type Response struct {
	Choices []Choice `json:"choices"`
	Usage   *Usage   `json:"usage,omitempty"`
}

// Choice is one generated alternative.
type Choice struct {
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason,omitempty"`
}

// Message is the generated text and the role that produced it.
type Message struct {
	Content string `json:"content"`
	Role    string `json:"role"`
}

// Usage reports token consumption for one request.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Text returns the content of the first choice, or "" when there is none.
func (r *Response) Text() string {
	if r == nil || len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

func hasModel(models []Model, id string) bool {
	for _, m := range models {
		if m.ID == id {
			return true
		}
	}
	return false
}
