package provider

import (
	"context"

	"github.com/jdgilhuly/presto/pkg/parameter"
)

// Parameter names shared by every text provider.
const (
	ParamTextPrompt  = "text_prompt"
	ParamTemperature = "temperature"
	ParamTopP        = "top_p"
	ParamMaxTokens   = "max_tokens"
)

var (
	textPromptParam = parameter.MustNew(ParamTextPrompt, parameter.KindString,
		"The text prompt to generate from",
		parameter.WithLength(1, 32768))

	temperatureParam = parameter.MustNew(ParamTemperature, parameter.KindFloat,
		"Controls randomness in the output (higher is more random)",
		parameter.WithRange(0, 2), parameter.WithDefault(parameter.Float(0.7)))

	topPParam = parameter.MustNew(ParamTopP, parameter.KindFloat,
		"Nucleus sampling: only tokens within the top_p probability mass are considered",
		parameter.WithRange(0, 1), parameter.WithDefault(parameter.Float(1.0)))

	maxTokensParam = parameter.MustNew(ParamMaxTokens, parameter.KindInteger,
		"Maximum number of tokens to generate",
		parameter.WithRange(1, 4096), parameter.WithDefault(parameter.Int(1000)))
)

// TextParameters returns the parameters every text provider accepts. The
// returned set is fresh; callers may extend it freely.
func TextParameters() parameter.Set {
	return parameter.NewSet(textPromptParam, temperatureParam, topPParam, maxTokensParam)
}

// Catalog is the read side of a provider used during request validation.
type Catalog interface {
	Name() string
	AvailableModels(ctx context.Context) ([]Model, error)
	AvailableParameters(model string) parameter.Set
}

// textGenerator sends a validated text request. opts never carries the
// prompt.
type textGenerator interface {
	Catalog
	perform(ctx context.Context, model, prompt string, opts parameter.Params) (*Response, error)
}

// CheckRequest runs the checks every text provider applies before sending a
// request, in order: model availability, unknown parameters, value
// validation, required prompt. It returns the prompt on success.
func CheckRequest(ctx context.Context, c Catalog, model string, params parameter.Params) (string, error) {
	models, err := c.AvailableModels(ctx)
	if err != nil {
		return "", err
	}
	if !hasModel(models, model) {
		return "", &InvalidModelError{Provider: c.Name(), Model: model}
	}

	set := c.AvailableParameters(model)
	if unknown := set.Unknown(params); len(unknown) > 0 {
		return "", &InvalidParameterError{
			Name:    unknown[0],
			Message: "Unknown parameter for " + c.Name() + ": " + unknown[0],
		}
	}
	if err := set.Validate(params); err != nil {
		return "", err
	}

	prompt, ok := params[ParamTextPrompt].AsString()
	if !ok {
		return "", &InvalidParameterError{Name: ParamTextPrompt, Message: ParamTextPrompt + " is required"}
	}
	return prompt, nil
}

// generateText validates the request and hands the prompt and the remaining
// supplied options to g. No request is sent unless every check passes.
func generateText(ctx context.Context, g textGenerator, model string, params parameter.Params) (*Response, error) {
	prompt, err := CheckRequest(ctx, g, model, params)
	if err != nil {
		return nil, err
	}
	return g.perform(ctx, model, prompt, params.Without(ParamTextPrompt))
}

func floatParam(p parameter.Params, name string) *float64 {
	if f, ok := p[name].AsFloat(); ok {
		return &f
	}
	return nil
}

func intParam(p parameter.Params, name string) *int64 {
	if i, ok := p[name].AsInt(); ok {
		return &i
	}
	return nil
}

func stringParam(p parameter.Params, name string) *string {
	if s, ok := p[name].AsString(); ok {
		return &s
	}
	return nil
}
