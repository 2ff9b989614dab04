// Package client is the entry point for generating text through any
// supported provider.
//
// A Client binds one provider, chosen by identifier, to its API key and
// forwards calls to it. Model selection falls back to the provider's default
// when the caller names none.
package client

import (
	"context"

	"github.com/jdgilhuly/presto/pkg/parameter"
	"github.com/jdgilhuly/presto/pkg/provider"
)

// Option configures a Client.
type Option func(*options)

type options struct {
	registry     *provider.Registry
	providerOpts []provider.Option
}

// WithRegistry resolves provider names through r instead of
// provider.DefaultRegistry.
func WithRegistry(r *provider.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithProviderOptions forwards opts to the provider constructor.
func WithProviderOptions(opts ...provider.Option) Option {
	return func(o *options) { o.providerOpts = append(o.providerOpts, opts...) }
}

// Client generates text through a single provider.
type Client struct {
	provider provider.Provider
}

// New builds a Client for the provider registered as providerName. Unknown
// names fail with *provider.ProviderError and a blank key with
// *provider.ConfigurationError.
func New(providerName, apiKey string, opts ...Option) (*Client, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = provider.DefaultRegistry()
	}

	p, err := o.registry.New(providerName, apiKey, o.providerOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{provider: p}, nil
}

// NewWithProvider wraps an already constructed provider.
func NewWithProvider(p provider.Provider) *Client {
	return &Client{provider: p}
}

// AvailableProviders lists the identifiers New accepts by default.
func AvailableProviders() []string {
	return provider.DefaultRegistry().Names()
}

// Provider returns the underlying provider.
func (c *Client) Provider() provider.Provider { return c.provider }

// DefaultModel returns the provider's default model.
func (c *Client) DefaultModel() string { return c.provider.DefaultModel() }

// Generate runs a generation with params against model, or against the
// provider's default model when model is empty.
func (c *Client) Generate(ctx context.Context, model string, params parameter.Params) (*provider.Response, error) {
	return c.provider.Generate(ctx, c.model(model), params)
}

// GenerateText is Generate with prompt supplied as text_prompt. params may be
// nil and is not modified.
func (c *Client) GenerateText(ctx context.Context, prompt, model string, params parameter.Params) (*provider.Response, error) {
	p := params.Clone()
	p[provider.ParamTextPrompt] = parameter.String(prompt)
	return c.Generate(ctx, model, p)
}

// AvailableModels lists the provider's models.
func (c *Client) AvailableModels(ctx context.Context) ([]provider.Model, error) {
	return c.provider.AvailableModels(ctx)
}

// AvailableParameters lists the parameters accepted for model, or for the
// default model when model is empty.
func (c *Client) AvailableParameters(model string) parameter.Set {
	return c.provider.AvailableParameters(c.model(model))
}

func (c *Client) model(model string) string {
	if model == "" {
		return c.provider.DefaultModel()
	}
	return model
}
