// Package providertest provides a fake provider.Provider for tests.
//
// A Provider validates requests exactly like the real providers (model
// availability, unknown parameters, values, required prompt) and then
// returns pre-configured replies in sequence, recording every call:
//
//	fake := providertest.New("fake",
//	    providertest.WithReplies(providertest.Text("hello")))
//	c, _ := client.New("fake", "key", client.WithRegistry(fake.Registry()))
//	resp, _ := c.GenerateText(ctx, "hi", "", nil)
//	fake.Calls() // one Call with the prompt
package providertest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jdgilhuly/presto/pkg/parameter"
	"github.com/jdgilhuly/presto/pkg/provider"
)

// DefaultModel is the only model a Provider serves unless WithModels is used.
const DefaultModel = "fake-model"

// Reply is one canned answer. Err takes precedence over Response.
type Reply struct {
	Response *provider.Response
	Err      error
	Delay    time.Duration
}

// Text returns a Reply with a single assistant choice holding content.
func Text(content string) Reply {
	return Reply{Response: &provider.Response{
		Choices: []provider.Choice{{
			Message:      provider.Message{Content: content, Role: "assistant"},
			FinishReason: "stop",
		}},
	}}
}

// Failure returns a Reply that fails with err.
func Failure(err error) Reply {
	return Reply{Err: err}
}

// Call captures a single Generate invocation for later inspection.
type Call struct {
	Model     string
	Params    parameter.Params
	Err       error
	Timestamp time.Time
}

// Option configures a Provider.
type Option func(*Provider)

// WithModels replaces the model catalog. The first model becomes the default.
func WithModels(models ...provider.Model) Option {
	return func(p *Provider) { p.models = models }
}

// WithParameters replaces the parameter set (provider.TextParameters by
// default).
func WithParameters(set parameter.Set) Option {
	return func(p *Provider) { p.params = set }
}

// WithReplies sets the sequential replies.
func WithReplies(replies ...Reply) Option {
	return func(p *Provider) { p.replies = replies }
}

// WithDefaultReply sets the reply used once the sequence is exhausted.
func WithDefaultReply(r Reply) Option {
	return func(p *Provider) { p.fallback = &r }
}

// WithModelsError makes AvailableModels fail with err.
func WithModelsError(err error) Option {
	return func(p *Provider) { p.modelsErr = err }
}

// Provider is a fake provider.Provider. All methods are safe for concurrent
// use.
type Provider struct {
	name      string
	models    []provider.Model
	modelsErr error
	params    parameter.Set

	mu       sync.Mutex
	replies  []Reply
	fallback *Reply
	idx      int
	calls    []Call
	keys     []string
}

var _ provider.Provider = (*Provider)(nil)

// New creates a fake provider registered under name.
func New(name string, opts ...Option) *Provider {
	p := &Provider{
		name:   name,
		models: []provider.Model{{ID: DefaultModel, Name: "Fake Model"}},
		params: provider.TextParameters(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the name given to New.
func (p *Provider) Name() string { return p.name }

// DefaultModel returns the first catalog model, or "" for an empty catalog.
func (p *Provider) DefaultModel() string {
	if len(p.models) == 0 {
		return ""
	}
	return p.models[0].ID
}

// AvailableModels returns a copy of the catalog.
func (p *Provider) AvailableModels(context.Context) ([]provider.Model, error) {
	if p.modelsErr != nil {
		return nil, p.modelsErr
	}
	out := make([]provider.Model, len(p.models))
	copy(out, p.models)
	return out, nil
}

// AvailableParameters returns a copy of the configured set.
func (p *Provider) AvailableParameters(string) parameter.Set {
	return p.params.Clone()
}

// Generate validates the request and returns the next reply. Once all
// replies are consumed, the default reply is used; without one an error is
// returned.
func (p *Provider) Generate(ctx context.Context, model string, params parameter.Params) (*provider.Response, error) {
	call := Call{Model: model, Params: params.Clone(), Timestamp: time.Now()}

	if _, err := provider.CheckRequest(ctx, p, model, params); err != nil {
		call.Err = err
		p.record(call)
		return nil, err
	}

	p.mu.Lock()
	var reply *Reply
	if p.idx < len(p.replies) {
		reply = &p.replies[p.idx]
		p.idx++
	} else if p.fallback != nil {
		reply = p.fallback
	}
	consumed, total := p.idx, len(p.replies)
	p.mu.Unlock()

	if reply == nil {
		call.Err = fmt.Errorf("providertest: no more replies (consumed %d/%d)", consumed, total)
		p.record(call)
		return nil, call.Err
	}

	if reply.Delay > 0 {
		select {
		case <-ctx.Done():
			call.Err = ctx.Err()
			p.record(call)
			return nil, call.Err
		case <-time.After(reply.Delay):
		}
	}

	call.Err = reply.Err
	p.record(call)
	if reply.Err != nil {
		return nil, reply.Err
	}
	if reply.Response == nil {
		return &provider.Response{}, nil
	}
	resp := *reply.Response
	return &resp, nil
}

func (p *Provider) record(c Call) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, c)
}

// Calls returns a copy of all recorded calls.
func (p *Provider) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Call, len(p.calls))
	copy(out, p.calls)
	return out
}

// Keys returns the API keys the provider was built with through Factory.
func (p *Provider) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Factory returns a provider.Factory that hands out p. A blank key fails
// with a *provider.ConfigurationError like the real constructors.
func (p *Provider) Factory() provider.Factory {
	return func(apiKey string, _ ...provider.Option) (provider.Provider, error) {
		if strings.TrimSpace(apiKey) == "" {
			return nil, &provider.ConfigurationError{Provider: p.name, Message: "API key is required"}
		}
		p.mu.Lock()
		p.keys = append(p.keys, apiKey)
		p.mu.Unlock()
		return p, nil
	}
}

// Registry returns a registry holding only p.
func (p *Provider) Registry() *provider.Registry {
	r := provider.NewRegistry()
	r.Register(p.name, p.Factory())
	return r
}
