package provider

import "slices"

// Provider identifiers known to DefaultRegistry.
const (
	NameOpenRouter = "openrouter"
	NameOpenAI     = "openai"
	NameAnthropic  = "anthropic"
)

// Factory builds a provider from an API key.
type Factory func(apiKey string, opts ...Option) (Provider, error)

// Registry maps provider identifiers to factories. Names keep registration
// order.
type Registry struct {
	names     []string
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a registry holding openrouter, openai and anthropic.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NameOpenRouter, func(apiKey string, opts ...Option) (Provider, error) {
		p, err := NewOpenRouterProvider(apiKey, opts...)
		if err != nil {
			return nil, err
		}
		return p, nil
	})
	r.Register(NameOpenAI, func(apiKey string, opts ...Option) (Provider, error) {
		p, err := NewOpenAIProvider(apiKey, opts...)
		if err != nil {
			return nil, err
		}
		return p, nil
	})
	r.Register(NameAnthropic, func(apiKey string, opts ...Option) (Provider, error) {
		p, err := NewAnthropicProvider(apiKey, opts...)
		if err != nil {
			return nil, err
		}
		return p, nil
	})
	return r
}

// Register adds or replaces the factory for name.
func (r *Registry) Register(name string, f Factory) {
	if _, ok := r.factories[name]; !ok {
		r.names = append(r.names, name)
	}
	r.factories[name] = f
}

// Names returns the registered identifiers in registration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.factories[name]
	return ok
}

// New builds the provider registered under name. Unknown names yield a
// *ProviderError.
func (r *Registry) New(name, apiKey string, opts ...Option) (Provider, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, &ProviderError{Name: name}
	}
	return f(apiKey, opts...)
}
