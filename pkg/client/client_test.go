package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdgilhuly/presto/pkg/parameter"
	"github.com/jdgilhuly/presto/pkg/provider"
	"github.com/jdgilhuly/presto/pkg/providertest"
)

func TestNew_UnsupportedProvider(t *testing.T) {
	_, err := New("bogus", "key")
	var provErr *provider.ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, "Unsupported provider: bogus", err.Error())
}

func TestNew_MissingKey(t *testing.T) {
	for _, name := range AvailableProviders() {
		t.Run(name, func(t *testing.T) {
			_, err := New(name, "")
			var cfgErr *provider.ConfigurationError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}
}

func TestAvailableProviders(t *testing.T) {
	assert.Equal(t, []string{"openrouter", "openai", "anthropic"}, AvailableProviders())
}

func TestNew_BuiltInProviders(t *testing.T) {
	for _, name := range AvailableProviders() {
		t.Run(name, func(t *testing.T) {
			c, err := New(name, "key")
			require.NoError(t, err)
			assert.Equal(t, name, c.Provider().Name())
			assert.Equal(t, c.Provider().DefaultModel(), c.DefaultModel())
		})
	}
}

func TestGenerateText_DefaultModel(t *testing.T) {
	fake := providertest.New("fake", providertest.WithReplies(providertest.Text("hello")))
	c, err := New("fake", "key", WithRegistry(fake.Registry()))
	require.NoError(t, err)

	extra := parameter.Params{provider.ParamMaxTokens: parameter.Int(5)}
	resp, err := c.GenerateText(context.Background(), "hi", "", extra)
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Text())

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, providertest.DefaultModel, calls[0].Model)
	assert.Equal(t, parameter.Params{
		provider.ParamTextPrompt: parameter.String("hi"),
		provider.ParamMaxTokens:  parameter.Int(5),
	}, calls[0].Params)
	assert.NotContains(t, extra, provider.ParamTextPrompt, "caller params are not modified")
	assert.Equal(t, []string{"key"}, fake.Keys())
}

func TestGenerateText_NilParams(t *testing.T) {
	fake := providertest.New("fake", providertest.WithDefaultReply(providertest.Text("ok")))
	c := NewWithProvider(fake)

	_, err := c.GenerateText(context.Background(), "hi", providertest.DefaultModel, nil)
	require.NoError(t, err)
}

func TestGenerate_PropagatesErrors(t *testing.T) {
	fake := providertest.New("fake", providertest.WithDefaultReply(providertest.Text("ok")))
	c := NewWithProvider(fake)

	_, err := c.Generate(context.Background(), "missing", parameter.Params{provider.ParamTextPrompt: parameter.String("hi")})
	var modelErr *provider.InvalidModelError
	assert.True(t, errors.As(err, &modelErr))

	_, err = c.Generate(context.Background(), "", parameter.Params{"nope": parameter.Bool(true)})
	var paramErr *provider.InvalidParameterError
	require.True(t, errors.As(err, &paramErr))
	assert.Equal(t, "nope", paramErr.Name)
}

func TestAvailableParameters_DefaultModel(t *testing.T) {
	c := NewWithProvider(providertest.New("fake"))
	assert.Equal(t, c.AvailableParameters(providertest.DefaultModel).Names(), c.AvailableParameters("").Names())
}

func TestAvailableModels(t *testing.T) {
	c := NewWithProvider(providertest.New("fake", providertest.WithModels(provider.Model{ID: "a"}, provider.Model{ID: "b"})))

	models, err := c.AvailableModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []provider.Model{{ID: "a"}, {ID: "b"}}, models)
	assert.Equal(t, "a", c.DefaultModel())
}

func TestWithProviderOptions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		w.Write([]byte(`{"content":[{"type":"text","text":"Hello!"}],"stop_reason":"end_turn","usage":{"input_tokens":10,"output_tokens":20}}`))
	}))
	defer server.Close()

	c, err := New(provider.NameAnthropic, "test-key", WithProviderOptions(provider.WithBaseURL(server.URL)))
	require.NoError(t, err)

	resp, err := c.GenerateText(context.Background(), "Say hello", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello!", resp.Text())
	assert.Equal(t, 30, resp.Usage.TotalTokens)
}
