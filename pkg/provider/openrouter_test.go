package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdgilhuly/presto/pkg/parameter"
)

const openRouterModelsBody = `{"data":[
	{
		"id": "meta-llama/llama-3-8b-instruct",
		"name": "Meta: Llama 3 8B Instruct",
		"description": "Meta's 8B instruct model",
		"context_length": 8192,
		"pricing": {"prompt": "0.00000006", "completion": "0.00000006"}
	},
	{"id": "openai/gpt-4o", "name": "OpenAI: GPT-4o", "pricing": {"prompt": "n/a", "completion": "0.00001"}},
	{"id": "mistralai/mistral-7b-instruct"}
]}`

func newOpenRouterServer(t *testing.T, chat http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /models", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(openRouterModelsBody))
	})
	if chat != nil {
		mux.HandleFunc("POST /chat/completions", chat)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestOpenRouter(t *testing.T, url string) *OpenRouterProvider {
	t.Helper()
	p, err := NewOpenRouterProvider("test-key", WithBaseURL(url+"/"))
	require.NoError(t, err)
	return p
}

func TestOpenRouterGenerate_TextResponse(t *testing.T) {
	server := newOpenRouterServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "meta-llama/llama-3-8b-instruct", body["model"])
		assert.EqualValues(t, 100, body["max_tokens"])
		assert.Equal(t, "END", body["stop"])
		assert.NotContains(t, body, "temperature")

		w.Write([]byte(`{
			"choices": [{"message":{"role":"assistant","content":"Once upon a time"},"finish_reason":"length"}],
			"usage": {"prompt_tokens":5,"completion_tokens":100,"total_tokens":105}
		}`))
	})

	got, err := newTestOpenRouter(t, server.URL).Generate(context.Background(), defaultOpenRouterModel, parameter.Params{
		ParamTextPrompt: parameter.String("Tell me a story"),
		ParamMaxTokens:  parameter.Int(100),
		ParamStop:       parameter.String("END"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Once upon a time", got.Text())
	assert.Equal(t, "length", got.Choices[0].FinishReason)
	assert.Equal(t, 105, got.Usage.TotalTokens)
}

func TestOpenRouterGenerate_TemperatureOutOfRange(t *testing.T) {
	server := newOpenRouterServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("completion must not be requested")
	})

	_, err := newTestOpenRouter(t, server.URL).Generate(context.Background(), defaultOpenRouterModel, parameter.Params{
		ParamTextPrompt:  parameter.String("hi"),
		ParamTemperature: parameter.Float(3.0),
	})
	var paramErr *InvalidParameterError
	require.True(t, errors.As(err, &paramErr))
	assert.Equal(t, ParamTemperature, paramErr.Name)
	assert.Contains(t, paramErr.Error(), "2.0")
}

func TestOpenRouterGenerate_ValidationErrors(t *testing.T) {
	server := newOpenRouterServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("completion must not be requested")
	})
	p := newTestOpenRouter(t, server.URL)

	tests := []struct {
		name     string
		model    string
		params   parameter.Params
		wantName string
		wantErr  string
	}{
		{
			name:     "max_tokens must be an integer",
			model:    defaultOpenRouterModel,
			params:   parameter.Params{ParamTextPrompt: parameter.String("hi"), ParamMaxTokens: parameter.Float(10)},
			wantName: ParamMaxTokens,
			wantErr:  "max_tokens must be an integer",
		},
		{
			name:     "max_tokens above range",
			model:    defaultOpenRouterModel,
			params:   parameter.Params{ParamTextPrompt: parameter.String("hi"), ParamMaxTokens: parameter.Int(5000)},
			wantName: ParamMaxTokens,
			wantErr:  "max_tokens must be less than or equal to 4096",
		},
		{
			name:     "stop too long",
			model:    defaultOpenRouterModel,
			params:   parameter.Params{ParamTextPrompt: parameter.String("hi"), ParamStop: parameter.String(strings.Repeat("x", 257))},
			wantName: ParamStop,
			wantErr:  "stop must be no more than 256 characters",
		},
		{
			name:     "unknown parameter",
			model:    defaultOpenRouterModel,
			params:   parameter.Params{ParamTextPrompt: parameter.String("hi"), ParamPresencePenalty: parameter.Float(0)},
			wantName: ParamPresencePenalty,
			wantErr:  "Unknown parameter for openrouter: presence_penalty",
		},
		{
			name:     "prompt must be a string",
			model:    defaultOpenRouterModel,
			params:   parameter.Params{ParamTextPrompt: parameter.Int(1)},
			wantName: ParamTextPrompt,
			wantErr:  "text_prompt must be a string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Generate(context.Background(), tt.model, tt.params)
			var paramErr *InvalidParameterError
			require.True(t, errors.As(err, &paramErr))
			assert.Equal(t, tt.wantName, paramErr.Name)
			assert.Equal(t, tt.wantErr, paramErr.Error())
		})
	}
}

func TestOpenRouterGenerate_UnknownModel(t *testing.T) {
	server := newOpenRouterServer(t, nil)

	_, err := newTestOpenRouter(t, server.URL).Generate(context.Background(), "nope/model",
		parameter.Params{ParamTextPrompt: parameter.String("hi")})
	var modelErr *InvalidModelError
	require.True(t, errors.As(err, &modelErr))
	assert.Equal(t, "Model 'nope/model' is not available. Use 'presto models' to see available models.", err.Error())
}

func TestOpenRouterGenerate_ModelListFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"No auth credentials found","code":401}}`))
	}))
	defer server.Close()

	_, err := newTestOpenRouter(t, server.URL).Generate(context.Background(), defaultOpenRouterModel,
		parameter.Params{ParamTextPrompt: parameter.String("hi")})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "No auth credentials found", apiErr.Message)
}

func TestOpenRouterAvailableModels(t *testing.T) {
	server := newOpenRouterServer(t, nil)

	models, err := newTestOpenRouter(t, server.URL).AvailableModels(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 3)

	llama := models[0]
	assert.Equal(t, "meta-llama/llama-3-8b-instruct", llama.ID)
	assert.Equal(t, "Meta: Llama 3 8B Instruct", llama.Name)
	assert.Equal(t, "Meta's 8B instruct model", llama.Description)
	assert.Equal(t, 8192, llama.ContextLength)
	require.NotNil(t, llama.Pricing)
	assert.InDelta(t, 0.00006, llama.Pricing.Prompt, 1e-12)

	require.NotNil(t, models[1].Pricing)
	assert.Zero(t, models[1].Pricing.Prompt, "unparseable price reads as zero")
	assert.InDelta(t, 0.01, models[1].Pricing.Completion, 1e-12)

	assert.Equal(t, Model{ID: "mistralai/mistral-7b-instruct"}, models[2])
}

func TestOpenRouterAvailableParameters(t *testing.T) {
	p := newTestOpenRouter(t, "http://unused.invalid")

	set := p.AvailableParameters(defaultOpenRouterModel)
	assert.Equal(t, []string{ParamMaxTokens, ParamStop, ParamTemperature, ParamTextPrompt, ParamTopP}, set.Names())

	_, hasDefault := set[ParamStop].Default()
	assert.False(t, hasDefault)

	set[ParamStop] = nil
	_, ok := p.AvailableParameters("")[ParamStop]
	assert.True(t, ok, "each call returns a fresh set")
	assert.NotNil(t, p.AvailableParameters("")[ParamStop])
}

func TestOpenRouterProviderName(t *testing.T) {
	p := newTestOpenRouter(t, "http://unused.invalid")
	assert.Equal(t, "openrouter", p.Name())
	assert.Equal(t, "meta-llama/llama-3-8b-instruct", p.DefaultModel())
}
