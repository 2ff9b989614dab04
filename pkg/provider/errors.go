package provider

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jdgilhuly/presto/pkg/parameter"
)

// ConfigurationError reports a provider that cannot be built from the given
// settings, such as a missing API key.
type ConfigurationError struct {
	Provider string
	Message  string
}

func (e *ConfigurationError) Error() string {
	if e.Provider == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// ProviderError reports an unrecognized provider identifier.
type ProviderError struct {
	Name string
}

func (e *ProviderError) Error() string {
	return "Unsupported provider: " + e.Name
}

// InvalidModelError reports a model that is not in the provider's catalog.
type InvalidModelError struct {
	Provider string
	Model    string
}

func (e *InvalidModelError) Error() string {
	return fmt.Sprintf("Model '%s' is not available. Use 'presto models' to see available models.", e.Model)
}

// InvalidParameterError reports an unknown parameter or a rejected value. Name
// holds the offending parameter.
type InvalidParameterError = parameter.Error

// APIError reports a failed call to the provider's API: a transport failure,
// a non-2xx status or a success body that could not be decoded.
type APIError struct {
	Provider string
	// StatusCode is zero when no response was received.
	StatusCode int
	// Message is the upstream error text when the body carried one.
	Message string
	Raw     []byte
	Cause   error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *APIError) Unwrap() error { return e.Cause }

// errorMessage extracts a human-readable message from an error body. It
// understands {"error":"msg"}, {"error":{"message":"msg"}} and
// {"message":"msg"}, and otherwise falls back to the raw body.
func errorMessage(status int, raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return http.StatusText(status)
	}

	var body any
	if err := json.Unmarshal(trimmed, &body); err != nil {
		return string(trimmed)
	}
	obj, ok := body.(map[string]any)
	if !ok {
		return string(trimmed)
	}

	switch e := obj["error"].(type) {
	case string:
		if e != "" {
			return e
		}
	case map[string]any:
		if m, ok := e["message"].(string); ok && m != "" {
			return m
		}
	}
	if m, ok := obj["message"].(string); ok && m != "" {
		return m
	}
	return string(trimmed)
}
