package provider

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jdgilhuly/presto/pkg/transport"
)

// Option configures a provider.
type Option func(*options)

type options struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	doer       transport.Doer
}

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithBaseURL overrides the provider's API base URL.
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithTransport replaces the request capability entirely. It takes
// precedence over WithHTTPClient and WithLogger.
func WithTransport(d transport.Doer) Option {
	return func(o *options) { o.doer = d }
}

// base holds the state shared by all providers: the credential and the way
// requests reach the API.
type base struct {
	name    string
	apiKey  string
	baseURL string
	doer    transport.Doer
}

func newBase(name, apiKey, defaultURL string, opts []Option) (base, error) {
	if strings.TrimSpace(apiKey) == "" {
		return base{}, &ConfigurationError{Provider: name, Message: "API key is required"}
	}

	o := options{baseURL: defaultURL}
	for _, opt := range opts {
		opt(&o)
	}
	if o.baseURL == "" {
		o.baseURL = defaultURL
	}
	doer := o.doer
	if doer == nil {
		doer = transport.New(o.httpClient, o.logger)
	}

	return base{
		name:    name,
		apiKey:  apiKey,
		baseURL: strings.TrimRight(o.baseURL, "/"),
		doer:    doer,
	}, nil
}

// Name returns the provider identifier.
func (b *base) Name() string { return b.name }

// request sends one call to path and decodes a 2xx body into dest. Every
// failure is reported as an *APIError.
func (b *base) request(ctx context.Context, method, path string, header http.Header, body, dest any) error {
	raw, err := b.send(ctx, method, path, header, body)
	if err != nil {
		return err
	}
	if dest == nil {
		return nil
	}
	return b.decode(raw, dest)
}

// send performs the call and returns the body of a 2xx response.
func (b *base) send(ctx context.Context, method, path string, header http.Header, body any) ([]byte, error) {
	status, raw, err := b.doer.Do(ctx, method, b.baseURL+path, header, body)
	if err != nil {
		return nil, &APIError{Provider: b.name, StatusCode: status, Message: "API request failed: " + err.Error(), Cause: err}
	}
	if status < 200 || status >= 300 {
		return nil, &APIError{Provider: b.name, StatusCode: status, Message: errorMessage(status, raw), Raw: raw}
	}
	return raw, nil
}

func (b *base) decode(raw []byte, dest any) error {
	if err := json.Unmarshal(raw, dest); err != nil {
		return &APIError{
			Provider:   b.name,
			StatusCode: http.StatusOK,
			Message:    "Invalid success response format: " + err.Error(),
			Raw:        raw,
			Cause:      err,
		}
	}
	return nil
}

func bearerHeader(apiKey string) http.Header {
	return http.Header{"Authorization": {"Bearer " + apiKey}}
}
