// Package transport issues JSON requests over HTTP on behalf of providers.
//
// A Client sends exactly one request per call and hands back the status code
// and raw body of whatever the server answered. Interpreting non-2xx
// responses is left to the caller.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "presto/1"
	requestIDHeader  = "X-Request-Id"
)

// Doer is the request capability providers depend on.
type Doer interface {
	Do(ctx context.Context, method, url string, header http.Header, body any) (int, []byte, error)
}

var _ Doer = (*Client)(nil)

// Client is a JSON-over-HTTP Doer.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	Logger     *slog.Logger
}

// New returns a Client using httpClient, or a client with a 60 second
// timeout when httpClient is nil. A nil logger discards output.
func New(httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		HTTPClient: httpClient,
		UserAgent:  defaultUserAgent,
		Logger:     logger,
	}
}

// Do sends one request. A non-nil body is encoded as JSON. The returned error
// covers only request construction and transport failures; any HTTP response,
// whatever its status, is returned as (status, body, nil).
func (c *Client) Do(ctx context.Context, method, url string, header http.Header, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if req.Header.Get(requestIDHeader) == "" {
		req.Header.Set(requestIDHeader, uuid.NewString())
	}

	start := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		c.logger().Debug("http request failed",
			"method", method, "url", url, "request_id", req.Header.Get(requestIDHeader), "err", err)
		return 0, nil, fmt.Errorf("sending HTTP request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading response body: %w", err)
	}

	c.logger().Debug("http request",
		"method", method,
		"url", url,
		"status", resp.StatusCode,
		"request_id", req.Header.Get(requestIDHeader),
		"duration", time.Since(start),
	)
	return resp.StatusCode, raw, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}

func (c *Client) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}
