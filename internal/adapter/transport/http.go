package transport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/dex/internal/domain"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "dex/1.0"
)

// HTTP implements domain.Transport over net/http
type HTTP struct {
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

// Option configures an HTTP transport
type Option func(*HTTP)

// WithTimeout sets the per-request timeout of the underlying client
func WithTimeout(d time.Duration) Option {
	return func(t *HTTP) {
		if d > 0 {
			t.httpClient.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(t *HTTP) {
		if ua != "" {
			t.userAgent = ua
		}
	}
}

// WithHTTPClient replaces the underlying client (tests inject httptest clients)
func WithHTTPClient(c *http.Client) Option {
	return func(t *HTTP) {
		if c != nil {
			t.httpClient = c
		}
	}
}

// NewHTTP creates a new HTTP transport
func NewHTTP(logger *slog.Logger, opts ...Option) *HTTP {
	if logger == nil {
		logger = slog.Default()
	}
	t := &HTTP{
		httpClient: &http.Client{Timeout: defaultTimeout},
		userAgent:  defaultUserAgent,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Fetch performs a GET and returns the full response body.
// Cancellation of ctx is reported as ctx.Err(), never as a network error.
func (t *HTTP) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidURL, err)
	}

	req.Header.Set("Accept", "*/*")
	req.Header.Set("User-Agent", t.userAgent)

	t.logger.Debug("transport request", "url", rawURL)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		t.logger.Error("transport request failed", "url", rawURL, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		t.logger.Warn("transport unexpected status", "url", rawURL, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: unexpected status code %d", domain.ErrNetwork, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrNetwork, err)
	}

	return body, nil
}
