package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mmcdole/dex/internal/domain"
)

// Client implements domain.CatalogRepository over a domain.Transport.
// Every operation is one transport call followed by one mapping pass.
type Client struct {
	transport     domain.Transport
	baseURL       string
	spriteBaseURL string
	logger        *slog.Logger
}

// NewClient creates a new API client. Empty URLs fall back to the public defaults.
func NewClient(transport domain.Transport, baseURL, spriteBaseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if spriteBaseURL == "" {
		spriteBaseURL = DefaultSpriteBaseURL
	}
	return &Client{
		transport:     transport,
		baseURL:       baseURL,
		spriteBaseURL: spriteBaseURL,
		logger:        logger,
	}
}

// SpriteBaseURL returns the base used to build catalog image references
func (c *Client) SpriteBaseURL() string {
	return c.spriteBaseURL
}

// FetchCatalog returns the full catalog sorted ascending by ID
func (c *Client) FetchCatalog(ctx context.Context) ([]domain.CatalogEntry, error) {
	reqURL, err := CatalogURL(c.baseURL)
	if err != nil {
		return nil, err
	}

	body, err := c.fetch(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var resp ListResponse
	if err := c.decode(reqURL, body, &resp); err != nil {
		return nil, err
	}

	entries := MapCatalog(resp.Results, c.spriteBaseURL)
	c.logger.Debug("catalog fetched", "results", len(resp.Results), "entries", len(entries))
	return entries, nil
}

// FetchDetail returns the detail record for id
func (c *Client) FetchDetail(ctx context.Context, id int) (*domain.Detail, error) {
	reqURL, err := DetailURL(c.baseURL, id)
	if err != nil {
		return nil, err
	}

	body, err := c.fetch(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var resp DetailResponse
	if err := c.decode(reqURL, body, &resp); err != nil {
		return nil, err
	}

	detail := MapDetail(resp)
	return &detail, nil
}

// FetchEncounters follows the encounters URL of a detail record.
// rawURL must be absolute; it is never resolved against the base URL.
func (c *Client) FetchEncounters(ctx context.Context, rawURL string) ([]domain.Encounter, error) {
	u, err := ParseAbsoluteURL(rawURL)
	if err != nil {
		return nil, err
	}
	reqURL := u.String()

	body, err := c.fetch(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var resp []Encounter
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, c.decodeFailed(reqURL, body, err)
	}
	if err := validation.Validate(resp, validation.NotNil); err != nil {
		return nil, c.decodeFailed(reqURL, body, err)
	}

	return MapEncounters(resp), nil
}

// fetch runs the transport and makes sure anything it returns is classified.
// Cancellation passes through untouched.
func (c *Client) fetch(ctx context.Context, reqURL string) ([]byte, error) {
	body, err := c.transport.Fetch(ctx, reqURL)
	if err == nil {
		return body, nil
	}
	if domain.IsCanceled(err) {
		return nil, err
	}
	if domain.Classify(err) == domain.ErrUnknown {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	return nil, err
}

// decode unmarshals body into dst and validates it
func (c *Client) decode(reqURL string, body []byte, dst validation.Validatable) error {
	if err := json.Unmarshal(body, dst); err != nil {
		return c.decodeFailed(reqURL, body, err)
	}
	if err := dst.Validate(); err != nil {
		return c.decodeFailed(reqURL, body, err)
	}
	return nil
}

func (c *Client) decodeFailed(reqURL string, body []byte, err error) error {
	c.logger.Error("decode failed", "url", reqURL, "error", err, "bodyLen", len(body))
	return fmt.Errorf("%w: %v", domain.ErrDecoding, err)
}
