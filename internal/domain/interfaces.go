package domain

import "context"

// Transport performs a single cancellable byte fetch. No retry, no caching.
// Exactly one of (bytes, nil), (nil, ErrNetwork-wrapped error) or
// (nil, ctx.Err()) is returned per call.
type Transport interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// CatalogRepository: network-backed queries, one transport call and one
// mapping pass per operation. Failures are wrapped ErrInvalidURL,
// ErrNetwork or ErrDecoding.
type CatalogRepository interface {
	// FetchCatalog returns the full catalog sorted ascending by ID
	FetchCatalog(ctx context.Context) ([]CatalogEntry, error)

	// FetchDetail returns the detail record for one entry
	FetchDetail(ctx context.Context, id int) (*Detail, error)

	// FetchEncounters follows a URL taken from a Detail record
	FetchEncounters(ctx context.Context, rawURL string) ([]Encounter, error)
}

// ImageLoader returns decoded images, cache-first
type ImageLoader interface {
	Load(ctx context.Context, rawURL string) (*Image, error)
}
