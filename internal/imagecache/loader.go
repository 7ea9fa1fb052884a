package imagecache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sourcegraph/conc"

	"github.com/mmcdole/dex/internal/domain"
)

// Loader implements domain.ImageLoader: cache first, then one transport fetch,
// decode, and a background cache write. It is safe for concurrent use.
type Loader struct {
	transport domain.Transport
	cache     *Cache
	writes    conc.WaitGroup
	logger    *slog.Logger
}

// NewLoader creates a loader. A nil cache gets a fresh one.
func NewLoader(transport domain.Transport, cache *Cache, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if cache == nil {
		cache = NewCache()
	}
	return &Loader{
		transport: transport,
		cache:     cache,
		logger:    logger,
	}
}

// Cache returns the loader's backing cache
func (l *Loader) Cache() *Cache {
	return l.cache
}

// Load returns the image at rawURL.
//
// A cached value is returned without touching the transport. Otherwise the
// bytes are fetched and decoded; bytes that do not decode are never cached.
// Any transport failure other than cancellation is reported as ErrNetwork.
// If ctx is done, before the lookup or by the time the fetch returns, no
// image is returned and nothing is written to the cache.
func (l *Loader) Load(ctx context.Context, rawURL string) (*domain.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if img, ok := l.cache.Get(rawURL); ok {
		l.logger.Debug("image cache hit", "url", rawURL)
		return img, nil
	}

	l.logger.Debug("image cache miss", "url", rawURL)

	data, err := l.transport.Fetch(ctx, rawURL)
	if err != nil {
		if domain.IsCanceled(err) {
			return nil, err
		}
		if !errors.Is(err, domain.ErrNetwork) {
			err = fmt.Errorf("%w: %v", domain.ErrNetwork, err)
		}
		l.logger.Debug("image fetch failed", "url", rawURL, "error", err)
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		l.logger.Debug("image load abandoned", "url", rawURL)
		return nil, err
	}

	img, err := Decode(rawURL, data)
	if err != nil {
		l.logger.Warn("image decode failed", "url", rawURL, "bytes", len(data), "error", err)
		return nil, err
	}

	l.writes.Go(func() {
		l.cache.Put(rawURL, img)
	})

	return img, nil
}

// Wait blocks until every background cache write has completed
func (l *Loader) Wait() {
	l.writes.Wait()
}
