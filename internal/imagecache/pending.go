package imagecache

import (
	"context"
	"sync"

	"github.com/mmcdole/dex/internal/domain"
)

// AsyncLoader is a domain.ImageLoader that can also start loads in the
// background
type AsyncLoader interface {
	domain.ImageLoader
	Begin(ctx context.Context, rawURL string) *Pending
}

// Pending is an in-flight image load started with Begin
type Pending struct {
	URL string

	done   chan struct{}
	cancel context.CancelFunc
	once   sync.Once

	mu       sync.Mutex
	canceled bool
	img      *domain.Image
	err      error
}

// Begin starts loading rawURL in the background. The returned handle must be
// either waited on or cancelled.
func Begin(ctx context.Context, loader domain.ImageLoader, rawURL string) *Pending {
	ctx, cancel := context.WithCancel(ctx)
	p := &Pending{
		URL:    rawURL,
		done:   make(chan struct{}),
		cancel: cancel,
	}

	go func() {
		defer close(p.done)
		defer cancel()

		img, err := loader.Load(ctx, rawURL)

		p.mu.Lock()
		defer p.mu.Unlock()
		if p.canceled {
			return
		}
		p.img, p.err = img, err
	}()

	return p
}

// Begin starts an asynchronous Load on this loader
func (l *Loader) Begin(ctx context.Context, rawURL string) *Pending {
	return Begin(ctx, l, rawURL)
}

// Done is closed when the underlying load has returned
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Cancel abandons the load and tears down its fetch. Safe to call more than
// once and after completion; a cancelled handle never reports a result.
func (p *Pending) Cancel() {
	p.once.Do(func() {
		p.mu.Lock()
		p.canceled = true
		p.img, p.err = nil, nil
		p.mu.Unlock()
		p.cancel()
	})
}

// Result waits for the load and returns its outcome. After Cancel it returns
// context.Canceled immediately.
func (p *Pending) Result() (*domain.Image, error) {
	if p.isCanceled() {
		return nil, context.Canceled
	}
	<-p.done

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.canceled {
		return nil, context.Canceled
	}
	return p.img, p.err
}

func (p *Pending) isCanceled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.canceled
}
