package transport

import (
	"context"
	"fmt"
	"sync"

	"github.com/mmcdole/dex/internal/domain"
)

// Fake is a deterministic in-memory domain.Transport.
// URLs without a registered response fail with ErrNetwork, like a 404.
type Fake struct {
	mu        sync.Mutex
	responses map[string]fakeResponse
	calls     map[string]int
	gate      chan struct{}
	deaf      bool // keep waiting on the gate after ctx is cancelled
	started   chan string
}

type fakeResponse struct {
	body []byte
	err  error
}

// NewFake creates an empty fake transport
func NewFake() *Fake {
	return &Fake{
		responses: make(map[string]fakeResponse),
		calls:     make(map[string]int),
		started:   make(chan string, 64),
	}
}

// Respond registers a successful body for rawURL
func (f *Fake) Respond(rawURL string, body []byte) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[rawURL] = fakeResponse{body: body}
	return f
}

// Fail registers a failure for rawURL. Errors that are not already
// classified are wrapped with ErrNetwork.
func (f *Fake) Fail(rawURL string, err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	if domain.Classify(err) == domain.ErrUnknown {
		err = fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	f.responses[rawURL] = fakeResponse{err: err}
	return f
}

// Hold makes every subsequent Fetch block until release is called.
// Blocked fetches return ctx.Err() if their context is cancelled first.
func (f *Fake) Hold() (release func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	gate := make(chan struct{})
	f.gate = gate
	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			if f.gate == gate {
				f.gate = nil
			}
			f.mu.Unlock()
			close(gate)
		})
	}
}

// IgnoreCancellation makes held fetches wait for release even when their
// context is cancelled, then complete normally. This models a response that
// was already on the wire when the caller gave up.
func (f *Fake) IgnoreCancellation() *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deaf = true
	return f
}

// Started receives the URL of every Fetch as it begins
func (f *Fake) Started() <-chan string {
	return f.started
}

// Calls returns how many times rawURL was fetched
func (f *Fake) Calls(rawURL string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[rawURL]
}

// TotalCalls returns the number of fetches across all URLs
func (f *Fake) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

// Fetch implements domain.Transport
func (f *Fake) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	f.mu.Lock()
	f.calls[rawURL]++
	gate := f.gate
	deaf := f.deaf
	resp, ok := f.responses[rawURL]
	f.mu.Unlock()

	select {
	case f.started <- rawURL:
	default:
	}

	if gate != nil {
		if deaf {
			<-gate
		} else {
			select {
			case <-gate:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	if !deaf && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if !ok {
		return nil, fmt.Errorf("%w: no response registered for %s", domain.ErrNetwork, rawURL)
	}
	if resp.err != nil {
		return nil, resp.err
	}

	body := make([]byte, len(resp.body))
	copy(body, resp.body)
	return body, nil
}
