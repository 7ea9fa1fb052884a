package library

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/dex/internal/domain"
)

// stubRepo is a scripted domain.CatalogRepository
type stubRepo struct {
	mu            sync.Mutex
	catalog       []domain.CatalogEntry
	catalogErr    error
	detail        *domain.Detail
	detailErr     error
	encounters    []domain.Encounter
	encountersErr error

	catalogCalls    int
	detailCalls     int
	encountersCalls int
	encountersURL   string
}

func (r *stubRepo) FetchCatalog(ctx context.Context) ([]domain.CatalogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.catalogCalls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.catalogErr != nil {
		return nil, r.catalogErr
	}
	return r.catalog, nil
}

func (r *stubRepo) FetchDetail(ctx context.Context, id int) (*domain.Detail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detailCalls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.detailErr != nil {
		return nil, r.detailErr
	}
	return r.detail, nil
}

func (r *stubRepo) FetchEncounters(ctx context.Context, rawURL string) ([]domain.Encounter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.encountersCalls++
	r.encountersURL = rawURL
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.encountersErr != nil {
		return nil, r.encountersErr
	}
	return r.encounters, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func catalogOf(n int) []domain.CatalogEntry {
	out := make([]domain.CatalogEntry, n)
	for i := range out {
		out[i] = domain.CatalogEntry{ID: i + 1, Name: fmt.Sprintf("item-%d", i+1)}
	}
	return out
}

func loadedView(t *testing.T, n int) (*CatalogView, *stubRepo) {
	t.Helper()
	repo := &stubRepo{catalog: catalogOf(n)}
	v := NewCatalogView(repo, quietLogger())
	v.InitialLoad(context.Background())
	require.Empty(t, v.ErrorMessage())
	return v, repo
}

func last(entries []domain.CatalogEntry) domain.CatalogEntry {
	return entries[len(entries)-1]
}

func TestCatalogView_paginationSlicing(t *testing.T) {
	t.Parallel()

	v, _ := loadedView(t, 45)
	assert.Len(t, v.VisibleItems(), 20)
	assert.True(t, v.CanLoadMore())

	assert.True(t, v.MaybeLoadMore(last(v.VisibleItems())))
	assert.Len(t, v.VisibleItems(), 40)
	assert.True(t, v.CanLoadMore())

	// Fifth from the end is inside the threshold window.
	visible := v.VisibleItems()
	assert.True(t, v.MaybeLoadMore(visible[len(visible)-LoadMoreThreshold]))
	assert.Len(t, v.VisibleItems(), 45)
	assert.False(t, v.CanLoadMore())

	assert.False(t, v.MaybeLoadMore(last(v.VisibleItems())))
	assert.Len(t, v.VisibleItems(), 45)
}

func TestCatalogView_maybeLoadMoreOutsideThreshold(t *testing.T) {
	t.Parallel()

	v, _ := loadedView(t, 45)
	visible := v.VisibleItems()

	assert.False(t, v.MaybeLoadMore(visible[0]))
	assert.False(t, v.MaybeLoadMore(visible[len(visible)-LoadMoreThreshold-1]))
	assert.False(t, v.MaybeLoadMore(domain.CatalogEntry{ID: 44, Name: "item-44"}), "entry not visible")
	assert.Len(t, v.VisibleItems(), 20)
	assert.Equal(t, 1, v.Page())
}

func TestCatalogView_visibleIsPrefixOfFiltered(t *testing.T) {
	t.Parallel()

	v, _ := loadedView(t, 45)
	v.SetSearchTerm("item-")
	v.MaybeLoadMore(last(v.VisibleItems()))

	all := catalogOf(45)
	for i, e := range v.VisibleItems() {
		assert.Equal(t, all[i], e)
	}
}

func TestCatalogView_searchResetsPaging(t *testing.T) {
	t.Parallel()

	v, _ := loadedView(t, 45)
	v.MaybeLoadMore(last(v.VisibleItems()))
	require.Len(t, v.VisibleItems(), 40)
	require.Equal(t, 2, v.Page())

	// item-4 and item-40..45
	v.SetSearchTerm("item-4")
	assert.Equal(t, 1, v.Page())
	assert.Len(t, v.VisibleItems(), 7)

	v.SetSearchTerm("ITEM-2")
	assert.Len(t, v.VisibleItems(), 11)

	v.SetSearchTerm("m-43")
	assert.Equal(t, []domain.CatalogEntry{{ID: 43, Name: "item-43"}}, v.VisibleItems())
	assert.False(t, v.CanLoadMore())
}

func TestCatalogView_searchMatchingThree(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{catalog: catalogOf(45)}
	repo.catalog[4].Name = "special-a"
	repo.catalog[22].Name = "Special-b"
	repo.catalog[41].Name = "very special"

	v := NewCatalogView(repo, quietLogger())
	v.InitialLoad(context.Background())
	v.MaybeLoadMore(last(v.VisibleItems()))
	require.Len(t, v.VisibleItems(), 40)

	v.SetSearchTerm("special")
	got := v.VisibleItems()
	require.Len(t, got, 3)
	assert.Equal(t, []int{5, 23, 42}, []int{got[0].ID, got[1].ID, got[2].ID})
	assert.False(t, v.CanLoadMore())
	assert.Equal(t, 1, v.Page())
}

func TestCatalogView_substringSearch(t *testing.T) {
	t.Parallel()

	v, _ := loadedView(t, 10)
	v.SetSearchTerm("item-1")

	got := v.VisibleItems()
	require.Len(t, got, 2)
	assert.Equal(t, "item-1", got[0].Name)
	assert.Equal(t, "item-10", got[1].Name)
	assert.False(t, v.CanLoadMore())

	v.SetSearchTerm("")
	assert.Len(t, v.VisibleItems(), 10)
}

func TestCatalogView_initialLoadIsGuarded(t *testing.T) {
	t.Parallel()

	v, repo := loadedView(t, 5)
	v.InitialLoad(context.Background())
	assert.Equal(t, 1, repo.catalogCalls)

	v.Retry(context.Background())
	assert.Equal(t, 2, repo.catalogCalls)
	assert.Len(t, v.VisibleItems(), 5)
}

func TestCatalogView_beginLoadWhileLoading(t *testing.T) {
	t.Parallel()

	v := NewCatalogView(&stubRepo{catalog: catalogOf(3)}, quietLogger())
	require.True(t, v.BeginLoad())
	assert.True(t, v.IsLoading())
	assert.False(t, v.BeginLoad())
	assert.False(t, v.BeginRetry())

	v.Complete(v.Fetch(context.Background()))
	assert.False(t, v.IsLoading())
	assert.Len(t, v.VisibleItems(), 3)
}

func TestCatalogView_failure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: timeout", domain.ErrNetwork), MessageNetwork},
		{fmt.Errorf("%w: bad json", domain.ErrDecoding), MessageDecoding},
		{fmt.Errorf("%w: bad", domain.ErrInvalidURL), MessageInvalidURL},
		{fmt.Errorf("boom"), MessageUnknown},
	}

	for _, tt := range tests {
		repo := &stubRepo{catalogErr: tt.err}
		v := NewCatalogView(repo, quietLogger())
		v.InitialLoad(context.Background())

		assert.Equal(t, tt.want, v.ErrorMessage())
		assert.ErrorIs(t, v.Err(), tt.err)
		assert.Empty(t, v.VisibleItems())
		assert.False(t, v.CanLoadMore())
		assert.False(t, v.IsLoading())
	}
}

func TestCatalogView_retryAfterFailure(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{catalogErr: domain.ErrNetwork}
	v := NewCatalogView(repo, quietLogger())
	v.InitialLoad(context.Background())
	require.Equal(t, MessageNetwork, v.ErrorMessage())

	repo.catalogErr = nil
	repo.catalog = catalogOf(25)
	v.Retry(context.Background())

	assert.Empty(t, v.ErrorMessage())
	assert.NoError(t, v.Err())
	assert.Len(t, v.VisibleItems(), 20)
	assert.True(t, v.CanLoadMore())
}

func TestCatalogView_canceledLoadChangesNothing(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{catalog: catalogOf(5)}
	v := NewCatalogView(repo, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	v.InitialLoad(ctx)

	assert.False(t, v.IsLoading())
	assert.Empty(t, v.ErrorMessage())
	assert.Empty(t, v.VisibleItems())

	// Not loaded, so a later InitialLoad still fetches.
	v.InitialLoad(context.Background())
	assert.Len(t, v.VisibleItems(), 5)
}

func TestCatalogView_suggestions(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{catalog: []domain.CatalogEntry{
		{ID: 1, Name: "bulbasaur"},
		{ID: 25, Name: "pikachu"},
	}}
	v := NewCatalogView(repo, quietLogger())
	v.InitialLoad(context.Background())

	assert.Nil(t, v.Suggestions())

	v.SetSearchTerm("pika")
	assert.Nil(t, v.Suggestions(), "matches exist")

	v.SetSearchTerm("pkchu")
	assert.Empty(t, v.VisibleItems())
	assert.Equal(t, []string{"pikachu"}, v.Suggestions())
}

func TestCatalogView_visibleItemsIsACopy(t *testing.T) {
	t.Parallel()

	v, _ := loadedView(t, 3)
	got := v.VisibleItems()
	got[0].Name = "mutated"
	assert.Equal(t, "item-1", v.VisibleItems()[0].Name)
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ErrorMessage(nil))
	assert.Empty(t, ErrorMessage(context.Canceled))
	assert.Empty(t, ErrorMessage(fmt.Errorf("wrapped: %w", context.DeadlineExceeded)))
	assert.Equal(t, MessageNetwork, ErrorMessage(fmt.Errorf("%w: x", domain.ErrNetwork)))
	assert.Equal(t, MessageUnknown, ErrorMessage(domain.ErrUnknown))
}
