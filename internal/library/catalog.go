package library

import (
	"context"
	"log/slog"
	"slices"

	"github.com/mmcdole/dex/internal/domain"
	"github.com/mmcdole/dex/internal/search"
)

const (
	// PageSize is the number of entries revealed per page
	PageSize = 20

	// LoadMoreThreshold is how close to the end of the visible slice an
	// entry must be for MaybeLoadMore to reveal the next page
	LoadMoreThreshold = 5

	suggestionLimit = 3
)

// CatalogResult is the outcome of a catalog fetch, produced off the owner's
// goroutine by Fetch and applied on it by Complete
type CatalogResult struct {
	Entries []domain.CatalogEntry
	Err     error
}

// CatalogView is a paged, filtered view over the full catalog.
//
// The full catalog is fetched once; search and paging are purely local.
// A CatalogView has a single owner and is not safe for concurrent use.
// Asynchronous owners call BeginLoad, run Fetch elsewhere, and hand the
// result back to Complete.
type CatalogView struct {
	repo   domain.CatalogRepository
	logger *slog.Logger

	master     []domain.CatalogEntry
	filtered   []domain.CatalogEntry
	visible    []domain.CatalogEntry
	searchTerm string
	page       int

	isLoading    bool
	err          error
	errorMessage string
}

// NewCatalogView creates an empty view. Nothing is fetched until InitialLoad.
func NewCatalogView(repo domain.CatalogRepository, logger *slog.Logger) *CatalogView {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogView{
		repo:   repo,
		logger: logger,
		page:   1,
	}
}

// InitialLoad fetches the catalog and shows the first page. It is a no-op
// once the catalog has been loaded; use Retry to refetch.
func (v *CatalogView) InitialLoad(ctx context.Context) {
	if !v.BeginLoad() {
		return
	}
	v.Complete(v.Fetch(ctx))
}

// Retry discards the loaded catalog and fetches it again
func (v *CatalogView) Retry(ctx context.Context) {
	if !v.BeginRetry() {
		return
	}
	v.Complete(v.Fetch(ctx))
}

// BeginLoad marks a load as started. It reports false, changing nothing,
// when the catalog is already loaded or a load is in flight.
func (v *CatalogView) BeginLoad() bool {
	if len(v.master) > 0 || v.isLoading {
		return false
	}
	v.isLoading = true
	v.err = nil
	v.errorMessage = ""
	return true
}

// BeginRetry clears the catalog and then behaves like BeginLoad
func (v *CatalogView) BeginRetry() bool {
	if v.isLoading {
		return false
	}
	v.master = nil
	v.recompute()
	return v.BeginLoad()
}

// Fetch calls the repository. It touches no view state and may run on any
// goroutine.
func (v *CatalogView) Fetch(ctx context.Context) CatalogResult {
	entries, err := v.repo.FetchCatalog(ctx)
	return CatalogResult{Entries: entries, Err: err}
}

// Complete applies a fetch result. A cancelled fetch only ends the loading
// state; a failed one leaves the catalog empty with an error message.
func (v *CatalogView) Complete(res CatalogResult) {
	v.isLoading = false

	switch {
	case domain.IsCanceled(res.Err):
		v.logger.Debug("catalog load canceled")
		return
	case res.Err != nil:
		v.logger.Error("catalog load failed", "error", res.Err)
		v.master = nil
		v.err = res.Err
		v.errorMessage = ErrorMessage(res.Err)
	default:
		v.logger.Debug("catalog loaded", "count", len(res.Entries))
		v.master = slices.Clone(res.Entries)
		v.err = nil
		v.errorMessage = ""
	}

	v.page = 1
	v.recompute()
}

// SetSearchTerm filters the catalog by case-insensitive substring and resets
// paging to the first page
func (v *CatalogView) SetSearchTerm(term string) {
	v.searchTerm = term
	v.page = 1
	v.recompute()
}

// MaybeLoadMore reveals the next page when entry is one of the last
// LoadMoreThreshold visible entries. Reports whether a page was added.
func (v *CatalogView) MaybeLoadMore(entry domain.CatalogEntry) bool {
	if !v.CanLoadMore() {
		return false
	}

	idx := slices.IndexFunc(v.visible, func(e domain.CatalogEntry) bool {
		return e.ID == entry.ID
	})
	if idx < 0 || idx < len(v.visible)-LoadMoreThreshold {
		return false
	}

	v.page++
	v.recompute()
	v.logger.Debug("catalog page advanced", "page", v.page, "visible", len(v.visible))
	return true
}

func (v *CatalogView) recompute() {
	v.filtered = search.Filter(v.master, v.searchTerm)
	n := min(v.page*PageSize, len(v.filtered))
	v.visible = v.filtered[:n]
}

// VisibleItems returns the current page-limited slice of filtered entries
func (v *CatalogView) VisibleItems() []domain.CatalogEntry {
	return slices.Clone(v.visible)
}

// CanLoadMore reports whether filtered entries remain beyond the visible slice
func (v *CatalogView) CanLoadMore() bool {
	return len(v.filtered) > len(v.visible)
}

// IsLoading reports whether a catalog fetch is in flight
func (v *CatalogView) IsLoading() bool {
	return v.isLoading
}

// ErrorMessage returns the message for the last failed load, or ""
func (v *CatalogView) ErrorMessage() string {
	return v.errorMessage
}

// Err returns the error of the last failed load
func (v *CatalogView) Err() error {
	return v.err
}

// SearchTerm returns the current search term
func (v *CatalogView) SearchTerm() string {
	return v.searchTerm
}

// Page returns the 1-based page index
func (v *CatalogView) Page() int {
	return v.page
}

// TotalCount returns the size of the loaded catalog
func (v *CatalogView) TotalCount() int {
	return len(v.master)
}

// FilteredCount returns how many entries match the search term
func (v *CatalogView) FilteredCount() int {
	return len(v.filtered)
}

// Suggestions returns close names when a non-empty search term matches
// nothing
func (v *CatalogView) Suggestions() []string {
	if v.searchTerm == "" || len(v.filtered) > 0 || len(v.master) == 0 {
		return nil
	}
	return search.Suggest(v.master, v.searchTerm, suggestionLimit)
}
