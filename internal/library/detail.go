package library

import (
	"context"
	"log/slog"
	"slices"

	"github.com/mmcdole/dex/internal/domain"
)

// DetailResult is the outcome of a detail fetch
type DetailResult struct {
	Detail *domain.Detail
	Err    error
}

// EncountersResult is the outcome of an encounters fetch
type EncountersResult struct {
	Encounters []domain.Encounter
	Err        error
}

// DetailView loads one entry's detail record and then, lazily, its
// encounters. Encounter failures are not shown; the list just stays empty.
// Like CatalogView it has a single owner; the Fetch methods touch no state.
type DetailView struct {
	repo   domain.CatalogRepository
	entry  domain.CatalogEntry
	logger *slog.Logger

	detail              *domain.Detail
	encounters          []domain.Encounter
	isLoading           bool
	isLoadingEncounters bool
	err                 error
	errorMessage        string
}

// NewDetailView creates a view for entry. Nothing is fetched until Load.
func NewDetailView(repo domain.CatalogRepository, entry domain.CatalogEntry, logger *slog.Logger) *DetailView {
	if logger == nil {
		logger = slog.Default()
	}
	return &DetailView{repo: repo, entry: entry, logger: logger}
}

// Load fetches the detail record, then its encounters. No-op once loaded.
func (v *DetailView) Load(ctx context.Context) {
	if !v.Begin() {
		return
	}
	v.finish(ctx, v.FetchDetail(ctx))
}

// Retry discards loaded data and loads again
func (v *DetailView) Retry(ctx context.Context) {
	if !v.BeginRetry() {
		return
	}
	v.finish(ctx, v.FetchDetail(ctx))
}

func (v *DetailView) finish(ctx context.Context, res DetailResult) {
	if rawURL, ok := v.ApplyDetail(res); ok {
		v.ApplyEncounters(v.FetchEncounters(ctx, rawURL))
	}
}

// Begin marks a detail load as started. Reports false when the detail is
// already loaded or a load is in flight.
func (v *DetailView) Begin() bool {
	if v.detail != nil || v.isLoading {
		return false
	}
	v.isLoading = true
	v.err = nil
	v.errorMessage = ""
	return true
}

// BeginRetry clears the detail and encounters, then behaves like Begin
func (v *DetailView) BeginRetry() bool {
	if v.isLoading {
		return false
	}
	v.detail = nil
	v.encounters = nil
	v.isLoadingEncounters = false
	return v.Begin()
}

// FetchDetail calls the repository without touching view state
func (v *DetailView) FetchDetail(ctx context.Context) DetailResult {
	detail, err := v.repo.FetchDetail(ctx, v.entry.ID)
	return DetailResult{Detail: detail, Err: err}
}

// ApplyDetail stores a detail result. On success it returns the encounters
// URL the owner should fetch next and marks encounters as loading.
func (v *DetailView) ApplyDetail(res DetailResult) (encountersURL string, ok bool) {
	v.isLoading = false

	switch {
	case domain.IsCanceled(res.Err):
		return "", false
	case res.Err != nil:
		v.logger.Error("detail load failed", "id", v.entry.ID, "error", res.Err)
		v.err = res.Err
		v.errorMessage = ErrorMessage(res.Err)
		return "", false
	case res.Detail == nil:
		v.err = domain.ErrUnknown
		v.errorMessage = ErrorMessage(domain.ErrUnknown)
		return "", false
	}

	v.detail = res.Detail
	v.isLoadingEncounters = true
	return res.Detail.EncountersURL, true
}

// FetchEncounters calls the repository without touching view state
func (v *DetailView) FetchEncounters(ctx context.Context, rawURL string) EncountersResult {
	encounters, err := v.repo.FetchEncounters(ctx, rawURL)
	return EncountersResult{Encounters: encounters, Err: err}
}

// ApplyEncounters stores an encounters result. Failures are logged only.
func (v *DetailView) ApplyEncounters(res EncountersResult) {
	v.isLoadingEncounters = false
	if res.Err != nil {
		if !domain.IsCanceled(res.Err) {
			v.logger.Debug("encounters load failed", "id", v.entry.ID, "error", res.Err)
		}
		return
	}
	v.encounters = slices.Clone(res.Encounters)
}

// Entry returns the catalog entry this view was opened for
func (v *DetailView) Entry() domain.CatalogEntry {
	return v.entry
}

// ImageURL returns the sprite reference of the entry
func (v *DetailView) ImageURL() string {
	return v.entry.ImageURL
}

// Detail returns the loaded record, or nil
func (v *DetailView) Detail() *domain.Detail {
	return v.detail
}

// Encounters returns the loaded encounters
func (v *DetailView) Encounters() []domain.Encounter {
	return slices.Clone(v.encounters)
}

func (v *DetailView) IsLoading() bool           { return v.isLoading }
func (v *DetailView) IsLoadingEncounters() bool { return v.isLoadingEncounters }
func (v *DetailView) ErrorMessage() string      { return v.errorMessage }
func (v *DetailView) Err() error                { return v.err }
