package tui

import (
	"github.com/mmcdole/dex/internal/domain"
	"github.com/mmcdole/dex/internal/imagecache"
	"github.com/mmcdole/dex/internal/library"
)

// Message types for the TUI

// CatalogLoadedMsg carries the result of the catalog fetch
type CatalogLoadedMsg struct {
	Result library.CatalogResult
}

// DetailLoadedMsg carries a detail fetch for the detail view opened as Gen
type DetailLoadedMsg struct {
	Gen    int
	Result library.DetailResult
}

// EncountersLoadedMsg carries an encounters fetch for the detail view opened as Gen
type EncountersLoadedMsg struct {
	Gen    int
	Result library.EncountersResult
}

// SpriteLoadedMsg carries the outcome of a sprite request. Stale requests
// are recognised by comparing Pending with the model's current one.
type SpriteLoadedMsg struct {
	Pending *imagecache.Pending
	Image   *domain.Image
	Err     error
}
