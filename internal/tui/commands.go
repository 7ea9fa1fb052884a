package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/dex/internal/imagecache"
	"github.com/mmcdole/dex/internal/library"
)

// The Fetch methods used here touch no view state, so they may run inside
// tea.Cmd goroutines. Results are applied in Update.

func loadCatalogCmd(ctx context.Context, view *library.CatalogView) tea.Cmd {
	return func() tea.Msg {
		return CatalogLoadedMsg{Result: view.Fetch(ctx)}
	}
}

func loadDetailCmd(ctx context.Context, view *library.DetailView, gen int) tea.Cmd {
	return func() tea.Msg {
		return DetailLoadedMsg{Gen: gen, Result: view.FetchDetail(ctx)}
	}
}

func loadEncountersCmd(ctx context.Context, view *library.DetailView, gen int, rawURL string) tea.Cmd {
	return func() tea.Msg {
		return EncountersLoadedMsg{Gen: gen, Result: view.FetchEncounters(ctx, rawURL)}
	}
}

func waitSpriteCmd(p *imagecache.Pending) tea.Cmd {
	return func() tea.Msg {
		img, err := p.Result()
		return SpriteLoadedMsg{Pending: p, Image: img, Err: err}
	}
}
