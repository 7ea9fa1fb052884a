package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/dex/internal/domain"
	"github.com/mmcdole/dex/internal/imagecache"
	"github.com/mmcdole/dex/internal/library"
	"github.com/mmcdole/dex/internal/tui/styles"
)

// Screen is the page currently shown
type Screen int

const (
	ScreenCatalog Screen = iota
	ScreenDetail
)

// Layout
const (
	ListColumnPercent = 45
	MinListWidth      = 24
	SpriteWidth       = 40
	DetailSpriteWidth = 24

	// Header, search line, footer
	ChromeHeight = 4
)

// Model is the main Bubble Tea model for the application
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *slog.Logger

	// Services
	repo   domain.CatalogRepository
	images imagecache.AsyncLoader

	// Views
	Catalog   *library.CatalogView
	Detail    *library.DetailView
	detailGen int

	// Scope of the open detail view's requests
	detailCtx    context.Context
	detailCancel context.CancelFunc

	// UI state
	Screen       Screen
	Cursor       int
	offset       int
	detailScroll int
	Searching    bool
	SearchInput  textinput.Model
	Spinner      spinner.Model

	// Sprite for the highlighted entry
	Sprite        *domain.Image
	spriteURL     string
	spritePending *imagecache.Pending

	// Dimensions
	Width  int
	Height int
}

// NewModel creates a new application model. Cancelling ctx aborts every
// request the model has in flight.
func NewModel(ctx context.Context, repo domain.CatalogRepository, images imagecache.AsyncLoader, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(ctx)

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle
	ti.Placeholder = "search by name"

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	return Model{
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger,
		repo:        repo,
		images:      images,
		Catalog:     library.NewCatalogView(repo, logger),
		SearchInput: ti,
		Spinner:     sp,
		Width:       80,
		Height:      24,
	}
}

// Init starts the catalog load
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, m.loadCatalog())
}

func (m Model) loadCatalog() tea.Cmd {
	if !m.Catalog.BeginLoad() {
		return nil
	}
	return loadCatalogCmd(m.ctx, m.Catalog)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.ensureCursorVisible()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case CatalogLoadedMsg:
		m.Catalog.Complete(msg.Result)
		m.clampCursor()
		return m, m.syncSprite()

	case DetailLoadedMsg:
		if m.Detail == nil || msg.Gen != m.detailGen {
			return m, nil
		}
		rawURL, ok := m.Detail.ApplyDetail(msg.Result)
		if !ok {
			return m, nil
		}
		return m, loadEncountersCmd(m.detailCtx, m.Detail, m.detailGen, rawURL)

	case EncountersLoadedMsg:
		if m.Detail == nil || msg.Gen != m.detailGen {
			return m, nil
		}
		m.Detail.ApplyEncounters(msg.Result)
		return m, nil

	case SpriteLoadedMsg:
		if msg.Pending != m.spritePending {
			return m, nil
		}
		m.spritePending = nil
		if msg.Err != nil {
			if !domain.IsCanceled(msg.Err) {
				m.logger.Debug("sprite unavailable", "url", msg.Pending.URL, "error", msg.Err)
			}
			return m, nil
		}
		m.Sprite = msg.Image
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	if m.Searching {
		return m.handleSearchKey(msg)
	}
	if m.Screen == ScreenDetail {
		return m.handleDetailKey(msg)
	}
	return m.handleCatalogKey(msg)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.spritePending != nil {
		m.spritePending.Cancel()
		m.spritePending = nil
	}
	m.closeDetail()
	m.cancel()
	return m, tea.Quit
}

func (m Model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m.quit()

	case key.Matches(msg, Keys.Filter):
		m.Searching = true
		return m, m.SearchInput.Focus()

	case key.Matches(msg, Keys.Escape):
		if m.Catalog.SearchTerm() == "" {
			return m, nil
		}
		m.SearchInput.SetValue("")
		return m, m.applySearch()

	case key.Matches(msg, Keys.Retry):
		if m.Catalog.Err() == nil || !m.Catalog.BeginRetry() {
			return m, nil
		}
		return m, loadCatalogCmd(m.ctx, m.Catalog)

	case key.Matches(msg, Keys.Up):
		return m, m.moveCursor(-1)
	case key.Matches(msg, Keys.Down):
		return m, m.moveCursor(1)
	case key.Matches(msg, Keys.PageUp):
		return m, m.moveCursor(-m.listHeight())
	case key.Matches(msg, Keys.PageDown):
		return m, m.moveCursor(m.listHeight())
	case key.Matches(msg, Keys.Home):
		return m, m.moveCursor(-m.Cursor)
	case key.Matches(msg, Keys.End):
		return m, m.moveCursor(len(m.Catalog.VisibleItems()) - 1 - m.Cursor)

	case key.Matches(msg, Keys.Enter):
		return m.openDetail()
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.Searching = false
		m.SearchInput.Blur()
		return m, nil
	case "esc":
		m.Searching = false
		m.SearchInput.Blur()
		m.SearchInput.SetValue("")
		return m, m.applySearch()
	}

	var cmd tea.Cmd
	m.SearchInput, cmd = m.SearchInput.Update(msg)
	if m.SearchInput.Value() == m.Catalog.SearchTerm() {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.applySearch())
}

// applySearch pushes the input value into the catalog view and resets the
// cursor to the first match
func (m *Model) applySearch() tea.Cmd {
	m.Catalog.SetSearchTerm(m.SearchInput.Value())
	m.Cursor = 0
	m.offset = 0
	return m.syncSprite()
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m.quit()

	case key.Matches(msg, Keys.Back):
		m.closeDetail()
		m.Screen = ScreenCatalog
		m.Detail = nil
		m.detailScroll = 0
		return m, nil

	case key.Matches(msg, Keys.Retry):
		if m.Detail.Err() == nil || !m.Detail.BeginRetry() {
			return m, nil
		}
		return m, loadDetailCmd(m.detailCtx, m.Detail, m.detailGen)

	case key.Matches(msg, Keys.Up):
		m.detailScroll = max(0, m.detailScroll-1)
	case key.Matches(msg, Keys.Down):
		m.detailScroll++
	case key.Matches(msg, Keys.Home):
		m.detailScroll = 0
	}
	return m, nil
}

func (m Model) openDetail() (tea.Model, tea.Cmd) {
	entry, ok := m.selected()
	if !ok {
		return m, nil
	}
	m.closeDetail()
	m.detailCtx, m.detailCancel = context.WithCancel(m.ctx)
	m.Detail = library.NewDetailView(m.repo, entry, m.logger)
	m.Screen = ScreenDetail
	m.detailScroll = 0
	if !m.Detail.Begin() {
		return m, nil
	}
	return m, loadDetailCmd(m.detailCtx, m.Detail, m.detailGen)
}

// closeDetail aborts requests for the open detail view and invalidates any
// result still on its way
func (m *Model) closeDetail() {
	if m.detailCancel != nil {
		m.detailCancel()
		m.detailCancel = nil
	}
	m.detailGen++
}

func (m Model) selected() (domain.CatalogEntry, bool) {
	items := m.Catalog.VisibleItems()
	if m.Cursor < 0 || m.Cursor >= len(items) {
		return domain.CatalogEntry{}, false
	}
	return items[m.Cursor], true
}

// moveCursor moves the selection by delta, reveals the next page when the
// selection nears the end of the visible slice, and refreshes the sprite
func (m *Model) moveCursor(delta int) tea.Cmd {
	items := m.Catalog.VisibleItems()
	if len(items) == 0 {
		return nil
	}
	m.Cursor = max(0, min(m.Cursor+delta, len(items)-1))
	m.Catalog.MaybeLoadMore(items[m.Cursor])
	m.ensureCursorVisible()
	return m.syncSprite()
}

func (m *Model) clampCursor() {
	n := len(m.Catalog.VisibleItems())
	m.Cursor = max(0, min(m.Cursor, n-1))
	m.ensureCursorVisible()
}

func (m *Model) ensureCursorVisible() {
	h := m.listHeight()
	if m.Cursor < m.offset {
		m.offset = m.Cursor
	}
	if m.Cursor >= m.offset+h {
		m.offset = m.Cursor - h + 1
	}
	m.offset = max(0, m.offset)
}

func (m Model) listHeight() int {
	return max(1, m.Height-ChromeHeight)
}

// syncSprite starts loading the highlighted entry's sprite. A request for a
// previously highlighted entry is cancelled so its result is never shown.
func (m *Model) syncSprite() tea.Cmd {
	entry, ok := m.selected()
	rawURL := ""
	if ok {
		rawURL = entry.ImageURL
	}
	if rawURL == m.spriteURL {
		return nil
	}

	if m.spritePending != nil {
		m.spritePending.Cancel()
		m.spritePending = nil
	}
	m.Sprite = nil
	m.spriteURL = rawURL
	if rawURL == "" || m.images == nil {
		return nil
	}

	m.spritePending = m.images.Begin(m.ctx, rawURL)
	return waitSpriteCmd(m.spritePending)
}
