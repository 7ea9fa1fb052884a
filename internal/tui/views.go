package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/dex/internal/domain"
	"github.com/mmcdole/dex/internal/tui/styles"
)

// Highest base stat any entry can have
const maxBaseStat = 255

// View renders the current screen
func (m Model) View() string {
	var body string
	switch m.Screen {
	case ScreenDetail:
		body = m.renderDetail()
	default:
		body = m.renderCatalog()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderHelp())
}

func (m Model) renderHeader() string {
	title := styles.HeaderStyle.Render("Pokédex")
	count := ""
	if total := m.Catalog.TotalCount(); total > 0 {
		count = styles.DimStyle.Render(fmt.Sprintf(" %d of %d", m.Catalog.FilteredCount(), total))
	}
	return title + count
}

func (m Model) renderCatalog() string {
	listWidth := max(MinListWidth, m.Width*ListColumnPercent/100)
	previewWidth := max(0, m.Width-listWidth-1)

	var lines []string
	if m.Searching || m.Catalog.SearchTerm() != "" {
		lines = append(lines, m.SearchInput.View())
	} else {
		lines = append(lines, styles.DimStyle.Render("/ to search"))
	}
	lines = append(lines, m.renderList(listWidth)...)

	list := lipgloss.NewStyle().Width(listWidth).Render(strings.Join(lines, "\n"))
	if previewWidth < 10 {
		return list
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, list, " ", m.renderPreview(previewWidth))
}

func (m Model) renderList(width int) []string {
	switch {
	case m.Catalog.IsLoading() && m.Catalog.TotalCount() == 0:
		return []string{m.Spinner.View() + " Loading catalog..."}

	case m.Catalog.ErrorMessage() != "":
		return []string{
			styles.ErrorStyle.Render(m.Catalog.ErrorMessage()),
			styles.DimStyle.Render("press r to retry"),
		}

	case m.Catalog.FilteredCount() == 0 && m.Catalog.SearchTerm() != "":
		lines := []string{styles.DimStyle.Render("No matches found")}
		if suggestions := m.Catalog.Suggestions(); len(suggestions) > 0 {
			lines = append(lines, styles.DimStyle.Render("Did you mean: ")+
				styles.AccentStyle.Render(strings.Join(suggestions, ", "))+
				styles.DimStyle.Render("?"))
		}
		return lines
	}

	items := m.Catalog.VisibleItems()
	end := min(len(items), m.offset+m.listHeight())
	term := m.Catalog.SearchTerm()

	lines := make([]string, 0, end-m.offset+1)
	for i := m.offset; i < end; i++ {
		lines = append(lines, renderRow(items[i], term, width, i == m.Cursor))
	}
	if m.Catalog.CanLoadMore() {
		lines = append(lines, styles.DimStyle.Render("  ↓ more"))
	}
	return lines
}

func renderRow(entry domain.CatalogEntry, term string, width int, selected bool) string {
	base := styles.NormalItemStyle
	prefix := "  "
	if selected {
		base = styles.SelectedItemStyle
		prefix = "> "
	}

	name := styles.Truncate(entry.Name, max(1, width-len(prefix)-6))
	row := base.Render(prefix) +
		styles.NumberStyle.Inherit(base).Render(entry.Number()) +
		base.Render(" ") +
		highlightMatches(name, matchPositions(name, term), selected)
	if selected {
		row = padRight(row, width, base)
	}
	return row
}

func (m Model) renderPreview(width int) string {
	entry, ok := m.selected()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(entry.DisplayName()))
	b.WriteString(" ")
	b.WriteString(styles.DimStyle.Render(entry.Number()))
	b.WriteString("\n\n")
	b.WriteString(m.renderSprite(min(width, SpriteWidth)))
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("enter for details"))
	return b.String()
}

func (m Model) renderSprite(width int) string {
	if m.Sprite == nil {
		if m.spritePending != nil {
			return m.Spinner.View()
		}
		return styles.DimStyle.Render("(no image)")
	}
	return strings.Join(RenderHalfBlocks(m.Sprite.Pixels, width), "\n")
}

func (m Model) renderDetail() string {
	v := m.Detail
	entry := v.Entry()

	var lines []string
	header := styles.TitleStyle.Render(entry.DisplayName()) + " " + styles.DimStyle.Render(entry.Number())
	lines = append(lines, header, "")

	switch {
	case v.IsLoading():
		lines = append(lines, m.Spinner.View()+" Loading...")
		return m.scrollDetail(lines)
	case v.ErrorMessage() != "":
		lines = append(lines,
			styles.ErrorStyle.Render(v.ErrorMessage()),
			styles.DimStyle.Render("press r to retry"))
		return m.scrollDetail(lines)
	case v.Detail() == nil:
		return m.scrollDetail(lines)
	}

	d := v.Detail()
	if sprite := m.renderSprite(DetailSpriteWidth); sprite != "" {
		lines = append(lines, strings.Split(sprite, "\n")...)
		lines = append(lines, "")
	}

	badges := make([]string, 0, len(d.Types))
	for _, name := range d.TypeNames() {
		badges = append(badges, styles.BadgeStyle.Render(name))
	}
	lines = append(lines, strings.Join(badges, " "), "")

	lines = append(lines, fmt.Sprintf("%s %s   %s %s",
		styles.DimStyle.Render("Height"), d.FormattedHeight(),
		styles.DimStyle.Render("Weight"), d.FormattedWeight()))
	if d.BaseExperience != nil {
		lines = append(lines, fmt.Sprintf("%s %d", styles.DimStyle.Render("Base experience"), *d.BaseExperience))
	}
	lines = append(lines, "")

	lines = append(lines, styles.SubtitleStyle.Render("Stats"))
	for _, s := range d.Stats {
		lines = append(lines, fmt.Sprintf("  %-16s %3d %s",
			s.Stat.Name, s.BaseStat, styles.RenderProgressBar(s.BaseStat, maxBaseStat, 20)))
	}
	lines = append(lines, fmt.Sprintf("  %-16s %3d", "total", d.TotalBaseStats()), "")

	lines = append(lines, styles.SubtitleStyle.Render("Abilities"))
	for _, a := range d.Abilities {
		line := "  " + a.Ability.Name
		if a.IsHidden {
			line += " " + styles.DimBadgeStyle.Render("hidden")
		}
		lines = append(lines, line)
	}
	lines = append(lines, "")

	lines = append(lines, styles.SubtitleStyle.Render("Encounters"))
	lines = append(lines, m.renderEncounters()...)

	return m.scrollDetail(lines)
}

func (m Model) renderEncounters() []string {
	v := m.Detail
	if v.IsLoadingEncounters() {
		return []string{"  " + m.Spinner.View() + " Loading..."}
	}
	encounters := v.Encounters()
	if len(encounters) == 0 {
		return []string{styles.DimStyle.Render("  Not found in the wild")}
	}

	var lines []string
	for _, e := range encounters {
		lines = append(lines, "  "+styles.AccentStyle.Render(e.LocationArea.Name))
		for _, ver := range e.VersionDetails {
			lines = append(lines, fmt.Sprintf("    %-12s %3d%%", ver.Version.Name, ver.MaxChance))
			for _, d := range ver.EncounterDetails {
				lines = append(lines, styles.DimStyle.Render(fmt.Sprintf("      %s lv %s, %d%%",
					d.Method.Name, d.LevelRange(), d.Chance)))
			}
		}
	}
	return lines
}

func (m Model) scrollDetail(lines []string) string {
	h := m.listHeight() + 1
	start := min(m.detailScroll, max(0, len(lines)-h))
	end := min(len(lines), start+h)
	return strings.Join(lines[start:end], "\n")
}

func (m Model) renderHelp() string {
	var bindings []key.Binding
	switch {
	case m.Searching:
		bindings = []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		}
	case m.Screen == ScreenDetail:
		bindings = []key.Binding{Keys.Up, Keys.Down, Keys.Back, Keys.Retry, Keys.Quit}
	default:
		bindings = []key.Binding{Keys.Up, Keys.Down, Keys.Enter, Keys.Filter, Keys.Retry, Keys.Quit}
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.HelpKeyStyle.Render(h.Key)+" "+styles.HelpDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}
