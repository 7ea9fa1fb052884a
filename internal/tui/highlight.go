package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/dex/internal/tui/styles"
)

// matchPositions returns the byte offsets in name matched by term.
// Filtering decides which entries are shown; this only decides what to
// emphasise inside a name that is already shown.
func matchPositions(name, term string) []int {
	if term == "" {
		return nil
	}
	matches := fuzzy.Find(term, []string{name})
	if len(matches) == 0 {
		return nil
	}
	return matches[0].MatchedIndexes
}

// highlightMatches renders text with the characters at matched byte offsets
// emphasised
func highlightMatches(text string, matched []int, selected bool) string {
	normal, match := styles.NormalItemStyle, styles.MatchHighlightStyle
	if selected {
		normal, match = styles.SelectedItemStyle, styles.MatchHighlightSelectedStyle
	}
	if len(matched) == 0 {
		return normal.Render(text)
	}

	matchSet := make(map[int]bool, len(matched))
	for _, idx := range matched {
		matchSet[idx] = true
	}

	// Batch consecutive runes with the same match state
	var result, batch strings.Builder
	batchIsMatch := false
	flush := func() {
		if batch.Len() == 0 {
			return
		}
		style := normal
		if batchIsMatch {
			style = match
		}
		result.WriteString(style.Render(batch.String()))
		batch.Reset()
	}

	for i, r := range text {
		isMatch := matchSet[i]
		if isMatch != batchIsMatch {
			flush()
			batchIsMatch = isMatch
		}
		batch.WriteRune(r)
	}
	flush()

	return result.String()
}

// padRight pads a rendered string with spaces to width cells
func padRight(s string, width int, style lipgloss.Style) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + style.Render(strings.Repeat(" ", gap))
}
