package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/cases"

	"github.com/mmcdole/dex/internal/domain"
)

// Match reports whether name contains term, ignoring case.
// The empty term matches everything.
func Match(name, term string) bool {
	if term == "" {
		return true
	}
	fold := cases.Fold()
	return strings.Contains(fold.String(name), fold.String(term))
}

// Filter returns the entries whose name contains term, in their original
// order. The result never aliases entries.
func Filter(entries []domain.CatalogEntry, term string) []domain.CatalogEntry {
	if term == "" {
		out := make([]domain.CatalogEntry, len(entries))
		copy(out, entries)
		return out
	}

	fold := cases.Fold()
	needle := fold.String(term)

	out := make([]domain.CatalogEntry, 0)
	for _, e := range entries {
		if strings.Contains(fold.String(e.Name), needle) {
			out = append(out, e)
		}
	}
	return out
}

// Suggest returns up to limit entry names that are close to term: first
// names containing term's characters in order, then names within a small
// edit distance. Used when Filter finds nothing.
func Suggest(entries []domain.CatalogEntry, term string, limit int) []string {
	if term == "" || limit <= 0 || len(entries) == 0 {
		return nil
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(term, names)
	sort.Stable(ranks)

	out := make([]string, 0, limit)
	seen := make(map[string]bool, limit)
	for _, r := range ranks {
		if len(out) == limit {
			return out
		}
		if !seen[r.Target] {
			seen[r.Target] = true
			out = append(out, r.Target)
		}
	}

	// Typos break subsequence matching; fall back to edit distance.
	fold := cases.Fold()
	folded := fold.String(term)
	maxDistance := max(2, len([]rune(folded))/3)

	type candidate struct {
		name     string
		distance int
		index    int
	}
	var nearby []candidate
	for i, name := range names {
		if seen[name] {
			continue
		}
		d := fuzzy.LevenshteinDistance(folded, fold.String(name))
		if d <= maxDistance {
			nearby = append(nearby, candidate{name: name, distance: d, index: i})
		}
	}
	sort.Slice(nearby, func(i, j int) bool {
		if nearby[i].distance != nearby[j].distance {
			return nearby[i].distance < nearby[j].distance
		}
		return nearby[i].index < nearby[j].index
	})

	for _, c := range nearby {
		if len(out) == limit {
			break
		}
		if !seen[c.name] {
			seen[c.name] = true
			out = append(out, c.name)
		}
	}
	return out
}
