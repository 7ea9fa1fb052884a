package pokeapi

import (
	"sort"

	"github.com/mmcdole/dex/internal/domain"
)

// The mappers assume the DTO already passed Validate; nil required fields
// map to zero values rather than panicking.

// MapCatalog converts list results to catalog entries sorted ascending by ID.
// Entries without a parseable trailing ID are dropped; duplicate IDs keep the
// first occurrence.
func MapCatalog(results []ListEntry, spriteBaseURL string) []domain.CatalogEntry {
	entries := make([]domain.CatalogEntry, 0, len(results))
	seen := make(map[int]struct{}, len(results))
	for _, r := range results {
		id, ok := ParseResourceID(deref(r.URL))
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		entries = append(entries, domain.CatalogEntry{
			ID:       id,
			Name:     deref(r.Name),
			ImageURL: SpriteURL(spriteBaseURL, id),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})
	return entries
}

// MapDetail converts a detail response to a domain detail record
func MapDetail(d DetailResponse) domain.Detail {
	detail := domain.Detail{
		ID:            deref(d.ID),
		Name:          deref(d.Name),
		Height:        deref(d.Height),
		Weight:        deref(d.Weight),
		Order:         deref(d.Order),
		IsDefault:     deref(d.IsDefault),
		EncountersURL: deref(d.LocationAreaEncounters),
		Species:       mapResourcePtr(d.Species),
		Sprites:       mapSprites(d.Sprites),
		Abilities:     make([]domain.Ability, 0, len(d.Abilities)),
		Forms:         mapResources(d.Forms),
		GameIndices:   make([]domain.GameIndex, 0, len(d.GameIndices)),
		HeldItems:     make([]domain.HeldItem, 0, len(d.HeldItems)),
		Moves:         make([]domain.Move, 0, len(d.Moves)),
		Stats:         make([]domain.Stat, 0, len(d.Stats)),
		Types:         make([]domain.Type, 0, len(d.Types)),
	}
	if d.BaseExperience != nil {
		exp := *d.BaseExperience
		detail.BaseExperience = &exp
	}

	for _, a := range d.Abilities {
		detail.Abilities = append(detail.Abilities, domain.Ability{
			IsHidden: deref(a.IsHidden),
			Slot:     deref(a.Slot),
			Ability:  mapResource(a.Ability),
		})
	}
	for _, g := range d.GameIndices {
		detail.GameIndices = append(detail.GameIndices, domain.GameIndex{
			GameIndex: deref(g.GameIndex),
			Version:   mapResource(g.Version),
		})
	}
	for _, h := range d.HeldItems {
		item := domain.HeldItem{
			Item:           mapResource(h.Item),
			VersionDetails: make([]domain.HeldItemVersion, 0, len(h.VersionDetails)),
		}
		for _, v := range h.VersionDetails {
			item.VersionDetails = append(item.VersionDetails, domain.HeldItemVersion{
				Rarity:  deref(v.Rarity),
				Version: mapResource(v.Version),
			})
		}
		detail.HeldItems = append(detail.HeldItems, item)
	}
	for _, m := range d.Moves {
		move := domain.Move{
			Move:                mapResource(m.Move),
			VersionGroupDetails: make([]domain.MoveVersionDetail, 0, len(m.VersionGroupDetails)),
		}
		for _, v := range m.VersionGroupDetails {
			move.VersionGroupDetails = append(move.VersionGroupDetails, domain.MoveVersionDetail{
				LevelLearnedAt:  deref(v.LevelLearnedAt),
				MoveLearnMethod: mapResource(v.MoveLearnMethod),
				VersionGroup:    mapResource(v.VersionGroup),
			})
		}
		detail.Moves = append(detail.Moves, move)
	}
	for _, s := range d.Stats {
		detail.Stats = append(detail.Stats, domain.Stat{
			BaseStat: deref(s.BaseStat),
			Effort:   deref(s.Effort),
			Stat:     mapResource(s.Stat),
		})
	}
	for _, t := range d.Types {
		detail.Types = append(detail.Types, domain.Type{
			Slot: deref(t.Slot),
			Type: mapResource(t.Type),
		})
	}

	return detail
}

// MapEncounters converts the secondary collection payload
func MapEncounters(encounters []Encounter) []domain.Encounter {
	out := make([]domain.Encounter, 0, len(encounters))
	for _, e := range encounters {
		enc := domain.Encounter{
			LocationArea:   mapResourcePtr(e.LocationArea),
			VersionDetails: make([]domain.EncounterVersion, 0, len(e.VersionDetails)),
		}
		for _, v := range e.VersionDetails {
			ver := domain.EncounterVersion{
				Version:          mapResourcePtr(v.Version),
				MaxChance:        deref(v.MaxChance),
				EncounterDetails: make([]domain.EncounterDetail, 0, len(v.EncounterDetails)),
			}
			for _, d := range v.EncounterDetails {
				ver.EncounterDetails = append(ver.EncounterDetails, domain.EncounterDetail{
					MinLevel:   deref(d.MinLevel),
					MaxLevel:   deref(d.MaxLevel),
					Chance:     deref(d.Chance),
					Method:     mapResourcePtr(d.Method),
					Conditions: mapResources(d.ConditionValues),
				})
			}
			enc.VersionDetails = append(enc.VersionDetails, ver)
		}
		out = append(out, enc)
	}
	return out
}

func mapResource(n NamedResource) domain.NamedResource {
	return domain.NamedResource{Name: deref(n.Name), URL: deref(n.URL)}
}

func mapResourcePtr(n *NamedResource) domain.NamedResource {
	if n == nil {
		return domain.NamedResource{}
	}
	return mapResource(*n)
}

func mapResources(list []NamedResource) []domain.NamedResource {
	out := make([]domain.NamedResource, 0, len(list))
	for _, n := range list {
		out = append(out, mapResource(n))
	}
	return out
}

func mapSprites(s *Sprites) domain.Sprites {
	if s == nil {
		return domain.Sprites{}
	}
	return domain.Sprites{
		FrontDefault: deref(s.FrontDefault),
		FrontShiny:   deref(s.FrontShiny),
		BackDefault:  deref(s.BackDefault),
		BackShiny:    deref(s.BackShiny),
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
