package pokeapi

import (
	"context"
	"fmt"

	"github.com/mmcdole/dex/internal/domain"
)

const fixtureCatalogSize = 30

// FixtureRepository is a deterministic, non-networked domain.CatalogRepository.
// It honours ctx cancellation but never fails otherwise.
type FixtureRepository struct {
	baseURL       string
	spriteBaseURL string
}

// NewFixtureRepository creates a fixture repository whose URLs are built from
// the given bases (empty means the public defaults)
func NewFixtureRepository(baseURL, spriteBaseURL string) *FixtureRepository {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if spriteBaseURL == "" {
		spriteBaseURL = DefaultSpriteBaseURL
	}
	return &FixtureRepository{baseURL: baseURL, spriteBaseURL: spriteBaseURL}
}

// FetchCatalog returns pokemon-1 .. pokemon-30
func (r *FixtureRepository) FetchCatalog(ctx context.Context) ([]domain.CatalogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries := make([]domain.CatalogEntry, 0, fixtureCatalogSize)
	for id := 1; id <= fixtureCatalogSize; id++ {
		entries = append(entries, domain.CatalogEntry{
			ID:       id,
			Name:     fmt.Sprintf("pokemon-%d", id),
			ImageURL: SpriteURL(r.spriteBaseURL, id),
		})
	}
	return entries, nil
}

// SpriteURLs returns the sprite URL of every fixture entry
func (r *FixtureRepository) SpriteURLs() []string {
	urls := make([]string, 0, fixtureCatalogSize)
	for id := 1; id <= fixtureCatalogSize; id++ {
		urls = append(urls, SpriteURL(r.spriteBaseURL, id))
	}
	return urls
}

// FetchDetail returns the same record for every id, renamed and renumbered
func (r *FixtureRepository) FetchDetail(ctx context.Context, id int) (*domain.Detail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	detailURL, err := DetailURL(r.baseURL, id)
	if err != nil {
		return nil, err
	}

	exp := 64
	name := fmt.Sprintf("pokemon-%d", id)
	sprite := SpriteURL(r.spriteBaseURL, id)
	return &domain.Detail{
		ID:             id,
		Name:           name,
		Height:         7,
		Weight:         69,
		BaseExperience: &exp,
		Order:          id,
		IsDefault:      true,
		EncountersURL:  detailURL + "/encounters",
		Species:        domain.NamedResource{Name: name, URL: detailURL},
		Sprites:        domain.Sprites{FrontDefault: sprite},
		Abilities: []domain.Ability{
			{Slot: 1, Ability: domain.NamedResource{Name: "overgrow"}},
		},
		Forms: []domain.NamedResource{{Name: name, URL: detailURL}},
		Stats: []domain.Stat{
			{BaseStat: 35, Stat: domain.NamedResource{Name: "hp"}},
			{BaseStat: 55, Stat: domain.NamedResource{Name: "attack"}},
		},
		Types: []domain.Type{
			{Slot: 1, Type: domain.NamedResource{Name: "grass"}},
		},
	}, nil
}

// FetchEncounters returns a single viridian-forest encounter
func (r *FixtureRepository) FetchEncounters(ctx context.Context, rawURL string) ([]domain.Encounter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := ParseAbsoluteURL(rawURL); err != nil {
		return nil, err
	}
	return []domain.Encounter{
		{
			LocationArea: domain.NamedResource{Name: "viridian-forest"},
			VersionDetails: []domain.EncounterVersion{
				{
					Version:   domain.NamedResource{Name: "red"},
					MaxChance: 35,
					EncounterDetails: []domain.EncounterDetail{
						{MinLevel: 3, MaxLevel: 5, Chance: 25, Method: domain.NamedResource{Name: "walk"}},
					},
				},
			},
		},
	}, nil
}
