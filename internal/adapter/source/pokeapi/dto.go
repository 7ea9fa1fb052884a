package pokeapi

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Wire DTOs. Required scalars are pointers so that a missing key can be told
// apart from a zero value; Validate enforces presence before mapping.

// ListResponse is the body of GET /pokemon?limit=&offset=
type ListResponse struct {
	Results []ListEntry `json:"results"`
}

func (r ListResponse) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Results, validation.NotNil),
	)
}

// ListEntry is one element of ListResponse.Results
type ListEntry struct {
	Name *string `json:"name"`
	URL  *string `json:"url"`
}

func (e ListEntry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Name, validation.NotNil),
		validation.Field(&e.URL, validation.NotNil),
	)
}

// NamedResource is the {name, url} pair used throughout the API
type NamedResource struct {
	Name *string `json:"name"`
	URL  *string `json:"url"`
}

func (n NamedResource) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.Name, validation.NotNil),
		validation.Field(&n.URL, validation.NotNil),
	)
}

// DetailResponse is the body of GET /pokemon/{id}
type DetailResponse struct {
	Abilities              []Ability       `json:"abilities"`
	BaseExperience         *int            `json:"base_experience"` // optional
	Forms                  []NamedResource `json:"forms"`
	GameIndices            []GameIndex     `json:"game_indices"`
	Height                 *int            `json:"height"`
	HeldItems              []HeldItem      `json:"held_items"`
	ID                     *int            `json:"id"`
	IsDefault              *bool           `json:"is_default"`
	LocationAreaEncounters *string         `json:"location_area_encounters"`
	Moves                  []Move          `json:"moves"`
	Name                   *string         `json:"name"`
	Order                  *int            `json:"order"`
	Species                *NamedResource  `json:"species"`
	Sprites                *Sprites        `json:"sprites"`
	Stats                  []Stat          `json:"stats"`
	Types                  []Type          `json:"types"`
	Weight                 *int            `json:"weight"`
}

func (d DetailResponse) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Abilities, validation.NotNil),
		validation.Field(&d.Forms, validation.NotNil),
		validation.Field(&d.GameIndices, validation.NotNil),
		validation.Field(&d.Height, validation.NotNil),
		validation.Field(&d.HeldItems, validation.NotNil),
		validation.Field(&d.ID, validation.NotNil),
		validation.Field(&d.IsDefault, validation.NotNil),
		validation.Field(&d.LocationAreaEncounters, validation.NotNil),
		validation.Field(&d.Moves, validation.NotNil),
		validation.Field(&d.Name, validation.NotNil),
		validation.Field(&d.Order, validation.NotNil),
		validation.Field(&d.Species, validation.NotNil),
		validation.Field(&d.Sprites, validation.NotNil),
		validation.Field(&d.Stats, validation.NotNil),
		validation.Field(&d.Types, validation.NotNil),
		validation.Field(&d.Weight, validation.NotNil),
	)
}

type Ability struct {
	IsHidden *bool         `json:"is_hidden"`
	Slot     *int          `json:"slot"`
	Ability  NamedResource `json:"ability"`
}

func (a Ability) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.IsHidden, validation.NotNil),
		validation.Field(&a.Slot, validation.NotNil),
		validation.Field(&a.Ability),
	)
}

type GameIndex struct {
	GameIndex *int          `json:"game_index"`
	Version   NamedResource `json:"version"`
}

func (g GameIndex) Validate() error {
	return validation.ValidateStruct(&g,
		validation.Field(&g.GameIndex, validation.NotNil),
		validation.Field(&g.Version),
	)
}

type HeldItem struct {
	Item           NamedResource     `json:"item"`
	VersionDetails []HeldItemVersion `json:"version_details"`
}

func (h HeldItem) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.Item),
		validation.Field(&h.VersionDetails, validation.NotNil),
	)
}

type HeldItemVersion struct {
	Rarity  *int          `json:"rarity"`
	Version NamedResource `json:"version"`
}

func (h HeldItemVersion) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.Rarity, validation.NotNil),
		validation.Field(&h.Version),
	)
}

type Move struct {
	Move                NamedResource       `json:"move"`
	VersionGroupDetails []MoveVersionDetail `json:"version_group_details"`
}

func (m Move) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Move),
		validation.Field(&m.VersionGroupDetails, validation.NotNil),
	)
}

type MoveVersionDetail struct {
	LevelLearnedAt  *int          `json:"level_learned_at"`
	MoveLearnMethod NamedResource `json:"move_learn_method"`
	VersionGroup    NamedResource `json:"version_group"`
}

func (m MoveVersionDetail) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.LevelLearnedAt, validation.NotNil),
		validation.Field(&m.MoveLearnMethod),
		validation.Field(&m.VersionGroup),
	)
}

type Stat struct {
	BaseStat *int          `json:"base_stat"`
	Effort   *int          `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

func (s Stat) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.BaseStat, validation.NotNil),
		validation.Field(&s.Effort, validation.NotNil),
		validation.Field(&s.Stat),
	)
}

type Type struct {
	Slot *int          `json:"slot"`
	Type NamedResource `json:"type"`
}

func (t Type) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Slot, validation.NotNil),
		validation.Field(&t.Type),
	)
}

// Sprites fields are all optional; the API sends null for missing artwork
type Sprites struct {
	FrontDefault *string `json:"front_default"`
	FrontShiny   *string `json:"front_shiny"`
	BackDefault  *string `json:"back_default"`
	BackShiny    *string `json:"back_shiny"`
}

// Encounter is one element of the array at location_area_encounters
type Encounter struct {
	LocationArea   *NamedResource     `json:"location_area"`
	VersionDetails []EncounterVersion `json:"version_details"`
}

func (e Encounter) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.LocationArea, validation.NotNil),
		validation.Field(&e.VersionDetails, validation.NotNil),
	)
}

type EncounterVersion struct {
	Version          *NamedResource    `json:"version"`
	MaxChance        *int              `json:"max_chance"`
	EncounterDetails []EncounterDetail `json:"encounter_details"`
}

func (v EncounterVersion) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.Version, validation.NotNil),
		validation.Field(&v.MaxChance, validation.NotNil, validation.Min(0), validation.Max(100)),
		validation.Field(&v.EncounterDetails, validation.NotNil),
	)
}

type EncounterDetail struct {
	MinLevel        *int            `json:"min_level"`
	MaxLevel        *int            `json:"max_level"`
	Chance          *int            `json:"chance"`
	Method          *NamedResource  `json:"method"`
	ConditionValues []NamedResource `json:"condition_values"`
}

var errLevelOrder = errors.New("must not be lower than min_level")

func (d EncounterDetail) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.MinLevel, validation.NotNil),
		validation.Field(&d.MaxLevel, validation.NotNil, validation.By(func(any) error {
			if d.MinLevel != nil && d.MaxLevel != nil && *d.MaxLevel < *d.MinLevel {
				return errLevelOrder
			}
			return nil
		})),
		validation.Field(&d.Chance, validation.NotNil, validation.Min(0), validation.Max(100)),
		validation.Field(&d.Method, validation.NotNil),
		validation.Field(&d.ConditionValues, validation.NotNil),
	)
}
