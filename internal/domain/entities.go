package domain

import (
	"fmt"
	"image"
	"unicode"
	"unicode/utf8"
)

// CatalogEntry is the lightweight record shown in the catalog list
type CatalogEntry struct {
	ID       int    // Positive, unique identifier parsed from the resource URL
	Name     string // Display name as returned by the list endpoint
	ImageURL string // Sprite URL derived from ID
}

// DisplayName returns the name with its first letter upper-cased
func (e CatalogEntry) DisplayName() string {
	return capitalizeFirst(e.Name)
}

// Number returns the formatted catalog number (e.g., "#025")
func (e CatalogEntry) Number() string {
	return fmt.Sprintf("#%03d", e.ID)
}

// NamedResource is a name/url pair referencing another API resource
type NamedResource struct {
	Name string
	URL  string
}

// Detail is the full per-entry record with its nested sub-resources
type Detail struct {
	ID             int
	Name           string
	Height         int  // Decimetres
	Weight         int  // Hectograms
	BaseExperience *int // Absent for some forms
	Order          int
	IsDefault      bool

	// EncountersURL points at the secondary collection for this entry.
	// It is supplied by the server and never constructed locally.
	EncountersURL string

	Species     NamedResource
	Sprites     Sprites
	Abilities   []Ability
	Forms       []NamedResource
	GameIndices []GameIndex
	HeldItems   []HeldItem
	Moves       []Move
	Stats       []Stat
	Types       []Type
}

// DisplayName returns the name with its first letter upper-cased
func (d Detail) DisplayName() string {
	return capitalizeFirst(d.Name)
}

// TotalBaseStats sums the base value of every stat
func (d Detail) TotalBaseStats() int {
	total := 0
	for _, s := range d.Stats {
		total += s.BaseStat
	}
	return total
}

// TypeNames returns type names ordered by slot
func (d Detail) TypeNames() []string {
	names := make([]string, len(d.Types))
	for i, t := range d.Types {
		names[i] = t.Type.Name
	}
	return names
}

// FormattedHeight returns the height in metres
func (d Detail) FormattedHeight() string {
	return fmt.Sprintf("%.1f m", float64(d.Height)/10)
}

// FormattedWeight returns the weight in kilograms
func (d Detail) FormattedWeight() string {
	return fmt.Sprintf("%.1f kg", float64(d.Weight)/10)
}

// Sprites holds the optional sprite URLs embedded in a detail record
type Sprites struct {
	FrontDefault string
	FrontShiny   string
	BackDefault  string
	BackShiny    string
}

type Ability struct {
	IsHidden bool
	Slot     int
	Ability  NamedResource
}

type GameIndex struct {
	GameIndex int
	Version   NamedResource
}

type HeldItem struct {
	Item           NamedResource
	VersionDetails []HeldItemVersion
}

type HeldItemVersion struct {
	Rarity  int
	Version NamedResource
}

type Move struct {
	Move                NamedResource
	VersionGroupDetails []MoveVersionDetail
}

type MoveVersionDetail struct {
	LevelLearnedAt  int
	MoveLearnMethod NamedResource
	VersionGroup    NamedResource
}

type Stat struct {
	BaseStat int
	Effort   int
	Stat     NamedResource
}

type Type struct {
	Slot int
	Type NamedResource
}

// Encounter is one entry of the secondary collection: where an entry can be
// found and under which conditions, per game version
type Encounter struct {
	LocationArea   NamedResource
	VersionDetails []EncounterVersion
}

type EncounterVersion struct {
	Version          NamedResource
	MaxChance        int // 0-100
	EncounterDetails []EncounterDetail
}

type EncounterDetail struct {
	MinLevel   int
	MaxLevel   int // Always >= MinLevel
	Chance     int // 0-100
	Method     NamedResource
	Conditions []NamedResource
}

// LevelRange returns "5" or "3-5"
func (e EncounterDetail) LevelRange() string {
	if e.MinLevel == e.MaxLevel {
		return fmt.Sprintf("%d", e.MinLevel)
	}
	return fmt.Sprintf("%d-%d", e.MinLevel, e.MaxLevel)
}

// Image is a decoded sprite together with the bytes it was decoded from
type Image struct {
	URL    string      // Cache key
	Format string      // "png", "jpeg", "gif", "webp", "bmp"
	Data   []byte      // Raw bytes as fetched
	Pixels image.Image // Decoded pixels
}

// Bounds returns the pixel bounds of the decoded image
func (i *Image) Bounds() image.Rectangle {
	if i == nil || i.Pixels == nil {
		return image.Rectangle{}
	}
	return i.Pixels.Bounds()
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
