package pokeapi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mmcdole/dex/internal/domain"
)

const (
	// DefaultBaseURL is the public API root
	DefaultBaseURL = "https://pokeapi.co/api/v2"

	// DefaultSpriteBaseURL serves {id}.png front sprites
	DefaultSpriteBaseURL = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon"

	// The catalog is fetched in one request; paging is done locally.
	catalogLimit  = 151
	catalogOffset = 0

	resourcePath = "pokemon"
)

// CatalogURL builds the list query URL
func CatalogURL(baseURL string) (string, error) {
	u, err := parseBase(baseURL)
	if err != nil {
		return "", err
	}
	u = u.JoinPath(resourcePath)
	q := url.Values{}
	q.Set("limit", strconv.Itoa(catalogLimit))
	q.Set("offset", strconv.Itoa(catalogOffset))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// DetailURL builds the per-id detail URL
func DetailURL(baseURL string, id int) (string, error) {
	if id <= 0 {
		return "", fmt.Errorf("%w: id must be positive, got %d", domain.ErrInvalidURL, id)
	}
	u, err := parseBase(baseURL)
	if err != nil {
		return "", err
	}
	return u.JoinPath(resourcePath, strconv.Itoa(id)).String(), nil
}

// SpriteURL returns the image reference for id. Deterministic from id alone.
func SpriteURL(spriteBaseURL string, id int) string {
	return fmt.Sprintf("%s/%d.png", strings.TrimRight(spriteBaseURL, "/"), id)
}

// ParseAbsoluteURL accepts only http(s) URLs with a host
func ParseAbsoluteURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not an absolute http url", domain.ErrInvalidURL, raw)
	}
	return u, nil
}

// ParseResourceID extracts the trailing integer path segment of a resource
// URL, e.g. ".../pokemon/25/" -> 25. Returns false when there is none.
func ParseResourceID(rawURL string) (int, bool) {
	trimmed := strings.Trim(rawURL, "/")
	if trimmed == "" {
		return 0, false
	}
	last := trimmed[strings.LastIndex(trimmed, "/")+1:]
	id, err := strconv.Atoi(last)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func parseBase(baseURL string) (*url.URL, error) {
	return ParseAbsoluteURL(strings.TrimRight(baseURL, "/"))
}
