package tui

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var ansiEscape = regexp.MustCompile("\x1b\\[[0-9;]*m")

func stripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

func TestMatchPositions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []int{0, 2, 4}, matchPositions("pikachu", "pkc"))
	assert.Nil(t, matchPositions("pikachu", ""))
	assert.Nil(t, matchPositions("pikachu", "xyz"))
}

func TestHighlightMatches_keepsText(t *testing.T) {
	t.Parallel()

	for _, selected := range []bool{false, true} {
		assert.Equal(t, "pikachu", stripANSI(highlightMatches("pikachu", []int{0, 2, 4}, selected)))
		assert.Equal(t, "pikachu", stripANSI(highlightMatches("pikachu", nil, selected)))
	}
	assert.Equal(t, "flabébé", stripANSI(highlightMatches("flabébé", matchPositions("flabébé", "bé"), false)))
}
