package imagecache

import (
	"bytes"
	"hash/fnv"
	"image"
	"image/color"
	"image/png"
	"log/slog"

	"github.com/mmcdole/dex/internal/adapter/transport"
)

const fixtureSize = 64

// FixturePNG returns a solid 64x64 PNG. The colour is derived from rawURL so
// different entries differ.
func FixturePNG(rawURL string) []byte {
	h := fnv.New32a()
	_, _ = h.Write([]byte(rawURL))
	sum := h.Sum32()
	fill := color.RGBA{R: uint8(sum >> 16), G: uint8(sum >> 8), B: uint8(sum), A: 0xff}

	img := image.NewRGBA(image.Rect(0, 0, fixtureSize, fixtureSize))
	for y := 0; y < fixtureSize; y++ {
		for x := 0; x < fixtureSize; x++ {
			img.SetRGBA(x, y, fill)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

// NewFixtureLoader returns a Loader over an in-memory transport that serves
// FixturePNG for each of urls. Any other URL fails like a 404.
func NewFixtureLoader(logger *slog.Logger, urls ...string) *Loader {
	fake := transport.NewFake()
	for _, u := range urls {
		fake.Respond(u, FixturePNG(u))
	}
	return NewLoader(fake, NewCache(), logger)
}
