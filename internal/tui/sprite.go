package tui

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

const (
	upperHalf = "▀"
	lowerHalf = "▄"
	ansiReset = "\033[0m"

	// Pixels at or below this alpha are treated as background
	alphaCutoff = 0x7fff
)

// RenderHalfBlocks renders img as terminal lines, two pixel rows per line,
// using truecolor escapes. Transparent margins are cropped first and the
// result is scaled down to at most width columns.
func RenderHalfBlocks(img image.Image, width int) []string {
	if img == nil || width <= 0 {
		return nil
	}
	bounds := opaqueBounds(img)
	if bounds.Empty() {
		return nil
	}

	srcW, srcH := bounds.Dx(), bounds.Dy()
	cols, rows := srcW, srcH
	if cols > width {
		cols = width
		rows = max(1, srcH*width/srcW)
	}

	sample := func(x, y int) (color.RGBA, bool) {
		px := bounds.Min.X + x*srcW/cols
		py := bounds.Min.Y + y*srcH/rows
		r, g, b, a := img.At(px, py).RGBA()
		if a <= alphaCutoff {
			return color.RGBA{}, false
		}
		return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0xff}, true
	}

	lines := make([]string, 0, (rows+1)/2)
	for y := 0; y < rows; y += 2 {
		var b strings.Builder
		for x := 0; x < cols; x++ {
			top, topOK := sample(x, y)
			var bottom color.RGBA
			bottomOK := false
			if y+1 < rows {
				bottom, bottomOK = sample(x, y+1)
			}

			switch {
			case topOK && bottomOK:
				fmt.Fprintf(&b, "\033[38;2;%d;%d;%dm\033[48;2;%d;%d;%dm%s%s",
					top.R, top.G, top.B, bottom.R, bottom.G, bottom.B, upperHalf, ansiReset)
			case topOK:
				fmt.Fprintf(&b, "\033[38;2;%d;%d;%dm%s%s", top.R, top.G, top.B, upperHalf, ansiReset)
			case bottomOK:
				fmt.Fprintf(&b, "\033[38;2;%d;%d;%dm%s%s", bottom.R, bottom.G, bottom.B, lowerHalf, ansiReset)
			default:
				b.WriteByte(' ')
			}
		}
		lines = append(lines, b.String())
	}
	return lines
}

// opaqueBounds returns the smallest rectangle containing every visible pixel
func opaqueBounds(img image.Image) image.Rectangle {
	b := img.Bounds()
	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X, b.Min.Y
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a <= alphaCutoff {
				continue
			}
			minX = min(minX, x)
			minY = min(minY, y)
			maxX = max(maxX, x+1)
			maxY = max(maxY, y+1)
		}
	}
	if maxX <= minX || maxY <= minY {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX, maxY)
}
