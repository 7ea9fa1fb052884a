package imagecache

import (
	"bytes"
	"fmt"
	"image"

	// Registered decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/mmcdole/dex/internal/domain"
)

// Decode turns fetched bytes into an image. Anything image.Decode rejects,
// including an empty body, is ErrDecoding.
func Decode(rawURL string, data []byte) (*domain.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image body", domain.ErrDecoding)
	}

	pixels, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecoding, err)
	}

	return &domain.Image{
		URL:    rawURL,
		Format: format,
		Data:   data,
		Pixels: pixels,
	}, nil
}
