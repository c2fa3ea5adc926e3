// Package imgdecode provides the default image-decoding collaborator
// consumed by cache.Cache (spec.md §6's "Image decoder" contract). It
// registers the formats a viewer needs to open, beyond the stdlib's
// built-in jpeg/png/gif: bmp, tiff, and webp via golang.org/x/image.
package imgdecode

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode decodes data into a full pixel buffer, trying every format
// registered above via image.Decode's format-sniffing.
func Decode(data []byte) (image.Image, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	_ = format
	return img, nil
}
