package cache

import (
	"context"
	"image"
)

// FileReader produces the byte contents of path. Implementations must not
// block the calling goroutine beyond what ctx permits; the cache always
// calls it off the dispatcher, never from within the dispatcher's select
// loop (spec.md §6).
type FileReader func(ctx context.Context, path string) ([]byte, error)

// ImageDecoder decodes a byte buffer into a full pixel buffer. It is
// synchronous and CPU-bound; the cache always calls it off the dispatcher.
type ImageDecoder func(data []byte) (image.Image, error)
