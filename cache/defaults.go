package cache

import (
	"context"
	"image"

	"git.sr.ht/~ferrite/viewer/internal/diskio"
	"git.sr.ht/~ferrite/viewer/internal/imgdecode"
)

func defaultFileReader(ctx context.Context, path string) ([]byte, error) {
	return diskio.Reader(ctx, path)
}

func defaultDecoder(data []byte) (image.Image, error) {
	return imgdecode.Decode(data)
}
