package cache

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"sync"
	"sync/atomic"
)

func solidImage(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	return img
}

// fakeFS is an in-memory FileReader collaborator keyed by path. Each
// present path maps to the encoded byte payload that fakeDecoder expects.
type fakeFS struct {
	mu    sync.Mutex
	files map[string][]byte
	reads int32
}

func newFakeFS() *fakeFS {
	return &fakeFS{files: make(map[string][]byte)}
}

func (f *fakeFS) put(path string, w, h int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[path] = []byte(fmt.Sprintf("%dx%d", w, h))
}

func (f *fakeFS) Read(ctx context.Context, path string) ([]byte, error) {
	atomic.AddInt32(&f.reads, 1)
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.files[path]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", path)
	}
	return data, nil
}

func (f *fakeFS) readCount() int32 { return atomic.LoadInt32(&f.reads) }

// fakeDecoder parses the "%dx%d" payload produced by fakeFS.put and counts
// how many times it was invoked, so tests can assert decode-race dedup
// (P2/P4 in spec.md §8).
type fakeDecoder struct {
	decodes int32
}

func (d *fakeDecoder) Decode(data []byte) (image.Image, error) {
	atomic.AddInt32(&d.decodes, 1)
	var w, h int
	if _, err := fmt.Sscanf(string(data), "%dx%d", &w, &h); err != nil {
		return nil, fmt.Errorf("bad payload: %w", err)
	}
	return solidImage(w, h), nil
}

func (d *fakeDecoder) decodeCount() int32 { return atomic.LoadInt32(&d.decodes) }

// failingDecoder always returns a format error, for exercising ErrLoadFormat.
func failingDecoder(data []byte) (image.Image, error) {
	return nil, fmt.Errorf("unsupported format")
}
