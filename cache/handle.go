package cache

import (
	"image"
	"sync/atomic"
)

// Handle is an immutable, reference-counted view of a fully decoded image.
//
// A Handle never copies its pixel buffer. Clone is an O(1) refcount bump;
// Release is an O(1) refcount decrement. The cache and every caller that
// holds a Handle must Release it exactly once when done. Handles returned
// from a cache lookup are already retained on the caller's behalf.
type Handle struct {
	img     image.Image
	width   int32
	height  int32
	refs    *int32
	onClose func()
}

// NewHandle wraps a decoded image. The returned Handle owns one reference;
// the caller must Release it (or Clone it and release the clone) when done.
func NewHandle(img image.Image) *Handle {
	b := img.Bounds()
	refs := int32(1)
	return &Handle{
		img:    img,
		width:  int32(b.Dx()),
		height: int32(b.Dy()),
		refs:   &refs,
	}
}

// WithCloser attaches a function invoked exactly once, when the last
// reference to h is released. Intended for pooled buffers; optional.
func (h *Handle) WithCloser(onClose func()) *Handle {
	h.onClose = onClose
	return h
}

// Width reports the image width in pixels.
func (h *Handle) Width() int { return int(h.width) }

// Height reports the image height in pixels.
func (h *Handle) Height() int { return int(h.height) }

// Image returns the shared, read-only pixel buffer. Callers must not
// mutate the returned image.
func (h *Handle) Image() image.Image { return h.img }

// Clone returns a new reference to the same underlying buffer. O(1): it
// never copies pixel data.
func (h *Handle) Clone() *Handle {
	atomic.AddInt32(h.refs, 1)
	return &Handle{
		img:     h.img,
		width:   h.width,
		height:  h.height,
		refs:    h.refs,
		onClose: h.onClose,
	}
}

// Release drops this reference. When the last reference is released, the
// attached closer (if any) runs. Release is safe to call exactly once per
// Handle value; calling it twice on the same value double-decrements the
// shared counter unchecked, so the closer can run while other references
// are still live.
func (h *Handle) Release() {
	if atomic.AddInt32(h.refs, -1) == 0 && h.onClose != nil {
		h.onClose()
	}
}

// refCount reports the current number of live references. Exposed for
// tests verifying P6 (no-copy sharing); not part of the public contract
// other packages should depend on.
func (h *Handle) refCount() int32 {
	return atomic.LoadInt32(h.refs)
}
