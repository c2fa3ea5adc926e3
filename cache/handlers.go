package cache

import (
	"context"
	"time"
)

// ensureLoaded performs the load+decode+insert+possibly-evict sequence of
// spec.md §4.F.1 step 2-3 for path, deduplicating concurrent misses for the
// same path via singleflight (see SPEC_FULL.md OQ-1). It returns nil once
// path is resident (or an error if load/decode failed), but does not
// itself return a Handle: callers re-read the resulting entry from state
// under the lock, which is always safe because a handler never evicts the
// entry it just inserted (it is the most-recently-touched, hence the last
// candidate for eviction) unless MaxImageCount is violated by the
// configuration bounds, which Validate rejects.
func (c *Cache) ensureLoaded(ctx context.Context, path string) error {
	_, err, _ := c.group.Do(path, func() (interface{}, error) {
		readStart := time.Now()
		data, ioErr := c.fileReader(ctx, path)
		if ioErr != nil {
			return nil, newError(ErrLoadIO, path, ioErr)
		}
		readDur := time.Since(readStart)

		decodeStart := time.Now()
		img, decErr := c.decoder(data)
		if decErr != nil {
			return nil, newError(ErrLoadFormat, path, decErr)
		}
		decodeDur := time.Since(decodeStart)
		h := NewHandle(img)

		cacheStart := time.Now()
		c.mu.Lock()
		if existing, ok := c.state.lookup(path); ok {
			// Decode race (spec.md §4.F.1 step 3): another load for this
			// path already won. Keep the previously inserted handle and
			// discard ours so every caller observes the same value (P2).
			c.state.touch(path)
			c.mu.Unlock()
			h.Release()
			c.log().WithField("path", path).Debug("discarding losing decode")
			return nil, nil
		}
		if c.state.len() >= c.cfg.MaxImageCount {
			if evictedPath, evictedHandle, ok := c.state.evictOldest(); ok {
				c.log().WithField("path", evictedPath).Info("evicting least recently used image")
				evictedHandle.Release()
			}
		}
		c.state.insert(path, h)
		size := c.state.len()
		c.mu.Unlock()
		cacheDur := time.Since(cacheStart)

		c.log().WithFields(map[string]interface{}{
			"path":       path,
			"width":      h.Width(),
			"height":     h.Height(),
			"read_ms":    readDur.Milliseconds(),
			"decode_ms":  decodeDur.Milliseconds(),
			"cache_ms":   cacheDur.Milliseconds(),
			"cache_size": size,
		}).Debug("image loaded and cached")
		return nil, nil
	})
	return err
}

// handleGet implements component F.1: try the cache under lock, and on a
// miss load+decode+insert via ensureLoaded before returning the now
// resident handle.
func (c *Cache) handleGet(ctx context.Context, path string) getResult {
	start := time.Now()

	c.mu.Lock()
	if h, ok := c.state.lookup(path); ok {
		c.state.touch(path)
		cloned := h.Clone()
		c.mu.Unlock()
		c.log().WithFields(map[string]interface{}{
			"path": path, "lookup_ms": time.Since(start).Milliseconds(),
		}).Debug("cache hit")
		return getResult{handle: cloned}
	}
	c.mu.Unlock()

	if err := c.ensureLoaded(ctx, path); err != nil {
		return getResult{err: err}
	}

	c.mu.Lock()
	h, ok := c.state.lookup(path)
	if ok {
		c.state.touch(path)
	}
	c.mu.Unlock()
	if !ok {
		// Only reachable with a pathological MaxImageCount at the
		// documented minimum racing an extreme number of concurrent
		// distinct-path insertions; treated as a transient miss rather
		// than a programming-bug abort, since it does not violate I1-I4.
		return getResult{err: newError(ErrUnresponsive, path, errEvictedBeforeDelivery)}
	}
	cloned := h.Clone()
	c.log().WithFields(map[string]interface{}{
		"path": path, "total_ms": time.Since(start).Milliseconds(),
	}).Debug("cache miss handled")
	return getResult{handle: cloned}
}

// handlePreloadAsync implements the second half of component F.2: the
// background load+decode+insert, run after the acceptance ack has already
// been sent. Errors are logged, never propagated (spec.md §7).
func (c *Cache) handlePreloadAsync(ctx context.Context, path string) {
	if err := c.ensureLoaded(ctx, path); err != nil {
		c.log().WithFields(map[string]interface{}{
			"path": path, "error": err,
		}).Warn("preload failed")
	}
}

var errEvictedBeforeDelivery = errDescribe("entry evicted before delivery to caller")

type errDescribe string

func (e errDescribe) Error() string { return string(e) }
