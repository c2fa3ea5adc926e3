// Package cache implements the asynchronous, bounded, LRU-governed
// decoded-image cache described in SPEC_FULL.md. A foreground caller
// obtains decoded images synchronously through a Client while loading and
// decoding happen on a small owned worker pool, never blocking the caller
// beyond the wait for its own reply.
package cache

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Cache is component B+D+E+F bundled behind the dispatcher loop. It is
// never exposed directly; New returns only a Client, per spec.md §6
// ("No separate init/teardown calls; resource lifetime follows the
// handle's owner").
type Cache struct {
	cfg       Config
	fileReader FileReader
	decoder   ImageDecoder
	logger    *logrus.Entry

	mu    sync.Mutex
	state *state
	group singleflight.Group

	rt *runtime

	requests chan request
	shutdown chan struct{}
	done     chan struct{}
}

// Option customizes a Cache at construction time.
type Option func(*Cache)

// WithLogger overrides the default logrus.StandardLogger().
func WithLogger(l *logrus.Entry) Option {
	return func(c *Cache) { c.logger = l }
}

// WithFileReader overrides the default filesystem collaborator.
func WithFileReader(r FileReader) Option {
	return func(c *Cache) { c.fileReader = r }
}

// WithDecoder overrides the default image-decoding collaborator.
func WithDecoder(d ImageDecoder) Option {
	return func(c *Cache) { c.decoder = d }
}

func (c *Cache) log() *logrus.Entry {
	if c.logger != nil {
		return c.logger
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// New validates cfg, starts the worker runtime and dispatcher loop, and
// returns a Client bound to them. Construction fails before any
// goroutines start if cfg is invalid (spec.md §4.H).
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Cache{
		cfg:      cfg,
		state:    newState(),
		rt:       newRuntime(cfg.ThreadCount),
		requests: make(chan request),
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.fileReader == nil {
		c.fileReader = defaultFileReader
	}
	if c.decoder == nil {
		c.decoder = defaultDecoder
	}

	c.log().WithFields(map[string]interface{}{
		"max_image_count": cfg.MaxImageCount,
		"thread_count":    cfg.ThreadCount,
	}).Debug("starting cache dispatcher")

	go c.run()

	return newClient(c), nil
}

// run is component E: the single long-lived dispatcher loop.
func (c *Cache) run() {
	defer close(c.done)
	ctx := context.Background()
	for {
		select {
		case <-c.shutdown:
			c.log().Debug("received shutdown signal")
			c.drain()
			return
		case req, ok := <-c.requests:
			if !ok {
				c.drain()
				return
			}
			c.dispatch(ctx, req)
		}
	}
}

// dispatch spawns a per-request task on the runtime so a slow decode never
// head-of-line-blocks a concurrent hit lookup for another path.
func (c *Cache) dispatch(ctx context.Context, req request) {
	switch r := req.(type) {
	case getRequest:
		c.rt.spawn(ctx, func() {
			result := c.handleGet(ctx, r.path)
			r.reply <- result
		})
	case preloadRequest:
		// Acknowledge acceptance before touching the filesystem
		// (spec.md §4.F.2 step 1), then continue loading in the
		// background on the runtime.
		r.reply <- preloadResult{}
		c.rt.spawn(ctx, func() {
			c.handlePreloadAsync(ctx, r.path)
		})
	case statsRequest:
		c.mu.Lock()
		entries := c.state.len()
		c.mu.Unlock()
		r.reply <- Stats{Entries: entries, Capacity: c.cfg.MaxImageCount}
	}
}

// drain lets already-spawned handler goroutines finish before the
// dispatcher exits, per spec.md §5's shutdown clause, then clears cache
// state, mirroring ferrite's Drop impl for CacheManager.
func (c *Cache) drain() {
	c.rt.wait()
	c.mu.Lock()
	defer c.mu.Unlock()
	for {
		_, h, ok := c.state.evictOldest()
		if !ok {
			break
		}
		h.Release()
	}
	c.log().Debug("cache manager shut down, resources cleared")
}
