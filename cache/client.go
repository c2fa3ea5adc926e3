package cache

import (
	"context"
	"sync"
)

var errDispatcherGone = errDescribe("cache dispatcher is gone")

// Client is component G: the owned, cloneable façade the foreground
// thread uses to talk to the cache. It never runs cache work itself; it
// only translates blocking calls into message sends and reply receives.
type Client struct {
	c    *Cache
	once *sync.Once
}

func newClient(c *Cache) *Client {
	return &Client{c: c, once: &sync.Once{}}
}

// Clone returns a new handle to the same underlying cache. Cloning is
// cheap: it shares the request channel and the shutdown root.
func (cl *Client) Clone() *Client {
	return &Client{c: cl.c, once: cl.once}
}

// GetImage synchronously returns the decoded image at path, loading and
// caching it first on a miss. The caller must Release the returned Handle.
func (cl *Client) GetImage(ctx context.Context, path string) (*Handle, error) {
	reply := newOneShot[getResult]()
	if err := cl.send(ctx, getRequest{path: path, reply: reply}); err != nil {
		return nil, err
	}
	select {
	case res := <-reply:
		if res.err != nil {
			return nil, res.err
		}
		return res.handle, nil
	case <-cl.c.done:
		return nil, newError(ErrUnresponsive, path, errDispatcherGone)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// CacheImage asks the cache to pre-warm path. It returns as soon as the
// cache accepts the request, before the decode completes (spec.md §4.G).
func (cl *Client) CacheImage(ctx context.Context, path string) error {
	reply := newOneShot[preloadResult]()
	if err := cl.send(ctx, preloadRequest{path: path, reply: reply}); err != nil {
		return err
	}
	select {
	case res := <-reply:
		return res.err
	case <-cl.c.done:
		return newError(ErrUnresponsive, path, errDispatcherGone)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats reports a point-in-time snapshot of cache occupancy.
func (cl *Client) Stats(ctx context.Context) (Stats, error) {
	reply := newOneShot[Stats]()
	if err := cl.send(ctx, statsRequest{reply: reply}); err != nil {
		return Stats{}, err
	}
	select {
	case s := <-reply:
		return s, nil
	case <-cl.c.done:
		return Stats{}, newError(ErrUnresponsive, "", errDispatcherGone)
	case <-ctx.Done():
		return Stats{}, ctx.Err()
	}
}

// send delivers req to the dispatcher, failing with ErrShutDown if the
// dispatcher has already exited rather than blocking forever.
func (cl *Client) send(ctx context.Context, req request) error {
	select {
	case cl.c.requests <- req:
		return nil
	case <-cl.c.done:
		return newError(ErrShutDown, "", errDispatcherGone)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close shuts down the cache: the dispatcher stops accepting new requests,
// already-spawned handlers run to completion, then resident handles are
// released. Close is idempotent and safe to call from any clone; every
// clone shares one shutdown root (spec.md §9's "pick one ownership root").
// It blocks until shutdown completes.
func (cl *Client) Close() {
	cl.once.Do(func() {
		close(cl.c.shutdown)
	})
	<-cl.c.done
}
