package cache

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// runtime is component D: a fixed-size worker pool bounding how many
// per-request handler goroutines may run concurrently. It is owned
// exclusively by one Cache and never shared across instances.
//
// Unlike the teacher's channel-fed FixedWorkerPool (async/loader.go), the
// bound is enforced with a weighted semaphore (golang.org/x/sync/semaphore),
// the same mechanism zip_cache.go uses to cap concurrent zip.OpenReader
// calls. Acquiring the semaphore happens inside the spawned goroutine, not
// in the caller, so the dispatcher can always hand off the next request —
// including a hit lookup on an unrelated path — even while every slot is
// held by a slow decode.
type runtime struct {
	sem *semaphore.Weighted
	wg  sync.WaitGroup
}

func newRuntime(workers int) *runtime {
	return &runtime{sem: semaphore.NewWeighted(int64(workers))}
}

// spawn hands fn to its own goroutine immediately; the goroutine then
// waits for a semaphore slot before running fn. Dispatch is therefore
// always non-blocking — the dispatcher loop is free to pull the next
// request off the channel, including a hit lookup on an unrelated path,
// while every prior slot is still occupied by a slow decode. Only the
// execution of fn, never its acceptance, is bounded to ThreadCount.
func (r *runtime) spawn(ctx context.Context, fn func()) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.sem.Acquire(ctx, 1); err != nil {
			return
		}
		defer r.sem.Release(1)
		fn()
	}()
}

// wait blocks until every spawned task has returned. Used during shutdown
// so already-spawned tasks run to completion before the runtime winds down
// (spec.md §5's shutdown clause).
func (r *runtime) wait() {
	r.wg.Wait()
}
