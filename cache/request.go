package cache

// request is the tagged message type of component C (spec.md §3, §4.C).
// Each concrete type below carries its own one-shot reply channel so the
// reply is typed per case and there is never cross-talk between a Get's
// reply and a Preload's reply.
type request interface {
	isRequest()
}

// getResult is the payload of a Get reply: a retained Handle and no error,
// or no Handle and a structured Error.
type getResult struct {
	handle *Handle
	err    error
}

// getRequest asks the cache for a fully decoded image, blocking the caller
// until it is ready.
type getRequest struct {
	path  string
	reply chan getResult
}

func (getRequest) isRequest() {}

// preloadResult is the payload of a Preload reply: it signals acceptance
// only, never load completion (spec.md §4.C).
type preloadResult struct {
	err error
}

// preloadRequest asks the cache to ensure path is loaded, without the
// caller waiting for the decode.
type preloadRequest struct {
	path  string
	reply chan preloadResult
}

func (preloadRequest) isRequest() {}

// Stats reports point-in-time occupancy, mirroring async/loader.go's
// LoaderStats in spirit (component F's supplemented Stats() accessor, see
// SPEC_FULL.md §4).
type Stats struct {
	Entries  int
	Capacity int
}

// statsRequest asks the dispatcher for a consistent snapshot of cache
// occupancy, round-tripped through the same request channel so it never
// races with an in-flight insert/evict.
type statsRequest struct {
	reply chan Stats
}

func (statsRequest) isRequest() {}

// newOneShot constructs a buffered, single-slot reply channel. Buffering by
// one means a handler's send never blocks even if the caller has already
// given up (e.g. context cancellation), per spec.md §5's "cancellation"
// clause: "causes the handler's send to fail silently" becomes, in Go, "the
// send always succeeds into the buffer and is simply never read".
func newOneShot[T any]() chan T {
	return make(chan T, 1)
}
