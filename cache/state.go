package cache

import "container/list"

// state is the cache's entries/lru_list pair, component B of spec.md §3–§4.
// Every exported method on state must be called with the owning Cache's
// mutex held; state itself performs no locking (the lock is held by the
// caller so a hit's lookup+touch is atomic with respect to a concurrent
// insert, per spec.md §5).
//
// Invariant (I1-I4, spec.md §3): every path in entries appears exactly once
// in order, newest at the back, oldest at the front.
type state struct {
	entries map[string]*list.Element
	order   *list.List
}

// node is the payload of a list.Element in state.order.
type node struct {
	path   string
	handle *Handle
}

func newState() *state {
	return &state{
		entries: make(map[string]*list.Element),
		order:   list.New(),
	}
}

// lookup returns the resident handle for path, if any. It does not touch
// LRU recency; callers that want hit semantics call touch separately, per
// spec.md §4.B ("lookup" and "touch" are distinct accessors).
func (s *state) lookup(path string) (*Handle, bool) {
	el, ok := s.entries[path]
	if !ok {
		return nil, false
	}
	return el.Value.(*node).handle, true
}

// touch moves an existing path to the back (newest) of the LRU list. No-op
// if the path is not resident.
func (s *state) touch(path string) {
	el, ok := s.entries[path]
	if !ok {
		return
	}
	s.order.MoveToBack(el)
}

// insert replaces any prior mapping for path and places it at the back of
// the LRU list, restoring I1-I3. Returns the handle that was displaced, if
// the path was already resident (the caller is responsible for releasing
// it).
func (s *state) insert(path string, h *Handle) (displaced *Handle) {
	if el, ok := s.entries[path]; ok {
		displaced = el.Value.(*node).handle
		el.Value = &node{path: path, handle: h}
		s.order.MoveToBack(el)
		return displaced
	}
	el := s.order.PushBack(&node{path: path, handle: h})
	s.entries[path] = el
	return nil
}

// evictOldest removes the front (oldest) entry, if any, and returns its
// path and handle so the caller can release the handle outside the lock.
func (s *state) evictOldest() (path string, h *Handle, ok bool) {
	front := s.order.Front()
	if front == nil {
		return "", nil, false
	}
	n := front.Value.(*node)
	s.order.Remove(front)
	delete(s.entries, n.path)
	return n.path, n.handle, true
}

// len reports the number of resident entries.
func (s *state) len() int {
	return len(s.entries)
}

// paths returns the resident paths ordered oldest-to-newest. Test-only.
func (s *state) paths() []string {
	out := make([]string, 0, s.order.Len())
	for el := s.order.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(*node).path)
	}
	return out
}
