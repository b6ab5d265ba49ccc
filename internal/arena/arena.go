// Package arena provides an index-based slot store with generation-tagged
// handles. A handle taken from a slot that has since been freed (and possibly
// reused) no longer resolves, so callers can detect stale references instead
// of dereferencing them.
package arena

import (
	"fmt"
	"iter"
)

// Handle identifies a slot in an Arena. The low 32 bits hold the slot index,
// the high 32 bits the generation the slot had when the value was inserted.
// The zero Handle never resolves.
type Handle uint64

// NewHandle packs a slot index and generation into a Handle.
func NewHandle(index, gen uint32) Handle {
	return Handle(uint64(gen)<<32 | uint64(index))
}

// Index returns the slot index.
func (h Handle) Index() uint32 { return uint32(h) }

// Gen returns the generation tag.
func (h Handle) Gen() uint32 { return uint32(h >> 32) }

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool { return h == 0 }

func (h Handle) String() string {
	if h == 0 {
		return "none"
	}
	return fmt.Sprintf("%dv%d", h.Index(), h.Gen())
}

type slot[T any] struct {
	value T
	gen   uint32
	live  bool
}

// Arena stores values of type T in reusable slots.
// It is not safe for concurrent use.
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32
	live  int
}

// New creates an empty arena with room for capacity values.
func New[T any](capacity int) *Arena[T] {
	return &Arena[T]{
		slots: make([]slot[T], 0, capacity),
	}
}

// Insert stores v in a free slot and returns its handle.
func (a *Arena[T]) Insert(v T) Handle {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot[T]{})
	}

	s := &a.slots[idx]
	s.gen++
	if s.gen == 0 {
		// Wrapped: skip zero so NewHandle(0, 0) stays invalid.
		s.gen = 1
	}
	s.value = v
	s.live = true
	a.live++
	return NewHandle(idx, s.gen)
}

// Get returns a pointer to the value behind h, or nil if h is stale.
// The pointer is valid until the next Insert.
func (a *Arena[T]) Get(h Handle) *T {
	idx := h.Index()
	if h.IsZero() || int(idx) >= len(a.slots) {
		return nil
	}
	s := &a.slots[idx]
	if !s.live || s.gen != h.Gen() {
		return nil
	}
	return &s.value
}

// Contains reports whether h refers to a live value.
func (a *Arena[T]) Contains(h Handle) bool {
	return a.Get(h) != nil
}

// Remove frees the slot behind h and returns the value it held.
// Removing a stale handle is a no-op and reports false.
func (a *Arena[T]) Remove(h Handle) (T, bool) {
	var zero T
	if a.Get(h) == nil {
		return zero, false
	}
	idx := h.Index()
	s := &a.slots[idx]
	v := s.value
	s.value = zero
	s.live = false
	a.free = append(a.free, idx)
	a.live--
	return v, true
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int { return a.live }

// All yields every live handle and value in slot order.
func (a *Arena[T]) All() iter.Seq2[Handle, *T] {
	return func(yield func(Handle, *T) bool) {
		for i := range a.slots {
			s := &a.slots[i]
			if !s.live {
				continue
			}
			if !yield(NewHandle(uint32(i), s.gen), &s.value) {
				return
			}
		}
	}
}

// Clear frees every slot. Handles issued before Clear stay stale afterwards.
func (a *Arena[T]) Clear() {
	var zero T
	a.free = a.free[:0]
	for i := len(a.slots) - 1; i >= 0; i-- {
		s := &a.slots[i]
		s.value = zero
		s.live = false
		a.free = append(a.free, uint32(i))
	}
	a.live = 0
}
