package pixbuf

import "sync/atomic"

// Storage is a read-only contiguous view of pixel elements.
type Storage[T any] interface {
	Pixels() []T
}

// MutableStorage is a Storage that also hands out a writable view.
type MutableStorage[T any] interface {
	Storage[T]
	MutablePixels() []T
}

func storageLen[T any](s Storage[T]) int {
	if s == nil {
		return 0
	}
	return len(s.Pixels())
}

// Owned is a heap block owned by the buffer that holds it.
type Owned[T any] struct {
	data []T
}

// NewOwned allocates n zeroed elements.
func NewOwned[T any](n int) Owned[T] {
	return Owned[T]{data: make([]T, n)}
}

// Pixels returns the whole block.
func (o Owned[T]) Pixels() []T { return o.data }

// MutablePixels returns the whole block for writing.
func (o Owned[T]) MutablePixels() []T { return o.data }

// Slice is a caller-owned slice borrowed for writing. A fixed-size array
// can be used through Slice[T](arr[:]).
type Slice[T any] []T

// Pixels returns the slice itself.
func (s Slice[T]) Pixels() []T { return s }

// MutablePixels returns the slice itself. Writes are visible to the caller.
func (s Slice[T]) MutablePixels() []T { return s }

// ReadOnly is a caller-owned slice borrowed for reading only.
type ReadOnly[T any] struct {
	s []T
}

// Borrow wraps s as read-only storage.
func Borrow[T any](s []T) ReadOnly[T] {
	return ReadOnly[T]{s: s}
}

// Pixels returns the borrowed slice. Callers must not write through it.
func (r ReadOnly[T]) Pixels() []T { return r.s }

// Growable is an owned block that can change length.
//
// Shrinking below the extent of a Buffer viewing it makes that Buffer's
// accesses panic; resize only while no Buffer depends on the old length.
type Growable[T any] struct {
	data []T
}

// NewGrowable allocates n zeroed elements with room for capacity.
func NewGrowable[T any](n, capacity int) *Growable[T] {
	return &Growable[T]{data: make([]T, n, max(n, capacity))}
}

// Pixels returns the current elements. The slice is invalidated by a later
// Reserve or Resize that reallocates.
func (g *Growable[T]) Pixels() []T { return g.data }

// MutablePixels returns the current elements for writing.
func (g *Growable[T]) MutablePixels() []T { return g.data }

// Len returns the current number of elements.
func (g *Growable[T]) Len() int { return len(g.data) }

// Cap returns the current capacity.
func (g *Growable[T]) Cap() int { return cap(g.data) }

// Reserve ensures room for n more elements without reallocating.
func (g *Growable[T]) Reserve(n int) {
	if n <= cap(g.data)-len(g.data) {
		return
	}
	grown := make([]T, len(g.data), len(g.data)+n)
	copy(grown, g.data)
	g.data = grown
}

// Resize sets the length to n, zero-filling new elements.
func (g *Growable[T]) Resize(n int) {
	if n <= len(g.data) {
		clear(g.data[n:])
		g.data = g.data[:n]
		return
	}
	g.Reserve(n - len(g.data))
	old := len(g.data)
	g.data = g.data[:n]
	clear(g.data[old:])
}

// Shared is a reference-counted block. Copies of a Shared value made with
// Retain share the same elements; writes through any of them are visible to
// all. Copy-on-write is available through Unique.
//
// Thread safety: the reference count is atomic. Element access needs
// external synchronization.
type Shared[T any] struct {
	block *sharedBlock[T]
}

type sharedBlock[T any] struct {
	data []T
	refs atomic.Int64
}

// NewShared takes ownership of data with a reference count of one.
func NewShared[T any](data []T) Shared[T] {
	b := &sharedBlock[T]{data: data}
	b.refs.Store(1)
	return Shared[T]{block: b}
}

// Pixels returns the shared elements, or nil once the last reference is
// released.
func (s Shared[T]) Pixels() []T { return s.block.data }

// MutablePixels returns the shared elements for writing. Writes are visible
// through every handle; call Unique first for a private copy.
func (s Shared[T]) MutablePixels() []T { return s.block.data }

// Retain adds a reference and returns a handle to the same block.
func (s Shared[T]) Retain() Shared[T] {
	s.block.refs.Add(1)
	return s
}

// Release drops a reference. It reports true when the last reference is
// gone, after which the elements are no longer reachable through any handle.
func (s Shared[T]) Release() bool {
	if s.block.refs.Add(-1) == 0 {
		s.block.data = nil
		return true
	}
	return false
}

// Refs returns the current reference count.
func (s Shared[T]) Refs() int64 {
	return s.block.refs.Load()
}

// Unique returns s itself if it holds the only reference. Otherwise it
// copies the elements into a new block, releases s, and returns the copy.
func (s Shared[T]) Unique() Shared[T] {
	if s.block.refs.Load() == 1 {
		return s
	}
	data := make([]T, len(s.block.data))
	copy(data, s.block.data)
	s.Release()
	return NewShared(data)
}
