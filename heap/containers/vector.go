// Package containers provides a small arena-backed container family:
// growable vectors, byte and UTF-16 strings, and a linked list whose
// backing storage all comes from the process-wide segment heap through the
// heap/alloc adapter. They are drop-in replacements for ad-hoc slices and
// lists in code that wants heap-accounted storage.
package containers

import (
	"fmt"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/alloc"
)

const minVectorCap = 4

// Vector is a growable array whose backing storage is one heap segment at a
// time. Growth doubles capacity, moves the elements into a fresh segment,
// and releases the old one, so the heap's bytes-in-use always equals the
// live backing storage.
type Vector[T any] struct {
	mem  alloc.Allocator[T]
	data []T // capacity view into the current segment, nil when unbacked
	n    int
}

// NewVector returns an empty vector with no backing storage yet. The
// element type must be pointer-free; see heap.PointerFree.
func NewVector[T any]() *Vector[T] {
	heap.MustPointerFree[T]()
	return &Vector[T]{}
}

// Len returns the number of constructed elements.
func (v *Vector[T]) Len() int { return v.n }

// Cap returns the capacity of the current backing segment.
func (v *Vector[T]) Cap() int { return len(v.data) }

// Append constructs x at the end, growing the backing segment as needed.
func (v *Vector[T]) Append(x T) {
	if v.n == len(v.data) {
		v.grow(v.n + 1)
	}
	v.mem.Construct(&v.data[v.n], x)
	v.n++
}

// At returns the i'th element, refusing indexes outside [0, Len) with
// ErrIndexOutOfBounds.
func (v *Vector[T]) At(i int) (*T, error) {
	if i < 0 || i >= v.n {
		return nil, fmt.Errorf("%w: index %d outside [0,%d)", heap.ErrIndexOutOfBounds, i, v.n)
	}
	return &v.data[i], nil
}

// Clear destroys every element but keeps the backing storage for reuse.
func (v *Vector[T]) Clear() {
	for i := 0; i < v.n; i++ {
		v.mem.Destroy(&v.data[i])
	}
	v.n = 0
}

// Shrink reallocates the backing storage down to exactly Len elements and
// releases the excess. A zero-length vector drops its storage entirely.
func (v *Vector[T]) Shrink() {
	if v.n == len(v.data) {
		return
	}
	if v.n == 0 {
		v.dropStorage()
		return
	}
	nd := v.mem.Allocate(v.n)
	copy(nd, v.data[:v.n])
	v.mem.Deallocate(&v.data[0], len(v.data))
	v.data = nd
}

// Release destroys all elements and returns the backing storage to the
// heap. The vector is empty and reusable afterwards.
func (v *Vector[T]) Release() {
	v.Clear()
	v.dropStorage()
}

func (v *Vector[T]) dropStorage() {
	if v.data != nil {
		v.mem.Deallocate(&v.data[0], len(v.data))
		v.data = nil
	}
}

// grow moves the elements into a segment of at least need capacity. The old
// storage is released without per-element Destroy: the elements moved, they
// did not end their lifetime.
func (v *Vector[T]) grow(need int) {
	newCap := len(v.data) * 2
	if newCap < minVectorCap {
		newCap = minVectorCap
	}
	for newCap < need {
		newCap *= 2
	}
	nd := v.mem.Allocate(newCap)
	if v.data != nil {
		copy(nd, v.data[:v.n])
		v.mem.Deallocate(&v.data[0], len(v.data))
	}
	v.data = nd
}
