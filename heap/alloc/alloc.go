// Package alloc adapts the segment heap to the allocate / construct /
// destroy / deallocate capability set generic containers expect, so the
// containers in heap/containers can source their backing storage from the
// process-wide heap instead of the Go runtime allocator.
package alloc

import (
	"math"
	"unsafe"

	"github.com/joshuapare/heapkit/heap"
)

// Allocator sources storage for elements of type T from heap.Default. It is
// stateless: the zero value is ready to use, and any two Allocator[T]
// values are interchangeable, which keeps containers free to copy or embed
// their allocator.
type Allocator[T any] struct{}

// Allocate registers a fresh segment sized for n elements and returns the
// typed view over it. T must be pointer-free (see heap.PointerFree). n <= 0
// returns nil; a count beyond MaxSize panics with ErrCountTooLarge. Element
// types of size zero get a runtime-allocated slice, since they occupy no
// segment storage; Deallocate recognizes them as a no-op.
func (a Allocator[T]) Allocate(n int) []T {
	if n <= 0 {
		return nil
	}
	heap.MustPointerFree[T]()
	var zero T
	sz := int(unsafe.Sizeof(zero))
	if sz == 0 {
		return make([]T, n)
	}
	if n > a.MaxSize() {
		panic(ErrCountTooLarge)
	}
	_, buf := heap.Default().Allocate(n * sz)
	return unsafe.Slice((*T)(unsafe.Pointer(&buf[0])), n)
}

// Deallocate releases the segment whose storage starts at p, which must be
// the base pointer of a slice returned by Allocate. A pointer the heap does
// not recognize is an allocation-consistency failure the adapter cannot
// repair, and panics with ErrForeignPointer. The element count n is part of
// the capability contract but is not needed to locate the segment.
func (Allocator[T]) Deallocate(p *T, n int) {
	if p == nil {
		return
	}
	var zero T
	if unsafe.Sizeof(zero) == 0 {
		// Zero-size slices come from the runtime, not a segment.
		return
	}
	h := heap.Default()
	ref, ok := h.RefForBase(unsafe.Pointer(p))
	if !ok {
		panic(ErrForeignPointer)
	}
	_ = h.Release(ref)
}

// Construct places v into the slot at p.
func (Allocator[T]) Construct(p *T, v T) { *p = v }

// Destroy tears down the element at p: Dispose when T implements
// heap.Disposer, then reset to the zero value.
func (Allocator[T]) Destroy(p *T) {
	if p == nil {
		return
	}
	if d, ok := any(p).(heap.Disposer); ok {
		d.Dispose()
	}
	var zero T
	*p = zero
}

// MaxSize returns the address-space bound divided by the element size,
// matching what generic containers expect from their storage provider.
func (Allocator[T]) MaxSize() int {
	var zero T
	sz := int(unsafe.Sizeof(zero))
	if sz == 0 {
		return math.MaxInt
	}
	return math.MaxInt / sz
}
