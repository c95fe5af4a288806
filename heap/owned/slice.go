package owned

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/joshuapare/heapkit/heap"
)

// Slice is the array variant of Ptr: a move-only handle to a fixed count of
// T objects living inside one segment. The count is set at allocation time
// and carried with the handle.
type Slice[T any] struct {
	view    []T
	n       int
	h       *heap.Heap
	seg     heap.SegmentRef
	fault   *heap.Fault
	moved   bool
	dropped bool
}

// NewSlice allocates a segment sized for n objects of type T, all
// zero-constructed. T must be pointer-free. n is clamped to zero from
// below; a count whose byte size exceeds the address space is refused with
// a BadConstruct fault on an empty handle.
func NewSlice[T any](h *heap.Heap, n int) *Slice[T] {
	heap.MustPointerFree[T]()
	if n < 0 {
		n = 0
	}
	var zero T
	if sz := int(unsafe.Sizeof(zero)); sz > 0 && n > math.MaxInt/sz {
		return &Slice[T]{h: h, fault: heap.NewFault(h, heap.BadConstruct,
			fmt.Sprintf("element count %d exceeds the addressable maximum %d", n, math.MaxInt/sz))}
	}
	seg, buf := h.Allocate(n * int(unsafe.Sizeof(zero)))
	var view []T
	switch {
	case len(buf) > 0:
		view = unsafe.Slice((*T)(unsafe.Pointer(&buf[0])), n)
	case n > 0:
		// Zero-size T: elements occupy no segment storage.
		view = make([]T, n)
	}
	return &Slice[T]{view: view, n: n, h: h, seg: seg}
}

// NewSliceWith allocates like NewSlice, then runs ctor on each element in
// order. The first ctor error abandons construction of the remaining
// elements and attaches a BadConstruct fault to the returned handle; the
// handle stays bound to its storage. Check Err or Fault before use.
func NewSliceWith[T any](h *heap.Heap, n int, ctor func(int, *T) error) *Slice[T] {
	s := NewSlice[T](h, n)
	if ctor == nil {
		return s
	}
	for i := 0; i < s.n; i++ {
		if err := ctor(i, &s.view[i]); err != nil {
			s.fault = heap.NewFault(h, heap.BadConstruct,
				fmt.Sprintf("constructing element %d of %d: %v", i, s.n, err))
			break
		}
	}
	return s
}

// Len returns the recorded element count.
func (s *Slice[T]) Len() int { return s.n }

// Get returns the first element. Panics on an empty, moved-from, or
// dropped handle.
func (s *Slice[T]) Get() *T {
	s.mustLive("Get")
	if s.n == 0 {
		panic("owned: Get on empty slice")
	}
	return &s.view[0]
}

// At returns the i'th element. An index outside [0, Len) is refused with
// ErrIndexOutOfBounds; memory past the recorded count is never touched.
func (s *Slice[T]) At(i int) (*T, error) {
	s.mustLive("At")
	if i < 0 || i >= s.n {
		return nil, fmt.Errorf("%w: index %d outside [0,%d)", heap.ErrIndexOutOfBounds, i, s.n)
	}
	return &s.view[i], nil
}

// Fault returns the handle's error slot, nil when construction succeeded.
func (s *Slice[T]) Fault() *heap.Fault { return s.fault }

// Err returns the fault as an ordinary error, nil when none.
func (s *Slice[T]) Err() error { return s.fault.Err() }

// Move transfers ownership to a fresh handle, detaching the fault from the
// source. The moved-from handle's Drop is a no-op.
func (s *Slice[T]) Move() *Slice[T] {
	s.mustLive("Move")
	dst := &Slice[T]{view: s.view, n: s.n, h: s.h, seg: s.seg, fault: s.fault}
	s.moved = true
	s.fault = nil
	return dst
}

// Drop finalizes a non-moved handle: Dispose on each element (count
// cross-checked against the segment's byte size), release of the segment,
// then disposal of the fault slot. Idempotent.
func (s *Slice[T]) Drop() {
	if s.moved || s.dropped {
		return
	}
	s.dropped = true
	for i, n := 0, s.disposeCount(); i < n; i++ {
		disposeValue(&s.view[i])
	}
	_ = s.h.Release(s.seg)
	f := s.fault
	s.fault = nil
	s.view = nil
	f.Dispose()
}

// disposeCount re-derives the element count from the segment's byte size
// and element size; the smaller of it and the recorded count wins.
func (s *Slice[T]) disposeCount() int {
	n := s.n
	if n > len(s.view) {
		n = len(s.view)
	}
	var zero T
	sz := int(unsafe.Sizeof(zero))
	if sz == 0 {
		return n
	}
	if bytes, ok := s.h.SegmentSize(s.seg); ok {
		if derived := bytes / sz; derived < n {
			n = derived
		}
	}
	return n
}

func (s *Slice[T]) mustLive(op string) {
	if s.moved {
		panic("owned: " + op + " on moved-from handle")
	}
	if s.dropped {
		panic("owned: " + op + " on dropped handle")
	}
}
