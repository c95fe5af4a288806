// Package owned provides move-only handles over heap segments. A handle is
// bound to exactly one segment and guarantees exactly-once finalization:
// Dispose on every contained element that implements heap.Disposer, then
// release of the segment. Moving a handle transfers that obligation; the
// moved-from handle becomes inert.
//
// Construction failures never propagate out of the allocation entry points.
// They are attached to the returned handle as a heap.Fault: the handle is
// still bound to whatever storage exists, possibly partially constructed,
// and the caller must check the fault before touching the object. An armed
// fault that reaches the handle's Drop terminates the process unless it was
// defused first.
//
// Element types must be pointer-free (see heap.PointerFree): segment memory
// is invisible to the garbage collector, so a pointer stored there would
// not keep its referent alive. Construction panics with
// heap.ErrPointerfulType otherwise.
package owned

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/heapkit/heap"
)

// Ptr is a move-only handle to a single object living inside one segment.
// Create it with New or NewWith; never copy a Ptr by value.
type Ptr[T any] struct {
	view    *T
	h       *heap.Heap
	seg     heap.SegmentRef
	fault   *heap.Fault
	moved   bool
	dropped bool
}

// New allocates a segment sized for one T and zero-constructs the object.
// T must be pointer-free.
func New[T any](h *heap.Heap) *Ptr[T] {
	heap.MustPointerFree[T]()
	view, seg := allocOne[T](h)
	return &Ptr[T]{view: view, h: h, seg: seg}
}

// NewWith allocates like New, then runs ctor on the fresh object. A ctor
// error does not unwind: the handle is returned with a BadConstruct fault
// attached and the object left as ctor abandoned it. Check Err or Fault
// before use.
func NewWith[T any](h *heap.Heap, ctor func(*T) error) *Ptr[T] {
	p := New[T](h)
	if ctor != nil {
		if err := ctor(p.view); err != nil {
			p.fault = heap.NewFault(h, heap.BadConstruct, fmt.Sprintf("constructing object: %v", err))
		}
	}
	return p
}

func allocOne[T any](h *heap.Heap) (*T, heap.SegmentRef) {
	var zero T
	seg, buf := h.Allocate(int(unsafe.Sizeof(zero)))
	if len(buf) == 0 {
		// Zero-size T: no segment storage to view.
		return new(T), seg
	}
	return (*T)(unsafe.Pointer(&buf[0])), seg
}

// Get returns the contained object. Panics on a moved-from or dropped
// handle.
func (p *Ptr[T]) Get() *T {
	p.mustLive("Get")
	return p.view
}

// Fault returns the handle's error slot, nil when construction succeeded.
func (p *Ptr[T]) Fault() *heap.Fault { return p.fault }

// Err returns the fault as an ordinary error, nil when none. Err does not
// defuse the fault.
func (p *Ptr[T]) Err() error { return p.fault.Err() }

// Move transfers ownership to a fresh handle. The source is marked moved:
// its Drop becomes a no-op and its fault is detached, so a moved-from
// handle can never trigger fail-fast on its own.
func (p *Ptr[T]) Move() *Ptr[T] {
	p.mustLive("Move")
	dst := &Ptr[T]{view: p.view, h: p.h, seg: p.seg, fault: p.fault}
	p.moved = true
	p.fault = nil
	return dst
}

// Drop finalizes a non-moved handle: Dispose on the object if implemented,
// release of the segment, then disposal of the fault slot (which fail-fasts
// if still armed). Idempotent; a no-op on moved-from handles.
func (p *Ptr[T]) Drop() {
	if p.moved || p.dropped {
		return
	}
	p.dropped = true
	disposeValue(p.view)
	_ = p.h.Release(p.seg) // stale only after FlushAll, benign
	f := p.fault
	p.fault = nil
	p.view = nil
	f.Dispose()
}

func (p *Ptr[T]) mustLive(op string) {
	if p.moved {
		panic("owned: " + op + " on moved-from handle")
	}
	if p.dropped {
		panic("owned: " + op + " on dropped handle")
	}
}

// disposeValue runs the element's Dispose hook when its type has one.
func disposeValue[T any](v *T) {
	if v == nil {
		return
	}
	if d, ok := any(v).(heap.Disposer); ok {
		d.Dispose()
	}
}
