package heap

import "unsafe"

// SegmentRef is a stable handle to one live segment. It pairs a slot index
// with the generation the slot carried when the segment was registered, so
// a ref obtained before unrelated segments were added or removed still
// resolves, while a ref to a released (or recycled) slot fails closed.
//
// The zero SegmentRef is invalid and never resolves.
type SegmentRef struct {
	index uint32
	gen   uint32
}

// Valid reports whether the ref was produced by an Allocate call. It does
// not check liveness; use Heap.SegmentSize for that.
func (r SegmentRef) Valid() bool { return r.gen != 0 }

// slot is one entry in the heap's segment table. Released slots keep their
// generation so the next occupant gets a distinct one.
type slot struct {
	buf  []byte
	size int
	gen  uint32
	free func() error // backing-specific release, nil for empty segments
	live bool
}

// claimSlot returns the index and fresh generation for the next segment,
// preferring recycled slots from the free list.
func (h *Heap) claimSlot() (uint32, uint32) {
	if n := len(h.freeList); n > 0 {
		idx := h.freeList[n-1]
		h.freeList = h.freeList[:n-1]
		return idx, h.slots[idx].gen + 1
	}
	h.slots = append(h.slots, slot{})
	return uint32(len(h.slots) - 1), 1
}

// resolve maps a ref to its slot, refusing stale or foreign refs.
func (h *Heap) resolve(ref SegmentRef) (*slot, bool) {
	if ref.gen == 0 || int(ref.index) >= len(h.slots) {
		return nil, false
	}
	s := &h.slots[ref.index]
	if !s.live || s.gen != ref.gen {
		return nil, false
	}
	return s, true
}

// RefForBase returns the ref of the live segment whose storage starts at p.
// The allocator adapter uses this to map a container's base pointer back to
// the segment it must release.
func (h *Heap) RefForBase(p unsafe.Pointer) (SegmentRef, bool) {
	for i := range h.slots {
		s := &h.slots[i]
		if s.live && len(s.buf) > 0 && unsafe.Pointer(&s.buf[0]) == p {
			return SegmentRef{index: uint32(i), gen: s.gen}, true
		}
	}
	return SegmentRef{}, false
}
