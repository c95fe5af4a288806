package heap

import (
	"log/slog"

	"github.com/joshuapare/heapkit/internal/membuf"
)

// DefaultMmapThreshold is the segment size, in bytes, at or above which New
// prefers anonymous-mmap backing on platforms that support it. Segments
// below the threshold come from the Go runtime allocator.
const DefaultMmapThreshold = 1 << 20

// Disposer is implemented by element types that hold resources needing
// explicit teardown. The ownership layer and the allocator adapter invoke
// Dispose once per element during finalization.
type Disposer interface {
	Dispose()
}

// Heap is a registry of independently sized byte segments plus a running
// total of requested bytes in use. It is the single authority that creates
// and destroys its segments. Not safe for concurrent use; see the package
// documentation.
type Heap struct {
	slots    []slot
	freeList []uint32
	inUse    uint64
	logger   *slog.Logger
	mmapMin  int
}

// Option configures a Heap at construction time.
type Option func(*Heap)

// WithLogger attaches a logger. The heap logs one debug line per segment
// release and uses the logger for the fail-fast diagnostic. Without a
// logger, releases are silent and fail-fast falls back to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(h *Heap) { h.logger = l }
}

// WithMmapThreshold sets the minimum segment size backed by anonymous mmap
// on unix platforms. n <= 0 disables mmap backing entirely.
func WithMmapThreshold(n int) Option {
	return func(h *Heap) { h.mmapMin = n }
}

// New creates an empty heap.
func New(opts ...Option) *Heap {
	h := &Heap{mmapMin: DefaultMmapThreshold}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// defaultHeap is the process-wide store used by the allocator adapter and,
// as a fallback, by the fail-fast path. Lazily created; no locking, per the
// single-threaded contract.
var defaultHeap *Heap

// Default returns the process-wide heap, creating it on first use.
func Default() *Heap {
	if defaultHeap == nil {
		defaultHeap = New()
	}
	return defaultHeap
}

// Allocate registers a new segment of size bytes and returns its handle
// together with the backing buffer. size is clamped to zero from below; a
// zero-size segment has a nil buffer but is registered and refcounted like
// any other. Allocate itself never fails: an out-of-memory condition in the
// backing provider aborts the process and is not modeled as an error.
func (h *Heap) Allocate(size int) (SegmentRef, []byte) {
	if size < 0 {
		size = 0
	}
	buf, free := h.newBacking(size)
	idx, gen := h.claimSlot()
	h.slots[idx] = slot{buf: buf, size: size, gen: gen, free: free, live: true}
	h.inUse += uint64(size)
	return SegmentRef{index: idx, gen: gen}, buf
}

// newBacking obtains size bytes from the configured provider. Large
// segments go through anonymous mmap where available so their pages return
// to the operating system immediately on release; everything else (and any
// mmap failure) uses the Go runtime allocator.
func (h *Heap) newBacking(size int) ([]byte, func() error) {
	if size == 0 {
		return nil, nil
	}
	if h.mmapMin > 0 && size >= h.mmapMin {
		if buf, free, err := membuf.Map(size); err == nil {
			return buf, free
		}
	}
	return membuf.Make(size)
}

// Release deregisters the segment, decrements bytes-in-use by its size, and
// returns its storage to the backing provider. An unknown or stale ref is
// benign and reports ErrUnknownSegment; nothing is decremented.
func (h *Heap) Release(ref SegmentRef) error {
	if _, ok := h.resolve(ref); !ok {
		return ErrUnknownSegment
	}
	h.releaseSlot(ref.index)
	return nil
}

func (h *Heap) releaseSlot(idx uint32) {
	s := &h.slots[idx]
	h.inUse -= uint64(s.size)
	if s.free != nil {
		if err := s.free(); err != nil && h.logger != nil {
			h.logger.Warn("heap: backing release failed", "bytes", s.size, "err", err)
		}
	}
	if h.logger != nil {
		h.logger.Debug("heap: segment released", "bytes", s.size)
	}
	s.buf = nil
	s.free = nil
	s.size = 0
	s.live = false // generation stays, so stale refs fail closed
	h.freeList = append(h.freeList, idx)
}

// UsedMemory returns bytes-in-use scaled by unit. This is the sum of
// requested segment sizes, not resident memory.
func (h *Heap) UsedMemory(u Unit) float64 {
	if u == 0 {
		u = Byte
	}
	return float64(h.inUse) / float64(u)
}

// Bytes returns the exact bytes-in-use total.
func (h *Heap) Bytes() uint64 { return h.inUse }

// Segments returns the number of live segments.
func (h *Heap) Segments() int { return len(h.slots) - len(h.freeList) }

// SegmentSize returns the requested byte size of a live segment.
func (h *Heap) SegmentSize(ref SegmentRef) (int, bool) {
	s, ok := h.resolve(ref)
	if !ok {
		return 0, false
	}
	return s.size, true
}

// FlushAll force-releases every live segment and zeroes bytes-in-use. No
// per-object disposal runs. This is the last-resort cleanup used by the
// fail-fast exit path and should never be called during ordinary operation:
// every outstanding SegmentRef becomes stale.
func (h *Heap) FlushAll() {
	for i := range h.slots {
		if h.slots[i].live {
			h.releaseSlot(uint32(i))
		}
	}
	h.inUse = 0
}
