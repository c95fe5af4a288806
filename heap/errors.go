package heap

import "errors"

var (
	// ErrUnknownSegment indicates a release (or lookup) of a segment handle
	// that is not currently registered: either never issued by this heap or
	// already released. Benign on the release path.
	ErrUnknownSegment = errors.New("heap: unknown or stale segment handle")

	// ErrBadConstruct indicates that constructing an object inside a fresh
	// segment failed. The owning handle still exists and is bound to its
	// storage; callers must check before use.
	ErrBadConstruct = errors.New("heap: object construction failed")

	// ErrIndexOutOfBounds indicates an indexed access beyond the recorded
	// element count of an array handle. The access is refused; memory past
	// the bound is never touched.
	ErrIndexOutOfBounds = errors.New("heap: index out of bounds")

	// ErrPointerfulType indicates an attempt to place values of a type that
	// embeds Go pointers into segment memory. Segments are not scanned by
	// the garbage collector, so such a pointer would not keep its referent
	// alive. Panicked (wrapped with the offending type) by the typed
	// allocation entry points.
	ErrPointerfulType = errors.New("heap: element type contains Go pointers")
)
