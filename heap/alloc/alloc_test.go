package alloc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/internal/testutil"
)

// The adapter operates against the process-wide heap, so tests assert on
// deltas from the baseline rather than absolute totals.

// TestAllocator_RoundTrip tests allocate/deallocate accounting for a typed
// block.
func TestAllocator_RoundTrip(t *testing.T) {
	base := heap.Default().Bytes()
	var a Allocator[int64]

	s := a.Allocate(8)
	require.Len(t, s, 8)
	assert.Equal(t, base+64, heap.Default().Bytes(), "8 int64s are 64 bytes")

	for i := range s {
		s[i] = int64(i * i)
	}
	assert.Equal(t, int64(49), s[7])

	a.Deallocate(&s[0], 8)
	assert.Equal(t, base, heap.Default().Bytes())
}

// TestAllocator_ZeroAndNegativeCounts tests the degenerate sizes.
func TestAllocator_ZeroAndNegativeCounts(t *testing.T) {
	base := heap.Default().Bytes()
	var a Allocator[int]

	assert.Nil(t, a.Allocate(0))
	assert.Nil(t, a.Allocate(-1))
	assert.Equal(t, base, heap.Default().Bytes())

	a.Deallocate(nil, 0) // nil pointer is a no-op, not a failure
}

// TestAllocator_ZeroSizeElements tests the sizeof(T) == 0 path end to end:
// Allocate hands out runtime storage, Deallocate recognizes it as a no-op,
// and the heap's accounting never moves.
func TestAllocator_ZeroSizeElements(t *testing.T) {
	base := heap.Default().Bytes()
	var a Allocator[struct{}]

	s := a.Allocate(3)
	require.Len(t, s, 3)
	assert.Equal(t, base, heap.Default().Bytes(), "zero-size elements register no segment")

	a.Deallocate(&s[0], 3)
	assert.Equal(t, base, heap.Default().Bytes())
}

// TestAllocator_RejectsPointerBearingElements tests the pointer-free
// element rule at the adapter surface.
func TestAllocator_RejectsPointerBearingElements(t *testing.T) {
	var a Allocator[[]byte]
	defer func() {
		err, ok := recover().(error)
		require.True(t, ok, "expected an error panic")
		assert.ErrorIs(t, err, heap.ErrPointerfulType)
	}()
	a.Allocate(1)
}

// TestAllocator_CountBeyondMaxSizePanics tests the byte-size wraparound
// guard on huge element counts.
func TestAllocator_CountBeyondMaxSizePanics(t *testing.T) {
	var a Allocator[int64]
	assert.PanicsWithValue(t, ErrCountTooLarge, func() { a.Allocate(math.MaxInt/8 + 1) })
}

// TestAllocator_ForeignPointerIsFatal tests the allocation-consistency
// failure: the adapter refuses to guess which storage to release.
func TestAllocator_ForeignPointerIsFatal(t *testing.T) {
	var a Allocator[byte]
	foreign := make([]byte, 16)

	assert.PanicsWithValue(t, ErrForeignPointer, func() {
		a.Deallocate(&foreign[0], 16)
	})
}

// TestAllocator_ConstructDestroy tests placement construction and explicit
// teardown, including the Dispose hook.
func TestAllocator_ConstructDestroy(t *testing.T) {
	var a Allocator[testutil.Tracked]
	var tr testutil.DisposeTracker
	tid := tr.Handle()

	s := a.Allocate(2)
	a.Construct(&s[0], testutil.Tracked{Tracker: tid, ID: 1})
	a.Construct(&s[1], testutil.Tracked{Tracker: tid, ID: 2})
	assert.Equal(t, 2, s[1].ID)

	a.Destroy(&s[0])
	assert.Equal(t, 1, tr.Count())
	assert.Zero(t, s[0].ID, "destroyed slot resets to the zero value")

	a.Destroy(&s[1])
	assert.Equal(t, 2, tr.Count())

	a.Deallocate(&s[0], 2)
}

// TestAllocator_Stateless tests that adapter instances for the same element
// type are interchangeable.
func TestAllocator_Stateless(t *testing.T) {
	base := heap.Default().Bytes()
	var a, b Allocator[uint32]

	s := a.Allocate(4)
	b.Deallocate(&s[0], 4) // a different instance releases it
	assert.Equal(t, base, heap.Default().Bytes())
}

// TestAllocator_MaxSize tests the address-space bound semantics.
func TestAllocator_MaxSize(t *testing.T) {
	var i64 Allocator[int64]
	assert.Equal(t, math.MaxInt/8, i64.MaxSize())

	var b Allocator[byte]
	assert.Equal(t, math.MaxInt, b.MaxSize())

	var z Allocator[struct{}]
	assert.Equal(t, math.MaxInt, z.MaxSize())
}
