package owned

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/internal/testutil"
)

func captureExit(t *testing.T) *int {
	t.Helper()
	code := -1
	restore := heap.SetExitFunc(func(c int) { code = c })
	t.Cleanup(restore)
	return &code
}

// TestPtr_DropDisposesExactlyOnce tests destructor-then-release semantics
// for a single-object handle.
func TestPtr_DropDisposesExactlyOnce(t *testing.T) {
	h := heap.New()
	var tr testutil.DisposeTracker
	tid := tr.Handle()

	p := NewWith(h, func(v *testutil.Tracked) error {
		v.Tracker = tid
		v.ID = 42
		return nil
	})
	require.NoError(t, p.Err())
	assert.Equal(t, 42, p.Get().ID)
	assert.Greater(t, h.Bytes(), uint64(0), "allocation must be accounted")

	p.Drop()
	assert.Equal(t, 1, tr.Count(), "exactly one disposal")
	assert.Equal(t, uint64(0), h.Bytes(), "usage must return to baseline")

	p.Drop() // idempotent
	assert.Equal(t, 1, tr.Count())
}

// TestPtr_ZeroConstruction tests the default-construction entry point.
func TestPtr_ZeroConstruction(t *testing.T) {
	h := heap.New()
	p := New[int64](h)
	require.NoError(t, p.Err())
	assert.Equal(t, int64(0), *p.Get())
	*p.Get() = 7
	assert.Equal(t, int64(7), *p.Get())
	p.Drop()
	assert.Equal(t, uint64(0), h.Bytes())
}

// TestPtr_MoveTransfersOwnership tests that only the destination scope's
// drop finalizes, and exactly once.
func TestPtr_MoveTransfersOwnership(t *testing.T) {
	h := heap.New()
	var tr testutil.DisposeTracker
	tid := tr.Handle()

	inner := func() *Ptr[testutil.Tracked] {
		p := NewWith(h, func(v *testutil.Tracked) error {
			v.Tracker = tid
			return nil
		})
		moved := p.Move()
		p.Drop() // moved-from: must not dispose or release
		assert.Equal(t, 0, tr.Count())
		assert.Greater(t, h.Bytes(), uint64(0))
		return moved
	}

	q := inner()
	assert.Equal(t, 0, tr.Count(), "still owned by the destination")
	q.Drop()
	assert.Equal(t, 1, tr.Count())
	assert.Equal(t, uint64(0), h.Bytes())
}

// TestPtr_AccessAfterMovePanics tests the spent-handle guards.
func TestPtr_AccessAfterMovePanics(t *testing.T) {
	h := heap.New()
	p := New[int](h)
	q := p.Move()
	defer q.Drop()

	assert.PanicsWithValue(t, "owned: Get on moved-from handle", func() { p.Get() })
	assert.PanicsWithValue(t, "owned: Move on moved-from handle", func() { p.Move() })
}

// TestPtr_RejectsPointerBearingElements tests that segment memory never
// holds Go pointers: the collector does not scan segments, so a pointee
// referenced only from one could be reclaimed out from under the handle.
func TestPtr_RejectsPointerBearingElements(t *testing.T) {
	h := heap.New()
	type labeled struct{ name *string }

	assertPanicsPointerful(t, func() { New[labeled](h) })
	assert.Equal(t, uint64(0), h.Bytes(), "rejected allocations leave no storage behind")
}

func assertPanicsPointerful(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		err, ok := r.(error)
		require.True(t, ok, "expected a pointer-bearing element type to panic, got %v", r)
		assert.ErrorIs(t, err, heap.ErrPointerfulType)
	}()
	fn()
}

// TestPtr_ConstructionFailureAttachesFault tests that a ctor error is
// captured in the handle's error slot instead of propagating.
func TestPtr_ConstructionFailureAttachesFault(t *testing.T) {
	h := heap.New()

	p := NewWith(h, func(v *int) error {
		return errors.New("resource unavailable")
	})
	require.NotNil(t, p.Fault())
	assert.True(t, p.Fault().Armed())
	assert.Equal(t, heap.BadConstruct, p.Fault().Kind())
	assert.ErrorIs(t, p.Err(), heap.ErrBadConstruct)
	assert.Greater(t, h.Bytes(), uint64(0), "handle stays bound to its storage")

	p.Fault().Defuse()
	p.Drop()
	assert.Equal(t, uint64(0), h.Bytes())
}

// TestPtr_UndefusedFaultFailsFastOnDrop tests the fail-fast exit status for
// construction failures.
func TestPtr_UndefusedFaultFailsFastOnDrop(t *testing.T) {
	code := captureExit(t)
	h := heap.New()

	p := NewWith(h, func(v *int) error { return errors.New("boom") })
	p.Drop()

	assert.Equal(t, 2, *code, "construction failure exits with status 2")
	assert.Equal(t, uint64(0), h.Bytes(), "exit path flushes the heap")
}

// TestPtr_MoveDetachesFault tests that a moved-from handle can never
// trigger fail-fast; the obligation travels with the destination.
func TestPtr_MoveDetachesFault(t *testing.T) {
	code := captureExit(t)
	h := heap.New()

	p := NewWith(h, func(v *int) error { return errors.New("boom") })
	q := p.Move()
	assert.Nil(t, p.Fault(), "fault detached from the source")
	require.NotNil(t, q.Fault())

	p.Drop()
	assert.Equal(t, -1, *code, "moved-from drop is inert")

	q.Fault().Defuse()
	q.Drop()
	assert.Equal(t, -1, *code)
}

// TestPtr_FaultOutlivesHandle tests that arming is tracked per slot: a
// fault extracted before the handle is finalized still fail-fasts on its
// own disposal.
func TestPtr_FaultOutlivesHandle(t *testing.T) {
	code := captureExit(t)
	h := heap.New()

	p := NewWith(h, func(v *int) error { return errors.New("boom") })
	f := p.Fault()
	f.Defuse() // keep the handle's own drop silent
	p.Drop()
	assert.Equal(t, -1, *code)

	g := heap.NewFault(h, heap.BadConstruct, "detached")
	g.Dispose()
	assert.Equal(t, 2, *code, "per-slot arming survives handle lifetime")
}
