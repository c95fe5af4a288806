// Package testutil provides shared helpers for resource-lifecycle tests.
package testutil

// trackers holds every registered DisposeTracker. Tracked values carry an
// index into it rather than a pointer, because values placed in segment
// memory must be pointer-free.
var trackers []*DisposeTracker

// DisposeTracker counts Dispose calls so tests can assert exactly-once
// finalization.
type DisposeTracker struct {
	count int
}

// Count returns the number of Dispose calls recorded so far.
func (t *DisposeTracker) Count() int { return t.count }

// Inc records one disposal.
func (t *DisposeTracker) Inc() { t.count++ }

// Handle registers the tracker and returns the identifier Tracked values
// carry. Zero means untracked.
func (t *DisposeTracker) Handle() int32 {
	trackers = append(trackers, t)
	return int32(len(trackers))
}

// Tracked is an element type whose Dispose reports to a shared tracker.
// The zero value (as left by an abandoned construction) disposes silently.
type Tracked struct {
	Tracker int32
	ID      int
}

// Dispose records the teardown with the tracker, if any.
func (t Tracked) Dispose() {
	if t.Tracker > 0 {
		trackers[t.Tracker-1].Inc()
	}
}
