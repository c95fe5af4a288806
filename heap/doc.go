// Package heap implements a user-space segment heap: a registry of
// independently sized byte segments with exact bytes-in-use accounting and a
// fail-fast error model.
//
// # Overview
//
// A Heap owns a collection of segments. Each segment is one contiguous byte
// buffer created and destroyed exclusively by the Heap. Callers hold
// generation-tagged SegmentRef handles; a handle stays valid no matter how
// many other segments are added or removed, and a stale handle (slot reused
// or freed) never resolves to live storage.
//
// Segments are usually consumed through one of two higher layers:
//
//   - package heap/owned: move-only handles that bind one object (or a
//     fixed-count array of objects) to one segment and guarantee
//     exactly-once disposal plus release.
//   - package heap/alloc: a stateless allocator adapter that lets the
//     arena-backed containers in heap/containers source their storage here.
//
// # Accounting
//
// UsedMemory reports the sum of the requested sizes of all live segments,
// scaled to the chosen Unit. It is an estimate of requested bytes, not of
// resident memory: allocator overhead and fragmentation are not modeled.
//
// # Element types
//
// Segment memory is untyped and never scanned by the garbage collector. A
// Go pointer stored inside a segment does not keep its referent alive: the
// referent can be collected while the segment still holds its address. The
// typed layers therefore require pointer-free element types — no pointers,
// slices, strings, maps, channels, functions, or interfaces at any nesting
// depth — and every allocation entry point enforces the rule, panicking
// with ErrPointerfulType for a type that violates it. Fixed-size inline
// data (arrays, integer handles) replaces pointer fields in element types.
//
// # Fault model
//
// Fallible operations inside the ownership layer (construction, indexed
// access) never propagate panics or errors through the allocation entry
// points. Construction failures are attached to the returned handle as a
// Fault. A Fault that is disposed while still armed terminates the process:
// it logs a short diagnostic, force-releases every segment of its heap so
// the storage unwinds to the operating system, and exits with the fault
// kind's status code. Callers acknowledge a fault with Defuse to opt out.
//
// # Concurrency
//
// A Heap has no internal synchronization. All operations are synchronous
// and run to completion; concurrent mutation from multiple goroutines is
// undefined and must be prevented by the caller, either with external
// mutual exclusion or by giving each worker its own Heap.
package heap
