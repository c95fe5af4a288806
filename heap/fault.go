package heap

import (
	"fmt"
	"log/slog"
	"os"
)

// FaultKind classifies a Fault.
type FaultKind uint8

const (
	// BadConstruct: constructing an object inside a fresh segment failed.
	BadConstruct FaultKind = iota + 1
	// IndexOutOfBounds: an indexed access exceeded the recorded count.
	IndexOutOfBounds
)

func (k FaultKind) String() string {
	switch k {
	case BadConstruct:
		return "bad-construct"
	case IndexOutOfBounds:
		return "index-out-of-bounds"
	}
	return "unknown"
}

// Code returns the process exit status used when a fault of this kind goes
// unacknowledged.
func (k FaultKind) Code() int {
	switch k {
	case BadConstruct:
		return 2
	case IndexOutOfBounds:
		return 3
	}
	return 1
}

// Fault records a failure that could not be propagated as an ordinary error
// return. It starts armed: if it is disposed while still armed, the process
// terminates (short diagnostic, all segments of the owning heap flushed,
// exit with the kind's code). Defuse acknowledges the fault and makes
// disposal a no-op.
//
// Arming is tracked per fault, not per handle: a fault extracted from a
// handle stays armed after the handle is moved or finalized. All methods
// are safe on a nil *Fault, which behaves as "no fault".
type Fault struct {
	kind  FaultKind
	msg   string
	armed bool
	owner *Heap
}

// NewFault creates an armed fault bound to the heap whose segments must be
// flushed should it trigger fail-fast.
func NewFault(h *Heap, kind FaultKind, msg string) *Fault {
	return &Fault{kind: kind, msg: msg, armed: true, owner: h}
}

// Defuse acknowledges the fault. A defused fault never terminates the
// process; the caller inspects Kind and Message and proceeds.
func (f *Fault) Defuse() {
	if f != nil {
		f.armed = false
	}
}

// Armed reports whether disposal would still terminate the process.
func (f *Fault) Armed() bool { return f != nil && f.armed }

// Kind returns the fault's classification, or zero for no fault.
func (f *Fault) Kind() FaultKind {
	if f == nil {
		return 0
	}
	return f.kind
}

// Message returns the human-readable description.
func (f *Fault) Message() string {
	if f == nil {
		return ""
	}
	return f.msg
}

// Code returns the exit status this fault would terminate with.
func (f *Fault) Code() int {
	if f == nil {
		return 0
	}
	return f.kind.Code()
}

// Err returns the fault as an ordinary error wrapping the matching
// sentinel, or nil for no fault.
func (f *Fault) Err() error {
	if f == nil {
		return nil
	}
	switch f.kind {
	case BadConstruct:
		return fmt.Errorf("%w: %s", ErrBadConstruct, f.msg)
	case IndexOutOfBounds:
		return fmt.Errorf("%w: %s", ErrIndexOutOfBounds, f.msg)
	}
	return fmt.Errorf("heap: fault: %s", f.msg)
}

// Dispose ends the fault's lifetime. Disposing an armed fault terminates
// the process; a defused (or nil) fault disposes silently. Idempotent.
func (f *Fault) Dispose() {
	if f == nil || !f.armed {
		return
	}
	f.armed = false
	failFast(f)
}

// exitFn indirects process termination so tests can observe fail-fast
// without dying.
var exitFn = os.Exit

// SetExitFunc replaces the function used to terminate the process when an
// armed fault is disposed. Intended for tests and for embedding hosts that
// must intercept termination. The returned func restores the previous one.
func SetExitFunc(fn func(code int)) (restore func()) {
	prev := exitFn
	exitFn = fn
	return func() { exitFn = prev }
}

// failFast implements the unacknowledged-fault policy: log the diagnostic,
// force-release the owning heap's segments so the storage unwinds to the
// operating system, then exit with the kind-specific status.
func failFast(f *Fault) {
	logger := slog.Default()
	if f.owner != nil && f.owner.logger != nil {
		logger = f.owner.logger
	}
	logger.Error("heap: unacknowledged fault",
		"kind", f.kind.String(),
		"message", f.msg,
		"exit_code", f.kind.Code(),
	)
	switch {
	case f.owner != nil:
		f.owner.FlushAll()
	case defaultHeap != nil:
		defaultHeap.FlushAll()
	}
	exitFn(f.kind.Code())
}
