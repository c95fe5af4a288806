package alloc

import "errors"

var (
	// ErrForeignPointer indicates a Deallocate of a pointer that is not the
	// base of any live heap segment. The adapter cannot guess which storage
	// to release, so this is fatal.
	ErrForeignPointer = errors.New("alloc: deallocate of pointer not owned by the heap")

	// ErrCountTooLarge indicates an Allocate count beyond MaxSize, whose
	// byte size would wrap around the address space.
	ErrCountTooLarge = errors.New("alloc: element count exceeds MaxSize")
)
