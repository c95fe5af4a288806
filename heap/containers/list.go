package containers

import (
	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/alloc"
)

// node is the list spine. It lives in ordinary Go memory because its links
// are Go pointers, which segment memory may not hold; only the element
// values occupy segment storage.
type node[T any] struct {
	val  *T
	next *node[T]
}

// List is a singly linked list with one heap segment per element,
// exercising the adapter's allocate/construct/destroy/deallocate cycle
// element by element as the list grows and shrinks.
type List[T any] struct {
	mem  alloc.Allocator[T]
	head *node[T]
	tail *node[T]
	n    int
}

// NewList returns an empty list. The element type must be pointer-free; see
// heap.PointerFree.
func NewList[T any]() *List[T] {
	heap.MustPointerFree[T]()
	return &List[T]{}
}

// Len returns the number of elements.
func (l *List[T]) Len() int { return l.n }

// PushBack appends v.
func (l *List[T]) PushBack(v T) {
	nd := l.newNode(v)
	if l.tail == nil {
		l.head, l.tail = nd, nd
	} else {
		l.tail.next = nd
		l.tail = nd
	}
	l.n++
}

// PushFront prepends v.
func (l *List[T]) PushFront(v T) {
	nd := l.newNode(v)
	nd.next = l.head
	l.head = nd
	if l.tail == nil {
		l.tail = nd
	}
	l.n++
}

func (l *List[T]) newNode(v T) *node[T] {
	vals := l.mem.Allocate(1)
	l.mem.Construct(&vals[0], v)
	return &node[T]{val: &vals[0]}
}

// Front returns the first element without removing it.
func (l *List[T]) Front() (*T, bool) {
	if l.head == nil {
		return nil, false
	}
	return l.head.val, true
}

// PopFront unlinks the first element and moves its value out to the caller.
// The value is not disposed: ownership transfers with it. The element's
// segment is released.
func (l *List[T]) PopFront() (T, bool) {
	var zero T
	if l.head == nil {
		return zero, false
	}
	nd := l.head
	l.head = nd.next
	if l.head == nil {
		l.tail = nil
	}
	l.n--
	v := *nd.val
	*nd.val = zero
	l.mem.Deallocate(nd.val, 1)
	return v, true
}

// Each visits every element in order until fn returns false.
func (l *List[T]) Each(fn func(*T) bool) {
	for nd := l.head; nd != nil; nd = nd.next {
		if !fn(nd.val) {
			return
		}
	}
}

// Release destroys every remaining element (running Dispose where
// implemented) and returns all element storage to the heap.
func (l *List[T]) Release() {
	for nd := l.head; nd != nil; {
		next := nd.next
		if d, ok := any(nd.val).(heap.Disposer); ok {
			d.Dispose()
		}
		l.mem.Deallocate(nd.val, 1)
		nd = next
	}
	l.head, l.tail, l.n = nil, nil, 0
}
