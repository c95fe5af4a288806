// Package membuf provides the raw byte buffers backing heap segments, with
// an anonymous-mmap variant on platforms that support it.
package membuf

// Make allocates n zeroed bytes from the Go runtime allocator. The returned
// release func is a no-op placeholder so both providers share a shape; the
// buffer is reclaimed by the garbage collector once unreferenced.
func Make(n int) ([]byte, func() error) {
	return make([]byte, n), nil
}
