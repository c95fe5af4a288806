//go:build !unix

package membuf

// Map falls back to the Go runtime allocator where anonymous mmap is not
// wired up.
func Map(n int) ([]byte, func() error, error) {
	if n <= 0 {
		return nil, nil, nil
	}
	buf, free := Make(n)
	return buf, free, nil
}
