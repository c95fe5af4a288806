//go:build unix

package membuf

import (
	"errors"

	"golang.org/x/sys/unix"
)

// Map allocates n bytes of anonymous private memory via mmap. The release
// func unmaps the region, returning the pages to the operating system
// immediately; double release is treated as a no-op.
func Map(n int) ([]byte, func() error, error) {
	if n <= 0 {
		return nil, nil, nil
	}
	data, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, nil, err
	}
	released := false
	release := func() error {
		if released {
			return nil
		}
		released = true
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			return nil
		}
		return err
	}
	return data, release, nil
}
