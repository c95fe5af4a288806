package containers

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// WString is an arena-backed wide string: UTF-16LE code units stored in
// heap segments, converted to and from Go strings at the boundary.
type WString struct {
	vec Vector[byte]
}

// NewWString returns an arena-backed UTF-16LE copy of s.
func NewWString(s string) (*WString, error) {
	w := &WString{}
	if err := w.Set(s); err != nil {
		return nil, err
	}
	return w, nil
}

// Set replaces the contents with the UTF-16LE encoding of s.
func (w *WString) Set(s string) error {
	enc, _, err := transform.String(utf16LE.NewEncoder(), s)
	if err != nil {
		return fmt.Errorf("encoding utf-16le: %w", err)
	}
	w.vec.Clear()
	if need := len(enc); need > len(w.vec.data) {
		w.vec.grow(need)
	}
	for i := 0; i < len(enc); i++ {
		w.vec.Append(enc[i])
	}
	return nil
}

// String decodes the stored code units back to a Go string.
func (w *WString) String() (string, error) {
	if w.vec.n == 0 {
		return "", nil
	}
	dec, _, err := transform.Bytes(utf16LE.NewDecoder(), w.vec.data[:w.vec.n])
	if err != nil {
		return "", fmt.Errorf("decoding utf-16le: %w", err)
	}
	return string(dec), nil
}

// Units returns the number of stored UTF-16 code units.
func (w *WString) Units() int { return w.vec.Len() / 2 }

// Release returns the backing storage to the heap.
func (w *WString) Release() { w.vec.Release() }
