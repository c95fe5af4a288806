package containers

// String is an arena-backed byte string built on Vector[byte].
type String struct {
	vec Vector[byte]
}

// NewString returns an arena-backed copy of s.
func NewString(s string) *String {
	out := &String{}
	out.AppendString(s)
	return out
}

// AppendString appends the bytes of s.
func (s *String) AppendString(str string) {
	if need := s.vec.n + len(str); need > len(s.vec.data) {
		s.vec.grow(need)
	}
	for i := 0; i < len(str); i++ {
		s.vec.Append(str[i])
	}
}

// String copies the contents out as a Go string.
func (s *String) String() string {
	if s.vec.n == 0 {
		return ""
	}
	return string(s.vec.data[:s.vec.n])
}

// Len returns the byte length.
func (s *String) Len() int { return s.vec.Len() }

// Clear empties the string but keeps its storage.
func (s *String) Clear() { s.vec.Clear() }

// Release returns the backing storage to the heap.
func (s *String) Release() { s.vec.Release() }
