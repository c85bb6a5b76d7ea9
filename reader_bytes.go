package scale

import "io"

// BytesReader is an io.Reader that reads from a pre-existing byte slice. It is
// the usual input for decoding: the remaining length is always known, so every
// declared element count can be bounds-checked before allocation.
type BytesReader struct {
	B []byte // source slice
	N int    // current read position
}

// NewBytesReader creates a new BytesReader.
func NewBytesReader(b []byte) *BytesReader {
	return &BytesReader{B: b}
}

// Read implements the [io.Reader] interface.
func (r *BytesReader) Read(p []byte) (int, error) {
	if r.N >= len(r.B) {
		return 0, io.EOF
	}
	n := copy(p, r.B[r.N:])
	r.N += n
	return n, nil
}

// ReadByte implements the [io.ByteReader] interface.
func (r *BytesReader) ReadByte() (byte, error) {
	if r.N >= len(r.B) {
		return 0, io.EOF
	}
	b := r.B[r.N]
	r.N++
	return b, nil
}

// Reset allows the underlying byte slice to be reused.
func (r *BytesReader) Reset() { r.N = 0 }

// Len returns the number of bytes read.
func (r *BytesReader) Len() int { return r.N }

// Remaining returns the number of bytes left to read.
func (r *BytesReader) Remaining() int {
	n := len(r.B) - r.N
	if n <= 0 {
		return 0
	}
	return n
}
