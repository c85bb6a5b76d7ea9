package scale

import (
	"bufio"
	"bytes"
	"io"
)

// sink is the minimal capability an output destination must provide.
type sink interface {
	io.Writer
	io.ByteWriter
	Flush() error
}

// Writer is the output side of the codec: it appends a value's encoding to an
// underlying sink. It tracks the first error that occurs; after an error, all
// subsequent write operations become no-ops. Writes into in-memory sinks
// (ByteBuffer, a large enough BytesWriter) cannot fail, so encoding to memory
// is infallible once the Writer is constructed.
//
// All multi-byte integers are written little-endian; SCALE has no other byte
// order.
type Writer struct {
	w     sink
	count int64 // total bytes written
	err   error // first error encountered. Subsequent writes become no-ops.
	depth int
}

// NewWriterSize creates a new Writer with a specified buffer size for sinks
// that need buffering. In-memory sinks are used directly.
func NewWriterSize(w io.Writer, size int) (*Writer, error) {
	if w == nil {
		return nil, ErrNilIO
	}

	switch bw := w.(type) {
	// Reuse the underlying sink if it's already a Writer.
	case *Writer:
		return &Writer{w: bw.w, depth: bw.depth + 1}, nil

	// In-memory sinks need no buffering.
	case *ByteBuffer:
		return &Writer{w: bw}, nil
	case *BytesWriter:
		return &Writer{w: bw}, nil
	case *bytes.Buffer:
		return &Writer{w: &bytesBufferSink{bw}, depth: 0}, nil

	case *bufio.Writer:
		return &Writer{w: &bufioSink{bw}, depth: 1}, nil
	}

	// default use bufio
	if size <= 0 {
		size = defaultBufferSize
	}
	return &Writer{w: &bufioSink{bufio.NewWriterSize(w, size)}}, nil
}

// NewWriter creates a new Writer with a default buffer size.
func NewWriter(w io.Writer) (*Writer, error) {
	return NewWriterSize(w, 0)
}

// Write implements the io.Writer interface.
func (w *Writer) Write(buf []byte) (int, error) {
	if len(buf) == 0 || w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(buf)
	if n < 0 {
		n, err = 0, ErrInvalidWrite
	}
	w.count += int64(n)
	w.setError(err)
	return n, w.err
}

func (w *Writer) Count() int64 { return w.count }
func (w *Writer) Err() error   { return w.err }

// setError records the first non-nil error.
// This preserves the root cause of a failure chain instead of a later,
// less relevant error.
func (w *Writer) setError(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

// Result flushes the buffer and returns the final count and error state.
func (w *Writer) Result() (int64, error) {
	w.Flush()
	return w.count, w.err
}

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	// Only the outermost writer is responsible for the final flush, so nested
	// writers do not flush the shared buffer prematurely.
	if w.depth > 0 || w.err != nil {
		return w.err
	}
	err := w.w.Flush()
	w.setError(err)
	return err
}

// WriteRaw appends bytes with no length prefix. Fixed-size arrays and already
// encoded payloads use this.
func (w *Writer) WriteRaw(buf []byte) {
	_, _ = w.Write(buf)
}

// WriteBytes appends a length-prefixed byte sequence: a Compact<u32> count
// followed by the bytes themselves.
func (w *Writer) WriteBytes(buf []byte) {
	w.WriteCompact(uint64(len(buf)))
	_, _ = w.Write(buf)
}

// WriteString appends a length-prefixed UTF-8 string. The encoding is
// identical to WriteBytes of the string's bytes.
func (w *Writer) WriteString(s string) {
	w.WriteCompact(uint64(len(s)))
	if len(s) == 0 || w.err != nil {
		return
	}
	n, err := io.WriteString(w.w, s)
	w.count += int64(n)
	w.setError(err)
}

// --- Primitive Write Operations ---

func (w *Writer) WriteBool(v bool) {
	if v {
		w.writeByte(1)
	} else {
		w.writeByte(0)
	}
}

func (w *Writer) WriteByte(v byte) error {
	w.writeByte(v)
	return w.err
}

func (w *Writer) writeByte(v byte) {
	if w.err != nil {
		return
	}
	err := w.w.WriteByte(v)
	if err == nil {
		w.count++
	} else {
		w.err = err
	}
}

func (w *Writer) WriteUint8(v uint8) {
	w.writeByte(v)
}

func (w *Writer) WriteUint16(v uint16) {
	if w.err != nil {
		return
	}
	var buf [2]byte
	le.PutUint16(buf[:], v)
	_, _ = w.Write(buf[:])
}

func (w *Writer) WriteUint32(v uint32) {
	if w.err != nil {
		return
	}
	var buf [4]byte
	le.PutUint32(buf[:], v)
	_, _ = w.Write(buf[:])
}

func (w *Writer) WriteUint64(v uint64) {
	if w.err != nil {
		return
	}
	var buf [8]byte
	le.PutUint64(buf[:], v)
	_, _ = w.Write(buf[:])
}

// WriteUint128 writes the full 16-byte little-endian form: low word first.
func (w *Writer) WriteUint128(v Uint128) {
	if w.err != nil {
		return
	}
	var buf [16]byte
	le.PutUint64(buf[:8], v.Lo)
	le.PutUint64(buf[8:], v.Hi)
	_, _ = w.Write(buf[:])
}

func (w *Writer) WriteInt8(v int8) {
	w.writeByte(uint8(v))
}

func (w *Writer) WriteInt16(v int16) {
	w.WriteUint16(uint16(v))
}

func (w *Writer) WriteInt32(v int32) {
	w.WriteUint32(uint32(v))
}

func (w *Writer) WriteInt64(v int64) {
	w.WriteUint64(uint64(v))
}
