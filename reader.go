package scale

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"
)

// source is the minimal capability an input must provide: exact byte reads and
// a remaining-length report. Remaining returns -1 when the length is not
// statically knowable; it is used only to bound speculative allocation, never
// for correctness.
type source interface {
	io.Reader
	io.ByteReader
	Remaining() int
}

// Reader is the input side of the codec. It tracks the first error that
// occurs; after an error, all subsequent read operations become no-ops and
// destination variables are left untouched. Reads are all-or-nothing: a
// primitive either gets every byte it needs or the reader latches
// ErrInsufficientData.
//
// Descend and Ascend bracket recursive decoding of heap-indirected values so
// adversarial nesting fails with ErrDepthLimit instead of exhausting the
// stack.
type Reader struct {
	r           source
	count       int64 // total bytes read
	err         error // first error encountered.
	depth       int
	maxDepth    int
	maxPrealloc int
}

// NewReaderSize creates a new Reader with a specified buffer size for sources
// that need buffering. In-memory sources are used directly.
func NewReaderSize(r io.Reader, size int) (*Reader, error) {
	if r == nil {
		return nil, ErrNilIO
	}

	var src source
	switch reader := r.(type) {
	// Reuse the underlying source if it's already a Reader.
	case *Reader:
		src = reader.r

	// In-memory sources need no buffering and know their remaining length.
	case *BytesReader:
		src = reader
	case *bytes.Reader:
		src = &bytesReaderSource{reader}
	case *bytes.Buffer:
		src = &bytesBufferSource{reader}

	case *bufio.Reader:
		src = &bufioSource{reader}

	default:
		if size <= 0 {
			size = defaultBufferSize
		}
		src = &bufioSource{bufio.NewReaderSize(r, size)}
	}

	return &Reader{
		r:           src,
		maxDepth:    DefaultMaxDepth,
		maxPrealloc: DefaultMaxPreallocation,
	}, nil
}

// NewReader creates a new Reader with a default buffer size.
func NewReader(r io.Reader) (*Reader, error) {
	return NewReaderSize(r, 0)
}

// WithMaxDepth sets the recursion-depth limit and returns the Reader for
// chaining.
func (r *Reader) WithMaxDepth(depth int) *Reader {
	r.maxDepth = depth
	return r
}

// WithMaxPreallocation sets the up-front allocation ceiling in bytes and
// returns the Reader for chaining.
func (r *Reader) WithMaxPreallocation(n int) *Reader {
	r.maxPrealloc = n
	return r
}

// Read implements the io.Reader interface.
func (r *Reader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	n, err := r.r.Read(p)
	r.count += int64(n)
	if err == io.EOF && n > 0 {
		// A read that delivered data and hit end-of-stream together is not a
		// failure; the next read will report EOF on its own.
		err = nil
	}
	r.setError(err)
	return n, r.err
}

// Remaining reports the number of bytes left in the source, or -1 if unknown.
func (r *Reader) Remaining() int { return r.r.Remaining() }

func (r *Reader) Count() int64 { return r.count }
func (r *Reader) Err() error   { return r.err }

// setError records the first non-nil error.
func (r *Reader) setError(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

// fail latches a decode error, annotated with position for diagnostics.
func (r *Reader) fail(err error) {
	if r.err == nil {
		r.err = fmt.Errorf("%w (at byte %d)", err, r.count)
	}
}

// Result returns the total bytes read and the final error state.
func (r *Reader) Result() (int64, error) {
	return r.count, r.err
}

// Descend enters one level of heap-indirected decoding. It latches
// ErrDepthLimit once the configured maximum is exceeded. Every Descend must be
// paired with an Ascend.
func (r *Reader) Descend() {
	if r.err != nil {
		return
	}
	r.depth++
	if r.depth > r.maxDepth {
		r.fail(ErrDepthLimit)
	}
}

// Ascend leaves one level of heap-indirected decoding.
func (r *Reader) Ascend() {
	if r.depth > 0 {
		r.depth--
	}
}

// readFull is an internal helper to read an exact number of bytes into dest.
func (r *Reader) readFull(dest []byte) bool {
	if r.err != nil {
		return false
	}
	n, err := io.ReadFull(r.r, dest)
	r.count += int64(n)
	if err != nil {
		// A partial read and a clean end-of-stream are the same failure here:
		// the value needed more bytes than the input holds.
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			r.fail(ErrInsufficientData)
		} else {
			r.err = err
		}
		return false
	}
	return true
}

// ReadRaw reads exactly n bytes with no length prefix, as for a fixed-size
// array, and returns them in a fresh slice.
func (r *Reader) ReadRaw(n int) []byte {
	if n <= 0 || r.err != nil {
		return nil
	}
	if rem := r.Remaining(); rem >= 0 && n > rem {
		r.fail(ErrInsufficientData)
		return nil
	}
	buf := make([]byte, n)
	if !r.readFull(buf) {
		return nil
	}
	return buf
}

// ReadRawTo fills dest exactly, as ReadRaw but without allocating.
func (r *Reader) ReadRawTo(dest []byte) {
	if len(dest) == 0 {
		return
	}
	r.readFull(dest)
}

// Discard consumes and drops exactly n bytes.
func (r *Reader) Discard(n int) {
	if n <= 0 || r.err != nil {
		return
	}
	if br, ok := r.r.(*BytesReader); ok {
		if br.Remaining() < n {
			br.N = len(br.B)
			r.fail(ErrInsufficientData)
			return
		}
		br.N += n
		r.count += int64(n)
		return
	}
	chunk := bufPool.Get().(*[]byte)
	defer bufPool.Put(chunk)
	for n > 0 {
		step := n
		if step > len(*chunk) {
			step = len(*chunk)
		}
		if !r.readFull((*chunk)[:step]) {
			return
		}
		n -= step
	}
}

// prefixedCount reads a Compact<u32> element count and, when both the element
// size and the remaining input length are known, rejects counts that could not
// possibly be satisfied before anything is allocated.
func (r *Reader) prefixedCount(elemSize int) int {
	var count uint32
	r.ReadCompactUint32(&count)
	if r.err != nil {
		return 0
	}
	if elemSize > 0 {
		if rem := r.Remaining(); rem >= 0 && uint64(count)*uint64(elemSize) > uint64(rem) {
			r.fail(ErrInsufficientData)
			return 0
		}
	}
	return int(count)
}

// ReadBytes reads a length-prefixed byte sequence: a Compact<u32> count
// followed by that many bytes. Allocation above the preallocation ceiling is
// incremental.
func (r *Reader) ReadBytes() []byte {
	n := r.prefixedCount(1)
	if n == 0 || r.err != nil {
		return nil
	}
	return r.readN(n)
}

// readN reads exactly n raw bytes, growing incrementally once n exceeds the
// preallocation ceiling so a fabricated length cannot force a huge upfront
// allocation.
func (r *Reader) readN(n int) []byte {
	if n <= r.maxPrealloc {
		buf := make([]byte, n)
		if !r.readFull(buf) {
			return nil
		}
		return buf
	}
	buf := make([]byte, 0, r.maxPrealloc)
	chunk := make([]byte, r.maxPrealloc)
	for n > 0 {
		step := n
		if step > len(chunk) {
			step = len(chunk)
		}
		if !r.readFull(chunk[:step]) {
			return nil
		}
		buf = append(buf, chunk[:step]...)
		n -= step
	}
	return buf
}

// ReadString reads a length-prefixed UTF-8 string and validates it.
func (r *Reader) ReadString(dest *string) {
	buf := r.ReadBytes()
	if r.err != nil {
		return
	}
	if !utf8.Valid(buf) {
		r.fail(ErrInvalidUTF8)
		return
	}
	*dest = string(buf)
}

// SkipBytes discards a length-prefixed byte sequence without keeping it.
func (r *Reader) SkipBytes() {
	n := r.prefixedCount(1)
	if r.err != nil {
		return
	}
	r.Discard(n)
}

// --- Primitive Read Operations ---

func (r *Reader) ReadBool(dest *bool) {
	b := r.readByte()
	if r.err != nil {
		return
	}
	switch b {
	case 0:
		*dest = false
	case 1:
		*dest = true
	default:
		r.fail(fmt.Errorf("%w: boolean byte 0x%02x", ErrOutOfRange, b))
	}
}

func (r *Reader) ReadByte() (byte, error) {
	b := r.readByte()
	return b, r.err
}

func (r *Reader) readByte() byte {
	if r.err != nil {
		return 0
	}
	b, err := r.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			r.fail(ErrInsufficientData)
		} else {
			r.err = err
		}
		return 0
	}
	r.count++
	return b
}

func (r *Reader) ReadUint8(dest *uint8) {
	b := r.readByte()
	if r.err == nil {
		*dest = b
	}
}

func (r *Reader) ReadUint16(dest *uint16) {
	var buf [2]byte
	if r.readFull(buf[:]) {
		*dest = le.Uint16(buf[:])
	}
}

func (r *Reader) ReadUint32(dest *uint32) {
	var buf [4]byte
	if r.readFull(buf[:]) {
		*dest = le.Uint32(buf[:])
	}
}

func (r *Reader) ReadUint64(dest *uint64) {
	var buf [8]byte
	if r.readFull(buf[:]) {
		*dest = le.Uint64(buf[:])
	}
}

// ReadUint128 reads the full 16-byte little-endian form: low word first.
func (r *Reader) ReadUint128(dest *Uint128) {
	var buf [16]byte
	if r.readFull(buf[:]) {
		dest.Lo = le.Uint64(buf[:8])
		dest.Hi = le.Uint64(buf[8:])
	}
}

func (r *Reader) ReadInt8(dest *int8) {
	b := r.readByte()
	if r.err == nil {
		*dest = int8(b)
	}
}

func (r *Reader) ReadInt16(dest *int16) {
	var buf [2]byte
	if r.readFull(buf[:]) {
		*dest = int16(le.Uint16(buf[:]))
	}
}

func (r *Reader) ReadInt32(dest *int32) {
	var buf [4]byte
	if r.readFull(buf[:]) {
		*dest = int32(le.Uint32(buf[:]))
	}
}

func (r *Reader) ReadInt64(dest *int64) {
	var buf [8]byte
	if r.readFull(buf[:]) {
		*dest = int64(le.Uint64(buf[:]))
	}
}
