package scale

// Encodable is a value that can append its SCALE encoding to a Writer.
//
// SizeHint is a non-binding estimate (it may be 0) of the encoded length, used
// only to pre-size the output buffer; correctness never depends on it.
// EncodeTo must produce the same bytes no matter which sink backs the Writer.
type Encodable interface {
	SizeHint() int
	EncodeTo(w *Writer)
}

// Decodable is a value that can reconstruct itself from a Reader. Failures
// latch on the Reader; a decoder checks r.Err() when it needs to stop early.
type Decodable interface {
	DecodeFrom(r *Reader)
}

// Codec aggregates both directions. A type implementing Codec is a complete
// SCALE encoder/decoder for itself.
type Codec interface {
	Encodable
	Decodable
}

// Skipper is an optional refinement of Decodable: discard one encoded value
// without materializing it. Container types implement it to avoid allocating
// elements that will be dropped.
type Skipper interface {
	SkipFrom(r *Reader)
}

// FixedSizer is an optional refinement for types whose every value encodes to
// exactly the same number of bytes. Callers use it to validate or skip without
// running full decode logic.
type FixedSizer interface {
	EncodedFixedSize() int
}

// Marshal returns the SCALE encoding of v in a fresh slice. Encoding to
// memory cannot fail on I/O; a type whose encoder can reject its own value
// (WriteDuration of a negative duration) should drive a Writer directly and
// check Result.
func Marshal(v Encodable) []byte {
	buf := bytesBufPool.Get().(*ByteBuffer)
	buf.Reset()
	defer bytesBufPool.Put(buf)

	buf.B = grow(buf.B, v.SizeHint())
	w := Writer{w: buf}
	v.EncodeTo(&w)
	out := make([]byte, len(buf.B))
	copy(out, buf.B)
	return out
}

// Unmarshal decodes v from data. It is strict: every byte of data must be
// consumed, so concatenated values need UnmarshalPrefix instead.
func Unmarshal(data []byte, v Decodable) error {
	n, err := UnmarshalPrefix(data, v)
	if err != nil {
		return err
	}
	if n < len(data) {
		return ErrTrailingData
	}
	return nil
}

// UnmarshalPrefix decodes v from the front of data and returns the number of
// bytes consumed. Remaining bytes belong to the next concatenated value.
func UnmarshalPrefix(data []byte, v Decodable) (int, error) {
	r := Reader{
		r:           NewBytesReader(data),
		maxDepth:    DefaultMaxDepth,
		maxPrealloc: DefaultMaxPreallocation,
	}
	v.DecodeFrom(&r)
	return int(r.count), r.err
}

// EncodedSize computes the encoded length of v without materializing bytes,
// by running the encoder against a sink that only counts.
func EncodedSize(v Encodable) int {
	if fs, ok := v.(FixedSizer); ok {
		return fs.EncodedFixedSize()
	}
	var c countWriter
	w := Writer{w: &c}
	v.EncodeTo(&w)
	return int(c.n)
}

// Skip discards one encoded value of v's type. Types implementing Skipper
// avoid materializing; everything else decodes and drops.
func Skip(r *Reader, v Decodable) {
	if s, ok := v.(Skipper); ok {
		s.SkipFrom(r)
		return
	}
	if fs, ok := v.(FixedSizer); ok {
		r.Discard(fs.EncodedFixedSize())
		return
	}
	v.DecodeFrom(r)
}

// Unit is the zero-sized marker value: it encodes to nothing and decodes by
// consuming nothing. Phantom/marker fields map to it.
type Unit struct{}

var (
	_ Codec      = Unit{}
	_ FixedSizer = Unit{}
)

func (Unit) SizeHint() int         { return 0 }
func (Unit) EncodeTo(*Writer)      {}
func (Unit) DecodeFrom(*Reader)    {}
func (Unit) EncodedFixedSize() int { return 0 }

// grow extends b's capacity to hold at least n more bytes.
func grow(b []byte, n int) []byte {
	if n > cap(b)-len(b) {
		nb := make([]byte, len(b), len(b)+n)
		copy(nb, b)
		return nb
	}
	return b
}
