package scale

import (
	"encoding/binary"
	"errors"
	"io"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// sizeCache avoids the high performance cost of reflection in `binary.Size`
// on every call. Using a concurrent map makes it safe across goroutines.
var sizeCache = xsync.NewMap[reflect.Type, int]()

// Fixed provides a Codec for any struct Payload composed solely of
// fixed-width fields. Such a struct's SCALE encoding is exactly its fields
// laid out little-endian in declared order, which is what encoding/binary
// produces, so the whole value moves through one bulk call instead of
// per-field encoders. This is the platform-independent fast path for
// fixed-layout types.
//
// Constraint: Payload MUST NOT contain variable-size fields like slices,
// maps, or strings, as this will cause binary.Size to fail.
type Fixed[Payload any] struct {
	Payload Payload
}

var (
	_ Codec      = (*Fixed[struct{}])(nil)
	_ FixedSizer = (*Fixed[struct{}])(nil)
	_ Skipper    = (*Fixed[struct{}])(nil)
)

// EncodedFixedSize returns the byte length every value of Payload encodes to.
// The result is cached to avoid reflection overhead on subsequent calls.
func (c *Fixed[Payload]) EncodedFixedSize() int {
	bodyType := reflect.TypeOf((*Payload)(nil)).Elem()

	if size, ok := sizeCache.Load(bodyType); ok {
		return size
	}

	size := binary.Size(&c.Payload)
	sizeCache.Store(bodyType, size)
	return size
}

func (c *Fixed[Payload]) SizeHint() int { return c.EncodedFixedSize() }

func (c *Fixed[Payload]) EncodeTo(w *Writer) {
	if w.err != nil {
		return
	}
	w.setError(binary.Write(w.w, le, &c.Payload))
	if w.err == nil {
		w.count += int64(c.EncodedFixedSize())
	}
}

func (c *Fixed[Payload]) DecodeFrom(r *Reader) {
	if r.err != nil {
		return
	}
	err := binary.Read(r, le, &c.Payload)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		err = ErrInsufficientData
	}
	if err != nil {
		r.err = err
	}
}

func (c *Fixed[Payload]) SkipFrom(r *Reader) {
	r.Discard(c.EncodedFixedSize())
}
