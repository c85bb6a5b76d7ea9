package scale

import "fmt"

// Option values map to pointers: nil is None, a non-nil pointer is Some. The
// wire form is a tag byte, 0 for None and 1 for Some followed by the value.

// EncodeOption writes v as an optional value.
func EncodeOption[T any](w *Writer, v *T, enc func(*Writer, T)) {
	if v == nil {
		w.writeByte(0)
		return
	}
	w.writeByte(1)
	enc(w, *v)
}

// DecodeOption reads an optional value; any tag byte other than 0 or 1 is an
// error.
func DecodeOption[T any](r *Reader, dec func(*Reader) T) *T {
	tag := r.readByte()
	if r.err != nil {
		return nil
	}
	switch tag {
	case 0:
		return nil
	case 1:
		v := dec(r)
		if r.err != nil {
			return nil
		}
		return &v
	default:
		r.fail(fmt.Errorf("%w: Option tag 0x%02x", ErrUnknownTag, tag))
		return nil
	}
}

// EncodeOptionBool folds an optional bool into a single byte: 0 for None,
// 1 for true, 2 for false. A format-level special case; the generic Option
// form would spend two bytes on it.
func EncodeOptionBool(w *Writer, v *bool) {
	switch {
	case v == nil:
		w.writeByte(0)
	case *v:
		w.writeByte(1)
	default:
		w.writeByte(2)
	}
}

// DecodeOptionBool reads the one-byte optional bool.
func DecodeOptionBool(r *Reader) *bool {
	b := r.readByte()
	if r.err != nil {
		return nil
	}
	switch b {
	case 0:
		return nil
	case 1:
		return Ptr(true)
	case 2:
		return Ptr(false)
	default:
		r.fail(fmt.Errorf("%w: OptionBool byte 0x%02x", ErrOutOfRange, b))
		return nil
	}
}

// Result is a success-or-failure value with distinct payload types for each
// arm. The wire form is a tag byte, 0 for OK followed by the success value,
// 1 for Err followed by the failure value.
type Result[T, E any] struct {
	OK    T
	Err   E
	IsErr bool
}

// Ok builds a success Result.
func Ok[T, E any](v T) Result[T, E] { return Result[T, E]{OK: v} }

// Err builds a failure Result.
func Err[T, E any](e E) Result[T, E] { return Result[T, E]{Err: e, IsErr: true} }

// EncodeResult writes a Result using the arm-specific encoders.
func EncodeResult[T, E any](w *Writer, res Result[T, E], encOK func(*Writer, T), encErr func(*Writer, E)) {
	if res.IsErr {
		w.writeByte(1)
		encErr(w, res.Err)
		return
	}
	w.writeByte(0)
	encOK(w, res.OK)
}

// DecodeResult reads a Result; any tag byte other than 0 or 1 is an error.
func DecodeResult[T, E any](r *Reader, decOK func(*Reader) T, decErr func(*Reader) E) Result[T, E] {
	var res Result[T, E]
	tag := r.readByte()
	if r.err != nil {
		return res
	}
	switch tag {
	case 0:
		res.OK = decOK(r)
	case 1:
		res.IsErr = true
		res.Err = decErr(r)
	default:
		r.fail(fmt.Errorf("%w: Result tag 0x%02x", ErrUnknownTag, tag))
	}
	return res
}
