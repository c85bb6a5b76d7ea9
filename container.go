package scale

import (
	"fmt"
	"reflect"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Variable-length containers share one wire shape: a Compact<u32> element
// count followed by each element's encoding in iteration order. Go callers
// hold sequences as slices, ordered collections as maps; deques, linked lists
// and heaps have the same wire form as a slice of their elements in order.

// preallocElems converts the reader's byte ceiling into an element-count cap
// for up-front collection sizing: count elements of elem in-memory bytes each
// may not claim more than maxPrealloc bytes before anything has decoded.
// Zero-sized elements cost nothing to reserve and pass through uncapped.
func preallocElems(r *Reader, count int, elem uintptr) int {
	if elem == 0 {
		return count
	}
	if max := r.maxPrealloc / int(elem); count > max {
		return max
	}
	return count
}

func sizeOf[T any]() uintptr {
	return reflect.TypeOf((*T)(nil)).Elem().Size()
}

// EncodeSlice writes a length-prefixed sequence using enc per element.
func EncodeSlice[T any](w *Writer, items []T, enc func(*Writer, T)) {
	w.WriteCompact(uint64(len(items)))
	for i := range items {
		enc(w, items[i])
	}
}

// DecodeSlice reads a length-prefixed sequence using dec per element. The
// declared count alone never drives a large allocation: initial capacity is
// bounded by the reader's preallocation ceiling and by the remaining input,
// and the slice grows as elements actually decode.
func DecodeSlice[T any](r *Reader, dec func(*Reader) T) []T {
	count := r.prefixedCount(0)
	if count == 0 || r.err != nil {
		return nil
	}
	capHint := preallocElems(r, count, sizeOf[T]())
	if rem := r.Remaining(); rem >= 0 && capHint > rem {
		// Elements occupy at least one byte each on the wire; a count beyond
		// the remaining input cannot need more capacity than that.
		capHint = rem
	}
	items := make([]T, 0, capHint)
	r.Descend()
	for i := 0; i < count; i++ {
		v := dec(r)
		if r.err != nil {
			r.Ascend()
			return nil
		}
		items = append(items, v)
	}
	r.Ascend()
	return items
}

// EncodeSliceOf writes a length-prefixed sequence of Encodable elements.
func EncodeSliceOf[T any, PT interface {
	*T
	Encodable
}](w *Writer, items []T) {
	w.WriteCompact(uint64(len(items)))
	for i := range items {
		PT(&items[i]).EncodeTo(w)
	}
}

// DecodeSliceOf reads a length-prefixed sequence of Decodable elements.
func DecodeSliceOf[T any, PT interface {
	*T
	Decodable
}](r *Reader) []T {
	return DecodeSlice(r, func(r *Reader) T {
		var v T
		PT(&v).DecodeFrom(r)
		return v
	})
}

// SkipSlice discards a length-prefixed sequence using skip per element.
func SkipSlice(r *Reader, skip func(*Reader)) {
	count := r.prefixedCount(0)
	if r.err != nil {
		return
	}
	r.Descend()
	for i := 0; i < count && r.err == nil; i++ {
		skip(r)
	}
	r.Ascend()
}

// SkipSliceFixed discards a length-prefixed sequence whose elements all
// encode to elemSize bytes, without visiting them.
func SkipSliceFixed(r *Reader, elemSize int) {
	count := r.prefixedCount(elemSize)
	if r.err != nil {
		return
	}
	total := uint64(count) * uint64(elemSize)
	if total > uint64(int(^uint(0)>>1)) {
		r.fail(fmt.Errorf("%w: %d elements of %d bytes", ErrOutOfRange, count, elemSize))
		return
	}
	r.Discard(int(total))
}

// EncodeMap writes a length-prefixed sequence of key/value pairs in ascending
// key order, matching an ordered map's iteration order regardless of Go's
// randomized map iteration.
func EncodeMap[K constraints.Ordered, V any](w *Writer, m map[K]V, encKey func(*Writer, K), encVal func(*Writer, V)) {
	w.WriteCompact(uint64(len(m)))
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		encKey(w, k)
		encVal(w, m[k])
	}
}

// DecodeMap reads a length-prefixed sequence of key/value pairs. Pairs feed
// the map's natural insertion, so a duplicate key keeps the later value.
func DecodeMap[K comparable, V any](r *Reader, decKey func(*Reader) K, decVal func(*Reader) V) map[K]V {
	count := r.prefixedCount(0)
	if r.err != nil {
		return nil
	}
	m := make(map[K]V, preallocElems(r, count, sizeOf[K]()+sizeOf[V]()))
	r.Descend()
	for i := 0; i < count; i++ {
		k := decKey(r)
		v := decVal(r)
		if r.err != nil {
			r.Ascend()
			return nil
		}
		m[k] = v
	}
	r.Ascend()
	return m
}

// EncodeSet writes a length-prefixed sequence of the set's members in
// ascending order.
func EncodeSet[K constraints.Ordered](w *Writer, s map[K]struct{}, encKey func(*Writer, K)) {
	w.WriteCompact(uint64(len(s)))
	keys := make([]K, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		encKey(w, k)
	}
}

// DecodeSet reads a length-prefixed sequence of members into a set.
func DecodeSet[K comparable](r *Reader, decKey func(*Reader) K) map[K]struct{} {
	count := r.prefixedCount(0)
	if r.err != nil {
		return nil
	}
	s := make(map[K]struct{}, preallocElems(r, count, sizeOf[K]()))
	r.Descend()
	for i := 0; i < count; i++ {
		k := decKey(r)
		if r.err != nil {
			r.Ascend()
			return nil
		}
		s[k] = struct{}{}
	}
	r.Ascend()
	return s
}

// EncodeArray writes each element with no length prefix; the length is part
// of the caller's static type.
func EncodeArray[T any](w *Writer, items []T, enc func(*Writer, T)) {
	for i := range items {
		enc(w, items[i])
	}
}

// DecodeArray fills dest exactly, no length prefix. dest's length is the
// statically known array length; producing fewer elements is a read failure,
// never a partial result.
func DecodeArray[T any](r *Reader, dest []T, dec func(*Reader) T) {
	for i := range dest {
		v := dec(r)
		if r.err != nil {
			return
		}
		dest[i] = v
	}
}

// EncodePtr writes the pointed-to value with zero wire overhead for the
// indirection. A nil pointer has no encoding; Option covers optionality.
func EncodePtr[T any](w *Writer, v *T, enc func(*Writer, T)) {
	enc(w, *v)
}

// DecodePtr reconstructs an owned indirection around a freshly decoded value.
// The descend/ascend pair accounts the heap nesting for the depth limit.
func DecodePtr[T any](r *Reader, dec func(*Reader) T) *T {
	r.Descend()
	defer r.Ascend()
	if r.err != nil {
		return nil
	}
	v := dec(r)
	if r.err != nil {
		return nil
	}
	return &v
}
