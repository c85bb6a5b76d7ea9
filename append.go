package scale

import (
	"fmt"
	"math"
)

// AppendEncoded splices new elements onto an already-encoded sequence without
// decoding the existing ones. Only the leading Compact<u32> count is
// inspected; when the new count's prefix occupies the same number of bytes,
// the prefix is rewritten in place and the unchanged element bytes never
// move. A wider prefix forces a single copy of the old payload.
//
// An empty buf represents zero elements. The caller is responsible for items
// encoding identically to the sequence's existing element type: this is a
// byte-level splice, not a type-checked operation.
func AppendEncoded[T any](buf []byte, items []T, enc func(*Writer, T)) ([]byte, error) {
	oldCount := 0
	prefLen := 0
	if len(buf) > 0 {
		r := Reader{r: NewBytesReader(buf), maxDepth: DefaultMaxDepth, maxPrealloc: DefaultMaxPreallocation}
		var c uint32
		r.ReadCompactUint32(&c)
		if r.err != nil {
			return nil, fmt.Errorf("reading sequence length prefix: %w", r.err)
		}
		oldCount = int(c)
		prefLen = int(r.count)
	}

	newCount := uint64(oldCount) + uint64(len(items))
	if newCount > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d + %d elements", ErrCountOverflow, oldCount, len(items))
	}
	newPrefLen := CompactLen(newCount)

	if prefLen == newPrefLen {
		// Same prefix width: rewrite the count where it sits and append.
		pw := Writer{w: NewBytesWriter(buf[:prefLen:prefLen])}
		pw.WriteCompact(newCount)
		bb := &ByteBuffer{B: buf}
		w := Writer{w: bb}
		for i := range items {
			enc(&w, items[i])
		}
		return bb.B, nil
	}

	// The prefix widened: copy the old element bytes once, skipping only the
	// old prefix.
	bb := NewByteBuffer(newPrefLen + len(buf) - prefLen)
	w := Writer{w: bb}
	w.WriteCompact(newCount)
	w.WriteRaw(buf[prefLen:])
	for i := range items {
		enc(&w, items[i])
	}
	return bb.B, nil
}
