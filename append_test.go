package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeUint64(w *Writer, v uint64) { w.WriteUint64(v) }

func decodeUint64(r *Reader) uint64 {
	var v uint64
	r.ReadUint64(&v)
	return v
}

func marshalUint64Slice(items []uint64) []byte {
	buf := NewByteBuffer(0)
	w, _ := NewWriter(buf)
	EncodeSlice(w, items, encodeUint64)
	return buf.Bytes()
}

func TestAppendEncodedFreshBuffer(t *testing.T) {
	out, err := AppendEncoded(nil, []uint64{1, 2}, encodeUint64)
	require.NoError(t, err)
	assert.Equal(t, marshalUint64Slice([]uint64{1, 2}), out)

	t.Run("NothingOntoNothing", func(t *testing.T) {
		out, err := AppendEncoded(nil, nil, encodeUint64)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x00}, out, "zero elements still get a count prefix")
	})
}

func TestAppendEncodedMatchesFullReencode(t *testing.T) {
	var buf []byte
	var mirror []uint64
	var err error

	for i := uint64(0); i < 1000; i++ {
		buf, err = AppendEncoded(buf, []uint64{i}, encodeUint64)
		require.NoError(t, err)
		mirror = append(mirror, i)

		// The interesting moments are the prefix width changes around 63/64;
		// checking every step near them and sampling after keeps this fast.
		if i < 70 || i%97 == 0 {
			require.Equal(t, marshalUint64Slice(mirror), buf, "after %d appends", i+1)
		}
	}
	require.Equal(t, marshalUint64Slice(mirror), buf)

	r, _ := NewReader(NewBytesReader(buf))
	out := DecodeSlice(r, decodeUint64)
	require.NoError(t, r.Err())
	assert.Equal(t, mirror, out)
}

func TestAppendEncodedStructElements(t *testing.T) {
	type pair = Fixed[struct {
		A uint32
		B uint64
	}]
	encodePair := func(w *Writer, p pair) { (&p).EncodeTo(w) }

	var buf []byte
	var mirror []pair
	var err error
	for i := 0; i < 1000; i++ {
		p := pair{Payload: struct {
			A uint32
			B uint64
		}{A: uint32(i), B: uint64(i) * 3}}
		buf, err = AppendEncoded(buf, []pair{p}, encodePair)
		require.NoError(t, err)
		mirror = append(mirror, p)
	}

	expected := NewByteBuffer(0)
	w, _ := NewWriter(expected)
	EncodeSliceOf[pair](w, mirror)
	require.Equal(t, expected.Bytes(), buf)
}

func TestAppendEncodedBatch(t *testing.T) {
	buf := marshalUint64Slice([]uint64{1, 2, 3})
	out, err := AppendEncoded(buf, []uint64{4, 5}, encodeUint64)
	require.NoError(t, err)
	assert.Equal(t, marshalUint64Slice([]uint64{1, 2, 3, 4, 5}), out)
}

func TestAppendEncodedPrefixWidthChange(t *testing.T) {
	items := make([]uint64, 63)
	buf := marshalUint64Slice(items)
	require.Equal(t, 1+63*8, len(buf), "63 elements fit a one-byte prefix")

	out, err := AppendEncoded(buf, []uint64{7}, encodeUint64)
	require.NoError(t, err)
	require.Equal(t, 2+64*8, len(out), "64 elements need a two-byte prefix")
	assert.Equal(t, marshalUint64Slice(append(items, 7)), out)
}

func TestAppendEncodedCountOverflow(t *testing.T) {
	// A sequence already claiming u32::MAX elements.
	buf := []byte{0x03, 0xFF, 0xFF, 0xFF, 0xFF}
	_, err := AppendEncoded(buf, []uint64{1}, encodeUint64)
	assert.ErrorIs(t, err, ErrCountOverflow)
}

func TestAppendEncodedBadPrefix(t *testing.T) {
	// A non-minimal length prefix is rejected, not spliced onto.
	_, err := AppendEncoded([]byte{0x15, 0x00}, []uint64{1}, encodeUint64)
	assert.ErrorIs(t, err, ErrOutOfRange)
}
