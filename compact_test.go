package scale

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeCompact(v uint64) []byte {
	buf := NewByteBuffer(0)
	w, _ := NewWriter(buf)
	w.WriteCompact(v)
	return buf.Bytes()
}

func encodeCompact128(v Uint128) []byte {
	buf := NewByteBuffer(0)
	w, _ := NewWriter(buf)
	w.WriteCompact128(v)
	return buf.Bytes()
}

func TestCompactEncodedLength(t *testing.T) {
	cases := []struct {
		value uint64
		want  int
	}{
		{0, 1},
		{1, 1},
		{63, 1},
		{64, 2},
		{255, 2},
		{16383, 2},
		{16384, 4},
		{1<<30 - 1, 4},
		{1 << 30, 5},
		{1<<32 - 1, 5},
		{1 << 32, 6},
		{1 << 40, 7},
		{math.MaxUint64, 9},
	}
	for _, tc := range cases {
		enc := encodeCompact(tc.value)
		assert.Len(t, enc, tc.want, "value %d", tc.value)
		assert.Equal(t, tc.want, CompactLen(tc.value), "CompactLen(%d)", tc.value)
	}
}

func TestCompactFixtures(t *testing.T) {
	assert.Equal(t, []byte{0x00}, encodeCompact(0))
	assert.Equal(t, []byte{0xFC}, encodeCompact(63))
	assert.Equal(t, []byte{0x01, 0x01}, encodeCompact(64))
	assert.Equal(t, []byte{0xFD, 0xFF}, encodeCompact(16383))
	assert.Equal(t, []byte{0x02, 0x00, 0x01, 0x00}, encodeCompact(16384))
	assert.Equal(t, []byte{0xFE, 0xFF, 0xFF, 0xFF}, encodeCompact(1<<30-1))
	assert.Equal(t, []byte{0x03, 0x00, 0x00, 0x00, 0x40}, encodeCompact(1<<30))
	assert.Equal(t, []byte{0x13, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
		encodeCompact(math.MaxUint64))
}

func TestCompactRoundTrip(t *testing.T) {
	values := []uint64{
		0, 1, 42, 63, 64, 69, 16383, 16384, 1 << 20, 1<<30 - 1, 1 << 30,
		1<<32 - 1, 1 << 32, 1 << 47, 1<<63 - 1, math.MaxUint64,
	}
	for _, v := range values {
		enc := encodeCompact(v)
		r, err := NewReader(NewBytesReader(enc))
		require.NoError(t, err)

		var got uint64
		r.ReadCompactUint64(&got)
		require.NoError(t, r.Err(), "value %d", v)
		assert.Equal(t, v, got)
		assert.EqualValues(t, len(enc), r.Count(), "decode must consume the full encoding")
	}
}

func TestCompactUint128RoundTrip(t *testing.T) {
	values := []Uint128{
		U128(0),
		U128(math.MaxUint64),
		{Lo: 0, Hi: 1},
		{Lo: math.MaxUint64, Hi: 1},
		{Lo: 0xDEADBEEF, Hi: 0xCAFEBABE},
		{Lo: math.MaxUint64, Hi: math.MaxUint64},
	}
	for _, v := range values {
		enc := encodeCompact128(v)
		assert.Equal(t, CompactLen128(v), len(enc))

		r, _ := NewReader(NewBytesReader(enc))
		var got Uint128
		r.ReadCompactUint128(&got)
		require.NoError(t, r.Err())
		assert.Equal(t, v, got)
	}
}

func TestCompactRejectsNonMinimalEncodings(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"TwoByteModeForSmallValue", []byte{5<<2 | 0b01, 0x00}},
		// (100 << 2) | 0b10 as a little-endian u32.
		{"FourByteModeForSmallValue", []byte{0x92, 0x01, 0x00, 0x00}},
		// (16383 << 2) | 0b10: the largest value mode 01 still covers.
		{"FourByteModeAtModeOneBoundary", []byte{0xFE, 0xFF, 0x00, 0x00}},
		{"BigModeForFourByteValue", []byte{0x03, 0x00, 0x00, 0x00, 0x10}},
		{"BigModeWithZeroTopByte", []byte{0x07, 0x01, 0x00, 0x00, 0x00, 0x00}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, _ := NewReader(NewBytesReader(tc.data))
			var v uint64
			r.ReadCompactUint64(&v)
			require.Error(t, r.Err())
			assert.ErrorIs(t, r.Err(), ErrOutOfRange)
		})
	}
}

func TestCompactRejectsOversizedValues(t *testing.T) {
	t.Run("Uint8Destination", func(t *testing.T) {
		r, _ := NewReader(NewBytesReader(encodeCompact(300)))
		var v uint8
		r.ReadCompactUint8(&v)
		assert.ErrorIs(t, r.Err(), ErrOutOfRange)
	})

	t.Run("Uint16Destination", func(t *testing.T) {
		r, _ := NewReader(NewBytesReader(encodeCompact(1 << 20)))
		var v uint16
		r.ReadCompactUint16(&v)
		assert.ErrorIs(t, r.Err(), ErrOutOfRange)
	})

	t.Run("Uint32Destination", func(t *testing.T) {
		r, _ := NewReader(NewBytesReader(encodeCompact(1 << 40)))
		var v uint32
		r.ReadCompactUint32(&v)
		assert.ErrorIs(t, r.Err(), ErrOutOfRange)
	})

	t.Run("Uint64DestinationFrom128", func(t *testing.T) {
		r, _ := NewReader(NewBytesReader(encodeCompact128(Uint128{Hi: 1})))
		var v uint64
		r.ReadCompactUint64(&v)
		assert.ErrorIs(t, r.Err(), ErrOutOfRange)
	})

	t.Run("PayloadWiderThan128Bits", func(t *testing.T) {
		// Mode 11 with byte count 17.
		data := append([]byte{13<<2 | 0b11}, make([]byte, 17)...)
		data[17] = 0x01
		r, _ := NewReader(NewBytesReader(data))
		var v Uint128
		r.ReadCompactUint128(&v)
		assert.ErrorIs(t, r.Err(), ErrOutOfRange)
	})
}

func TestCompactWidthsAcceptWideModeOnlyWhenNeeded(t *testing.T) {
	// 200 fits u8 but needs two wire bytes; the two-byte mode is its minimal
	// encoding and must decode into a u8 destination.
	r, _ := NewReader(NewBytesReader(encodeCompact(200)))
	var v uint8
	r.ReadCompactUint8(&v)
	require.NoError(t, r.Err())
	assert.Equal(t, uint8(200), v)
}

func TestCompactTruncatedInput(t *testing.T) {
	for _, v := range []uint64{64, 16384, 1 << 30, 1 << 40} {
		enc := encodeCompact(v)
		for cut := 1; cut < len(enc); cut++ {
			r, _ := NewReader(NewBytesReader(enc[:cut]))
			var got uint64
			r.ReadCompactUint64(&got)
			assert.ErrorIs(t, r.Err(), ErrInsufficientData, "value %d cut at %d", v, cut)
		}
	}
}

type centimeters uint16

func (c centimeters) EncodeAsCompact() uint64 { return uint64(c) }

func (c *centimeters) DecodeFromCompact(v uint64) error {
	if v > math.MaxUint16 {
		return ErrOutOfRange
	}
	*c = centimeters(v)
	return nil
}

func TestCompactAsDelegation(t *testing.T) {
	buf := NewByteBuffer(0)
	w, _ := NewWriter(buf)
	EncodeCompactAs(w, Ptr(centimeters(175)))
	_, err := w.Result()
	require.NoError(t, err)
	assert.Equal(t, encodeCompact(175), buf.Bytes())

	r, _ := NewReader(NewBytesReader(buf.Bytes()))
	var got centimeters
	DecodeCompactAs(r, &got)
	require.NoError(t, r.Err())
	assert.Equal(t, centimeters(175), got)

	r, _ = NewReader(NewBytesReader(encodeCompact(1 << 20)))
	DecodeCompactAs(r, &got)
	assert.ErrorIs(t, r.Err(), ErrOutOfRange)
}
