package scale

import (
	"fmt"
	"math"
	"math/bits"
)

// Uint128 is a 128-bit unsigned integer, the widest lane the compact codec
// supports.
type Uint128 struct {
	Lo uint64
	Hi uint64
}

// U128 builds a Uint128 from a 64-bit value.
func U128(lo uint64) Uint128 { return Uint128{Lo: lo} }

// IsUint64 reports whether the value fits in 64 bits.
func (v Uint128) IsUint64() bool { return v.Hi == 0 }

// BitLen returns the number of bits required to represent the value.
func (v Uint128) BitLen() int {
	if v.Hi != 0 {
		return 64 + bits.Len64(v.Hi)
	}
	return bits.Len64(v.Lo)
}

// byteAt returns the i-th little-endian byte of the value.
func (v Uint128) byteAt(i int) byte {
	if i < 8 {
		return byte(v.Lo >> (8 * i))
	}
	return byte(v.Hi >> (8 * (i - 8)))
}

// Compact integer wire format, mode selected by the low two bits of the first
// byte:
//
//	00  value 0..=2^6-1,  1 byte, value in the top 6 bits
//	01  value ..=2^14-1,  2 bytes, value in the top 14 bits of a LE u16
//	10  value ..=2^30-1,  4 bytes, value in the top 30 bits of a LE u32
//	11  value >= 2^30,    1+n bytes, top 6 bits hold n-4, then n LE value bytes
//
// The encoder always picks the smallest mode (and, in mode 11, the smallest
// byte count) that holds the value. The decoder rejects any encoding whose
// value would have fit a smaller mode: a wider encoding of a small value is
// ambiguous with the smaller mode and would break unique round-tripping.

// CompactLen returns the encoded length in bytes of Compact(v).
func CompactLen(v uint64) int {
	switch {
	case v < 1<<6:
		return 1
	case v < 1<<14:
		return 2
	case v < 1<<30:
		return 4
	default:
		return 1 + (bits.Len64(v)+7)/8
	}
}

// CompactLen128 returns the encoded length in bytes of Compact(v).
func CompactLen128(v Uint128) int {
	if v.IsUint64() {
		return CompactLen(v.Lo)
	}
	return 1 + (v.BitLen()+7)/8
}

// WriteCompact appends the compact encoding of v.
func (w *Writer) WriteCompact(v uint64) {
	if w.err != nil {
		return
	}
	switch {
	case v < 1<<6:
		w.writeByte(byte(v << 2))
	case v < 1<<14:
		w.WriteUint16(uint16(v<<2) | 0b01)
	case v < 1<<30:
		w.WriteUint32(uint32(v<<2) | 0b10)
	default:
		w.writeBigCompact(Uint128{Lo: v})
	}
}

// WriteCompact128 appends the compact encoding of v.
func (w *Writer) WriteCompact128(v Uint128) {
	if v.IsUint64() {
		w.WriteCompact(v.Lo)
		return
	}
	w.writeBigCompact(v)
}

func (w *Writer) writeBigCompact(v Uint128) {
	n := (v.BitLen() + 7) / 8
	if n < 4 {
		n = 4
	}
	var buf [17]byte
	buf[0] = byte((n-4)<<2) | 0b11
	for i := 0; i < n; i++ {
		buf[1+i] = v.byteAt(i)
	}
	_, _ = w.Write(buf[:1+n])
}

// readCompact128 decodes one compact integer of any width, enforcing mode
// minimality.
func (r *Reader) readCompact128() Uint128 {
	b0 := r.readByte()
	if r.err != nil {
		return Uint128{}
	}
	switch b0 & 0b11 {
	case 0b00:
		return Uint128{Lo: uint64(b0 >> 2)}

	case 0b01:
		b1 := r.readByte()
		if r.err != nil {
			return Uint128{}
		}
		v := (uint64(b1)<<8 | uint64(b0)) >> 2
		if v < 1<<6 {
			r.fail(fmt.Errorf("%w: two-byte compact encoding of %d", ErrOutOfRange, v))
			return Uint128{}
		}
		return Uint128{Lo: v}

	case 0b10:
		var rest [3]byte
		if !r.readFull(rest[:]) {
			return Uint128{}
		}
		v := (uint64(rest[2])<<24 | uint64(rest[1])<<16 | uint64(rest[0])<<8 | uint64(b0)) >> 2
		if v < 1<<14 {
			r.fail(fmt.Errorf("%w: four-byte compact encoding of %d", ErrOutOfRange, v))
			return Uint128{}
		}
		return Uint128{Lo: v}

	default:
		n := int(b0>>2) + 4
		if n > 16 {
			r.fail(fmt.Errorf("%w: compact payload of %d bytes", ErrOutOfRange, n))
			return Uint128{}
		}
		var buf [16]byte
		if !r.readFull(buf[:n]) {
			return Uint128{}
		}
		v := Uint128{
			Lo: le.Uint64(buf[:8]),
			Hi: le.Uint64(buf[8:]),
		}
		if n == 4 {
			if v.Lo < 1<<30 {
				r.fail(fmt.Errorf("%w: big-mode compact encoding of %d", ErrOutOfRange, v.Lo))
				return Uint128{}
			}
		} else if buf[n-1] == 0 {
			// The top byte carries nothing, so n-1 bytes would have sufficed.
			r.fail(fmt.Errorf("%w: %d-byte compact payload with zero top byte", ErrOutOfRange, n))
			return Uint128{}
		}
		return v
	}
}

// readCompactMax decodes a compact integer and rejects values above max, so a
// narrow destination never silently truncates a wide encoding.
func (r *Reader) readCompactMax(max uint64) uint64 {
	v := r.readCompact128()
	if r.err != nil {
		return 0
	}
	if !v.IsUint64() || v.Lo > max {
		r.fail(fmt.Errorf("%w: compact value exceeds %d", ErrOutOfRange, max))
		return 0
	}
	return v.Lo
}

func (r *Reader) ReadCompactUint8(dest *uint8) {
	v := r.readCompactMax(math.MaxUint8)
	if r.err == nil {
		*dest = uint8(v)
	}
}

func (r *Reader) ReadCompactUint16(dest *uint16) {
	v := r.readCompactMax(math.MaxUint16)
	if r.err == nil {
		*dest = uint16(v)
	}
}

func (r *Reader) ReadCompactUint32(dest *uint32) {
	v := r.readCompactMax(math.MaxUint32)
	if r.err == nil {
		*dest = uint32(v)
	}
}

func (r *Reader) ReadCompactUint64(dest *uint64) {
	v := r.readCompactMax(math.MaxUint64)
	if r.err == nil {
		*dest = v
	}
}

func (r *Reader) ReadCompactUint128(dest *Uint128) {
	v := r.readCompact128()
	if r.err == nil {
		*dest = v
	}
}

// CompactAs is implemented by single-field wrapper types that delegate their
// compact encoding to an inner unsigned integer, without an extra allocation
// or a distinct wire form.
type CompactAs interface {
	// EncodeAsCompact returns the inner value to encode.
	EncodeAsCompact() uint64
	// DecodeFromCompact reconstructs the wrapper from a decoded value. It
	// should reject values outside the wrapper's own range.
	DecodeFromCompact(v uint64) error
}

// EncodeCompactAs writes the compact form of a delegating wrapper.
func EncodeCompactAs(w *Writer, v CompactAs) {
	w.WriteCompact(v.EncodeAsCompact())
}

// DecodeCompactAs reads the compact form of a delegating wrapper.
func DecodeCompactAs(r *Reader, v CompactAs) {
	var x uint64
	r.ReadCompactUint64(&x)
	if r.err != nil {
		return
	}
	if err := v.DecodeFromCompact(x); err != nil {
		r.fail(err)
	}
}
