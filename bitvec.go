package scale

// BitVec is a sequence of bits packed LSB-first into bytes. The wire form is
// a Compact<u32> bit count followed by the minimum number of whole bytes
// holding that many bits. Trailing pad bits in the last byte carry nothing:
// the decoder discards them by truncating to the declared bit count and does
// not reject nonzero padding, a documented looseness of the format.
type BitVec struct {
	bits int
	data []byte
}

// NewBitVec creates an all-zero bit vector of n bits.
func NewBitVec(n int) *BitVec {
	return &BitVec{bits: n, data: make([]byte, (n+7)/8)}
}

// BitVecFromBools packs bs into a bit vector.
func BitVecFromBools(bs []bool) *BitVec {
	v := NewBitVec(len(bs))
	for i, b := range bs {
		v.Set(i, b)
	}
	return v
}

// Len returns the number of bits.
func (v *BitVec) Len() int { return v.bits }

// Get returns bit i. It panics if i is out of range, like a slice index.
func (v *BitVec) Get(i int) bool {
	if i < 0 || i >= v.bits {
		panic("scale: BitVec index out of range")
	}
	return v.data[i/8]&(1<<(i%8)) != 0
}

// Set assigns bit i. It panics if i is out of range, like a slice index.
func (v *BitVec) Set(i int, b bool) {
	if i < 0 || i >= v.bits {
		panic("scale: BitVec index out of range")
	}
	if b {
		v.data[i/8] |= 1 << (i % 8)
	} else {
		v.data[i/8] &^= 1 << (i % 8)
	}
}

// Bytes returns the packed storage, (Len()+7)/8 bytes.
func (v *BitVec) Bytes() []byte { return v.data }

func (v *BitVec) SizeHint() int {
	return CompactLen(uint64(v.bits)) + len(v.data)
}

func (v *BitVec) EncodeTo(w *Writer) {
	w.WriteCompact(uint64(v.bits))
	w.WriteRaw(v.data)
}

func (v *BitVec) DecodeFrom(r *Reader) {
	var bits uint32
	r.ReadCompactUint32(&bits)
	if r.err != nil {
		return
	}
	byteLen := (int(bits) + 7) / 8
	if rem := r.Remaining(); rem >= 0 && byteLen > rem {
		r.fail(ErrInsufficientData)
		return
	}
	data := r.readN(byteLen)
	if r.err != nil {
		return
	}
	// Truncate to the declared bit count: clear the pad bits so two vectors
	// decoded from differently padded inputs compare equal.
	if pad := uint(byteLen*8 - int(bits)); pad > 0 {
		data[byteLen-1] &= 0xFF >> pad
	}
	v.bits = int(bits)
	v.data = data
}

func (v *BitVec) SkipFrom(r *Reader) {
	var bits uint32
	r.ReadCompactUint32(&bits)
	if r.err != nil {
		return
	}
	r.Discard((int(bits) + 7) / 8)
}
