package scale

import "fmt"

// Enum support consumed by generated per-type code. The codec itself never
// inspects variant payloads: generated code writes the discriminant byte,
// then each field in declared order, and mirrors that on decode.

// Variant describes one variant of a tagged union.
type Variant struct {
	Name string
	// Index overrides the wire discriminant for this variant.
	Index *uint8
	// Skip excludes the variant from the wire format entirely. Skipped
	// variants are not counted when assigning ordinal discriminants.
	Skip bool
}

// Enum is the resolved discriminant layout of a tagged union.
type Enum struct {
	variants      []Variant
	discriminants []int // wire discriminant per variant, -1 for skipped
}

// NewEnum resolves the discriminant for each variant: the explicit Index if
// set, otherwise the variant's ordinal position counting only non-skipped
// variants from 0. An explicit index and a later ordinal can collide; decode
// resolves collisions in favor of the earlier variant.
func NewEnum(variants ...Variant) (*Enum, error) {
	if len(variants) > 256 {
		return nil, ErrTooManyVariants
	}
	e := &Enum{
		variants:      variants,
		discriminants: make([]int, len(variants)),
	}
	ordinal := 0
	for i, v := range variants {
		if v.Skip {
			e.discriminants[i] = -1
			continue
		}
		if v.Index != nil {
			e.discriminants[i] = int(*v.Index)
		} else {
			e.discriminants[i] = ordinal
		}
		ordinal++
	}
	return e, nil
}

// Discriminant returns the wire discriminant of variant i, or false for a
// skipped variant.
func (e *Enum) Discriminant(i int) (byte, bool) {
	if i < 0 || i >= len(e.discriminants) || e.discriminants[i] < 0 {
		return 0, false
	}
	return byte(e.discriminants[i]), true
}

// WriteDiscriminant writes the single discriminant byte for variant i.
// Encoding a skipped or unknown variant is a bug in the generated code, not a
// runtime condition, and faults hard.
func (e *Enum) WriteDiscriminant(w *Writer, i int) {
	d, ok := e.Discriminant(i)
	if !ok {
		panic(fmt.Sprintf("scale: encoding unknown or skipped enum variant %d", i))
	}
	w.writeByte(d)
}

// ReadDiscriminant reads the discriminant byte and returns the index of the
// matching variant in declaration order, first match winning. An unmatched
// byte latches ErrUnknownTag and returns -1.
func (e *Enum) ReadDiscriminant(r *Reader) int {
	b := r.readByte()
	if r.err != nil {
		return -1
	}
	for i, d := range e.discriminants {
		if d == int(b) {
			return i
		}
	}
	r.fail(fmt.Errorf("%w: enum discriminant 0x%02x", ErrUnknownTag, b))
	return -1
}
