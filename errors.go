package scale

import "errors"

var (
	// ErrNilIO indicates that NewReader/NewWriter was called with a nil interface.
	ErrNilIO = errors.New("scale: NewReader/NewWriter called with a nil io.Reader/io.Writer")

	// ErrInsufficientData indicates that a read could not complete because the
	// input ended before all required bytes were available. SCALE reads are
	// all-or-nothing; a partial read is never surfaced to a decoder.
	ErrInsufficientData = errors.New("scale: insufficient data")

	// ErrUnknownTag indicates that a tag byte did not match any known variant
	// (Option tag, Result tag, enum discriminant).
	ErrUnknownTag = errors.New("scale: unknown tag byte")

	// ErrOutOfRange indicates that a decoded numeric value is outside the legal
	// range for its target representation. This covers boolean bytes other than
	// 0/1, compact integers that exceed the destination width, compact
	// encodings that use a larger mode than the value requires, and duration
	// fractions of a full second or more.
	ErrOutOfRange = errors.New("scale: value out of range")

	// ErrInvalidUTF8 indicates that a decoded string is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("scale: invalid UTF-8 in string")

	// ErrDepthLimit indicates that decoding descended through more nested
	// heap-indirected values than the reader's configured maximum.
	ErrDepthLimit = errors.New("scale: maximum decode depth exceeded")

	// ErrCountOverflow indicates that an element count does not fit in u32,
	// e.g. when appending to an already-encoded sequence.
	ErrCountOverflow = errors.New("scale: element count overflows u32")

	// ErrTrailingData is returned by Unmarshal when bytes remain after the
	// value has been fully decoded.
	ErrTrailingData = errors.New("scale: trailing data after decoding")

	// ErrTooManyVariants indicates an enum layout with more than 256 variants;
	// the wire discriminant is a single byte.
	ErrTooManyVariants = errors.New("scale: enum has more than 256 variants")

	// ErrInvalidWrite indicates that an io.Writer returned an invalid count from Write.
	ErrInvalidWrite = errors.New("scale: writer returned invalid count from Write")
)
