package scale

import (
	"encoding/binary"

	"golang.org/x/exp/constraints"
)

// le is the only byte order in this format.
var le = binary.LittleEndian

const defaultBufferSize = 4096

// DefaultMaxDepth bounds how deep a decode may recurse through nested
// heap-indirected values before failing with ErrDepthLimit.
const DefaultMaxDepth = 256

// DefaultMaxPreallocation caps the bytes a decoder allocates up front on the
// strength of a declared element count alone. Beyond it, collections grow
// incrementally, so a tiny input claiming a huge count cannot force a large
// allocation before the first read fails.
const DefaultMaxPreallocation = 4096

// Ptr is a helper function to create a pointer to a value, making Option
// construction and test setup cleaner.
func Ptr[T any](v T) *T { return &v }

// Roundup rounds n up to the nearest multiple of align.
func Roundup[T constraints.Integer](n, align T) T { return (n + (align - 1)) &^ (align - 1) }
