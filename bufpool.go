package scale

import "sync"

// bytesBufPool reuses encode buffers across Marshal calls. This reduces GC
// pressure by avoiding a fresh allocation per encoded value.
var bytesBufPool = sync.Pool{
	New: func() any {
		// A 4KB default is chosen to avoid re-allocations for common value sizes.
		return NewByteBuffer(4096)
	},
}

const chunkSize = 32 * 1024

// Scratch buffers for discarding skipped data from a stream. 32KB is the
// common default chunk size used by io.Copy.
var bufPool = sync.Pool{
	New: func() any {
		b := make([]byte, chunkSize)
		return &b
	},
}
