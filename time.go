package scale

import (
	"fmt"
	"math"
	"time"
)

// Durations travel as a 2-tuple of whole seconds (u64) and a sub-second
// fraction in nanoseconds (u32). The fraction must be below one full second.

const maxWholeSeconds = math.MaxInt64 / int64(time.Second)

// WriteDuration appends d as (seconds, nanoseconds). Negative durations have
// no wire form and latch ErrOutOfRange.
func (w *Writer) WriteDuration(d time.Duration) {
	if d < 0 {
		w.setError(fmt.Errorf("%w: negative duration %v", ErrOutOfRange, d))
		return
	}
	w.WriteUint64(uint64(d / time.Second))
	w.WriteUint32(uint32(d % time.Second))
}

// ReadDuration reads a (seconds, nanoseconds) pair. A fraction of 10^9 or
// more is malformed, and a total beyond Go's duration range cannot be
// represented.
func (r *Reader) ReadDuration(dest *time.Duration) {
	var secs uint64
	var nanos uint32
	r.ReadUint64(&secs)
	r.ReadUint32(&nanos)
	if r.err != nil {
		return
	}
	if nanos >= uint32(time.Second) {
		r.fail(fmt.Errorf("%w: duration fraction %d nanoseconds", ErrOutOfRange, nanos))
		return
	}
	if secs > uint64(maxWholeSeconds) ||
		(secs == uint64(maxWholeSeconds) && int64(nanos) > math.MaxInt64-maxWholeSeconds*int64(time.Second)) {
		r.fail(fmt.Errorf("%w: duration of %d seconds", ErrOutOfRange, secs))
		return
	}
	*dest = time.Duration(secs)*time.Second + time.Duration(nanos)
}
