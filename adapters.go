package scale

import (
	"bufio"
	"bytes"
)

// Thin adapters giving standard library buffers the sink/source capability.

type (
	bytesBufferSink   struct{ *bytes.Buffer }
	bufioSink         struct{ *bufio.Writer }
	bytesReaderSource struct{ *bytes.Reader }
	bytesBufferSource struct{ *bytes.Buffer }
	bufioSource       struct{ *bufio.Reader }
)

func (w *bytesBufferSink) Flush() error { return nil }

func (r *bytesReaderSource) Remaining() int { return r.Len() }
func (r *bytesBufferSource) Remaining() int { return r.Len() }

// Remaining is unknowable for a buffered stream: the buffer holds only a
// window of it. Callers fall back to bounded incremental allocation.
func (r *bufioSource) Remaining() int { return -1 }
