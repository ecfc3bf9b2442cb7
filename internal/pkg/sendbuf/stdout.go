package sendbuf

import (
	"fmt"
	"io"
	"os"
)

// WriterBuffer flushes batches to a local stream, normally stdout. The
// local stream is treated as infallible from the caller's side, so every
// flush clears the buffer.
type WriterBuffer struct {
	buffer
	out io.Writer
}

// NewStdoutBuffer returns a buffer that flushes to stdout. Metric output
// stays on stdout exclusively; diagnostics go to stderr via the logger.
func NewStdoutBuffer() *WriterBuffer {
	return NewWriterBuffer(os.Stdout)
}

// NewWriterBuffer returns a buffer that flushes to out.
func NewWriterBuffer(out io.Writer) *WriterBuffer {
	return &WriterBuffer{out: out}
}

// Flush writes the whole batch as a single write and clears it.
func (b *WriterBuffer) Flush() {
	fmt.Fprintln(b.out, b.messages)
	b.Clear()
}
