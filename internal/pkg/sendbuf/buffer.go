// Package sendbuf accumulates formatted metric lines between flushes and
// delivers them to the configured destination.
//
// A buffer is cleared only when a flush succeeds. When delivery fails the
// content is retained, so the next cycle appends to it and the backlog is
// retried on that cycle's flush. There is deliberately no size cap: a
// sustained collector outage grows the buffer without bound rather than
// dropping samples silently.
package sendbuf

// Buffer is a flushable accumulator of newline-joined metric lines.
type Buffer interface {
	// Put appends a line, separated from existing content by a newline.
	Put(line string)

	// Messages returns the accumulated content.
	Messages() string

	// Clear empties the buffer unconditionally.
	Clear()

	// Flush attempts delivery and clears the content only on success.
	// Failures are logged, never returned.
	Flush()
}

// buffer is the accumulator shared by every transport.
type buffer struct {
	messages string
}

func (b *buffer) Put(line string) {
	if b.messages != "" {
		b.messages += "\n"
	}
	b.messages += line
}

func (b *buffer) Messages() string {
	return b.messages
}

func (b *buffer) Clear() {
	b.messages = ""
}
