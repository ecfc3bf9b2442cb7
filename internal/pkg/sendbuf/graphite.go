package sendbuf

import (
	"net"

	"github.com/endorses/blockstatd/internal/pkg/constants"
	"github.com/endorses/blockstatd/internal/pkg/logger"
)

// DialFunc opens a transport connection. It exists so tests can substitute
// the network.
type DialFunc func(network, address string) (net.Conn, error)

// GraphiteBuffer flushes batches to a graphite plaintext endpoint over TCP.
// Every attempt dials a fresh connection: flush frequency equals the
// collection interval, so a persistent connection buys nothing. No socket
// timeouts are set; a hung server stalls the cycle until the OS gives up.
type GraphiteBuffer struct {
	buffer
	addr string
	dial DialFunc
}

// NewGraphiteBuffer returns a buffer delivering to addr (host:port).
func NewGraphiteBuffer(addr string) *GraphiteBuffer {
	return &GraphiteBuffer{addr: addr, dial: net.Dial}
}

// Flush attempts delivery up to constants.FlushAttempts times and clears
// the buffer on the first fully successful send. Connect and send failures
// are logged and consume an attempt. When every attempt fails the content
// stays buffered and rides along with the next cycle's flush.
func (b *GraphiteBuffer) Flush() {
	logger.Debug("Connecting to graphite server", "addr", b.addr)

	for attempt := 1; attempt <= constants.FlushAttempts; attempt++ {
		conn, err := b.dial("tcp", b.addr)
		if err != nil {
			logger.Warn("Failed to connect to the graphite server",
				"addr", b.addr, "attempt", attempt, "error", err)
			continue
		}

		// The batch is terminated with an extra trailing newline.
		_, err = conn.Write([]byte(b.messages + "\n"))
		if err != nil {
			conn.Close()
			logger.Warn("Failed to send to the graphite server",
				"addr", b.addr, "attempt", attempt, "error", err)
			continue
		}

		conn.Close()
		b.Clear()
		return
	}

	logger.Warn("Flush failed, keeping buffered metrics for the next cycle",
		"addr", b.addr, "buffered_bytes", len(b.messages))
}
