// Package constants provides shared constants used across blockstatd components.
package constants

// Collection defaults
const (
	// DefaultIntervalSeconds is the collection interval used when none is configured
	DefaultIntervalSeconds = 60

	// DefaultGraphitePort is the plaintext line-protocol port of a stock carbon install
	DefaultGraphitePort = 2003

	// SysBlockPath is the sysfs directory exposing one entry per block device,
	// each with a whitespace-separated `stat` counter record
	SysBlockPath = "/sys/block"
)

// Flush behavior
const (
	// FlushAttempts is the connection budget for a single graphite flush.
	// Each attempt dials a fresh connection; the first successful send ends
	// the flush early. When the budget is exhausted the buffer is retained
	// and rides along with the next cycle's flush.
	FlushAttempts = 3
)

// Channel buffer sizes
const (
	// SignalChannelBuffer is the buffer size for OS signal channels.
	// Signals are infrequent and must be handled immediately.
	SignalChannelBuffer = 1
)
