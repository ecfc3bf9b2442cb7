package daemon

import (
	"time"

	"github.com/endorses/blockstatd/internal/pkg/constants"
	"github.com/endorses/blockstatd/internal/pkg/output"
)

// Config is the validated runtime configuration the collection loop
// consumes. It is immutable once the loop starts.
type Config struct {
	// Devices are the tracked block device names, iterated in the order
	// they were configured.
	Devices []string

	// Interval separates the end of one cycle from the start of the next.
	// It is not drift-corrected: a cycle's own duration extends the
	// effective period.
	Interval time.Duration

	// Form selects the output format and transport.
	Form output.Form

	// ServerAddr is the graphite endpoint (host:port). Required for the
	// graphite form, ignored otherwise.
	ServerAddr string

	// SysBlockRoot is the directory holding per-device stat records.
	// Empty means constants.SysBlockPath; tests point it elsewhere.
	SysBlockRoot string
}

func (c Config) sysBlockRoot() string {
	if c.SysBlockRoot == "" {
		return constants.SysBlockPath
	}
	return c.SysBlockRoot
}
