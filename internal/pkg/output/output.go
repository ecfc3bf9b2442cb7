// Package output renders collected samples as metric lines, either for a
// human reader or for a graphite-compatible collector.
package output

import (
	"fmt"

	"github.com/endorses/blockstatd/internal/pkg/blockstat"
)

// Form selects the output format and its transport family.
type Form string

const (
	// FormHuman writes timestamped per-counter lines to stdout.
	FormHuman Form = "human"

	// FormGraphite writes graphite plaintext protocol lines to a server.
	FormGraphite Form = "graphite"
)

// ParseForm validates a configured output form.
func ParseForm(s string) (Form, error) {
	switch Form(s) {
	case FormHuman, FormGraphite:
		return Form(s), nil
	}
	return "", fmt.Errorf("unrecognized output form %q (want %q or %q)", s, FormHuman, FormGraphite)
}

// Formatter renders one sample into zero or more metric lines. It is pure:
// no I/O, no mutation. The unavailable sentinel renders as zero lines in
// every format.
type Formatter interface {
	Format(sample blockstat.Sample) []string
}
