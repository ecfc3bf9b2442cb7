package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/endorses/blockstatd/internal/pkg/blockstat"
)

// GraphiteFormatter renders the graphite plaintext line protocol:
//
//	blockstat.<host>.<device>.<counter> <value> <timestamp>
type GraphiteFormatter struct {
	hostname string
}

// NewGraphiteFormatter resolves the metric-path host component once at
// construction. The host component is the local hostname truncated at the
// first domain separator.
func NewGraphiteFormatter() (*GraphiteFormatter, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("resolve hostname for metric path: %w", err)
	}
	return NewGraphiteFormatterWithHostname(hostname), nil
}

// NewGraphiteFormatterWithHostname builds a formatter with an explicit
// hostname, truncated at the first domain separator.
func NewGraphiteFormatterWithHostname(hostname string) *GraphiteFormatter {
	short, _, _ := strings.Cut(hostname, ".")
	return &GraphiteFormatter{hostname: short}
}

// Format renders the sample as graphite plaintext lines.
func (f *GraphiteFormatter) Format(sample blockstat.Sample) []string {
	if sample.Unavailable() {
		return nil
	}

	lines := make([]string, 0, len(sample.Values))
	for _, statType := range blockstat.StatTypes() {
		lines = append(lines, fmt.Sprintf("blockstat.%s.%s.%s %d %d",
			f.hostname, sample.Device, statType, sample.Values[statType], sample.Time))
	}
	return lines
}
