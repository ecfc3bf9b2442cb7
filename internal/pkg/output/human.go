package output

import (
	"fmt"
	"time"

	"github.com/endorses/blockstatd/internal/pkg/blockstat"
)

// humanTimeLayout is an ISO-like local timestamp, one per line.
const humanTimeLayout = "2006-01-02 15:04:05"

// HumanFormatter renders one readable line per counter:
//
//	2017-06-01 12:00:00 read_io[sda]: 42
type HumanFormatter struct{}

// Format renders the sample for terminal consumption.
func (HumanFormatter) Format(sample blockstat.Sample) []string {
	if sample.Unavailable() {
		return nil
	}

	prettyTime := time.Unix(sample.Time, 0).Format(humanTimeLayout)
	lines := make([]string, 0, len(sample.Values))
	for _, statType := range blockstat.StatTypes() {
		lines = append(lines, fmt.Sprintf("%s %s[%s]: %d",
			prettyTime, statType, sample.Device, sample.Values[statType]))
	}
	return lines
}
