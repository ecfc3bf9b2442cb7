// Package blockstat reads and parses the per-device I/O counter records the
// kernel exposes under the sysfs block directory.
package blockstat

// StatType identifies one of the eleven I/O counters in a block device stat
// record. The ordinal value is the counter's column index in the record, so
// the declaration order below must match the kernel's field order.
type StatType int

const (
	ReadIO StatType = iota
	ReadMerges
	ReadSectors
	ReadTicks
	WriteIO
	WriteMerges
	WriteSectors
	WriteTicks
	InFlight
	IOTicks
	TimeInQueue

	numStatTypes
)

// NumStatTypes is the number of counters in a stat record.
const NumStatTypes = int(numStatTypes)

// statTypeNames are the counters' symbolic names. They double as
// wire-format tokens in metric paths consumed downstream; renaming
// one is a breaking change.
var statTypeNames = [NumStatTypes]string{
	"read_io",
	"read_merges",
	"read_sectors",
	"read_ticks",
	"write_io",
	"write_merges",
	"write_sectors",
	"write_ticks",
	"in_flight",
	"io_ticks",
	"time_in_queue",
}

// String returns the counter's symbolic name.
func (s StatType) String() string {
	if s < 0 || s >= numStatTypes {
		return "unknown"
	}
	return statTypeNames[s]
}

// StatTypes returns every counter in record column order.
func StatTypes() []StatType {
	types := make([]StatType, NumStatTypes)
	for i := range types {
		types[i] = StatType(i)
	}
	return types
}
