package blockstat

// Sample holds one device's counters at one point in time.
//
// A sample either carries all eleven counters with a positive collection
// timestamp, or it is the unavailable sentinel: Time == 0 and no values,
// meaning the device could not be read this cycle. The sentinel is a
// normal value, not an error; formatters render it as zero lines.
type Sample struct {
	// Device is the bare device name, e.g. "sda".
	Device string

	// Time is the unix timestamp (seconds) the record was read, or 0 for
	// the unavailable sentinel.
	Time int64

	// Values maps each counter to its cumulative value. Empty for the
	// unavailable sentinel.
	Values map[StatType]uint64
}

// Unavailable reports whether the sample is the no-data sentinel.
func (s Sample) Unavailable() bool {
	return s.Time == 0
}
