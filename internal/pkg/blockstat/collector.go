package blockstat

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/endorses/blockstatd/internal/pkg/logger"
)

// Collector reads per-device stat records from a sysfs block directory.
type Collector struct {
	root string
}

// NewCollector creates a collector rooted at the given block directory,
// normally constants.SysBlockPath. Tests point it at a fixture directory.
func NewCollector(root string) *Collector {
	return &Collector{root: root}
}

// Collect reads the stat record for device and parses it into a Sample.
//
// An unreadable record (device removed, permission denied) is logged and
// reported as the unavailable sentinel; the cycle continues without this
// device. A field that does not parse as an unsigned integer is returned
// as an error instead: the record layout no longer matches the counters
// we publish, and carrying on would emit garbage metrics.
func (c *Collector) Collect(device string) (Sample, error) {
	statPath := filepath.Join(c.root, device, "stat")

	data, err := os.ReadFile(statPath)
	if err != nil {
		logger.Warn("Failed to read block stat record, skipping device this cycle",
			"device", device, "path", statPath, "error", err)
		return Sample{Device: device}, nil
	}

	fields := strings.Fields(string(data))
	if len(fields) < NumStatTypes {
		return Sample{Device: device}, fmt.Errorf(
			"got garbage from %s: %d fields, want at least %d", statPath, len(fields), NumStatTypes)
	}

	sample := Sample{
		Device: device,
		Time:   time.Now().Unix(),
		Values: make(map[StatType]uint64, NumStatTypes),
	}

	for _, statType := range StatTypes() {
		value, err := strconv.ParseUint(fields[statType], 10, 64)
		if err != nil {
			return Sample{Device: device}, fmt.Errorf("got garbage from %s: %w", statPath, err)
		}
		sample.Values[statType] = value
	}

	return sample, nil
}
