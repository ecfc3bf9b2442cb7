package blockstat

import (
	"fmt"
	"os"
	"strings"
)

// ValidateDeviceName checks that name can be used as a bare entry under
// the sysfs block directory. The dot entries and path separators would
// escape it.
func ValidateDeviceName(name string) error {
	if name == "" || name == "." || name == ".." || strings.Contains(name, "/") {
		return fmt.Errorf("illegal block device name %q: names cannot be empty, %q, %q, or contain a %q",
			name, ".", "..", "/")
	}
	return nil
}

// ListDevices returns the names of every device present under root, in
// directory order.
func ListDevices(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("enumerate block devices: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}
