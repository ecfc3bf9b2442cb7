package blockstat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDeviceName(t *testing.T) {
	for _, name := range []string{"sda", "nvme0n1", "dm-0", "loop0", "md127"} {
		assert.NoError(t, ValidateDeviceName(name), "%q should be accepted", name)
	}

	for _, name := range []string{"", ".", "..", "sda/", "../sda", "dev/sda"} {
		assert.Error(t, ValidateDeviceName(name), "%q should be rejected", name)
	}
}

func TestListDevices(t *testing.T) {
	root := t.TempDir()
	for _, device := range []string{"sda", "sdb", "loop0"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, device), 0o755))
	}

	devices, err := ListDevices(root)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"sda", "sdb", "loop0"}, devices)
}

func TestListDevices_MissingRoot(t *testing.T) {
	_, err := ListDevices(filepath.Join(t.TempDir(), "no-such-dir"))
	assert.Error(t, err)
}
