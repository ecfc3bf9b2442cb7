package daemon

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/endorses/blockstatd/internal/pkg/blockstat"
	"github.com/endorses/blockstatd/internal/pkg/output"
	"github.com/endorses/blockstatd/internal/pkg/sendbuf"
)

// fakeSysBlock builds a sysfs-like tree with one stat record per device.
func fakeSysBlock(t *testing.T, records map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for device, record := range records {
		dir := filepath.Join(root, device)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "stat"), []byte(record), 0o644))
	}
	return root
}

func newTestDaemon(config Config, out *bytes.Buffer) *Daemon {
	return &Daemon{
		config:    config,
		collector: blockstat.NewCollector(config.sysBlockRoot()),
		formatter: output.HumanFormatter{},
		buffer:    sendbuf.NewWriterBuffer(out),
	}
}

func TestCycle_EmitsOneBatchPerCycle(t *testing.T) {
	root := fakeSysBlock(t, map[string]string{
		"loop0": "0 0 0 0 0 0 0 0 0 0 0\n",
	})

	var out bytes.Buffer
	d := newTestDaemon(Config{
		Devices:      []string{"loop0"},
		Interval:     time.Second,
		Form:         output.FormHuman,
		SysBlockRoot: root,
	}, &out)

	cycles := 3
	for i := 0; i < cycles; i++ {
		require.NoError(t, d.cycle())
	}

	batches := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, batches, cycles*blockstat.NumStatTypes)
	for _, line := range batches {
		assert.True(t, strings.HasSuffix(line, ": 0"), "line %q should report value 0", line)
	}
}

func TestCycle_TimestampsNonDecreasing(t *testing.T) {
	root := fakeSysBlock(t, map[string]string{
		"loop0": "0 0 0 0 0 0 0 0 0 0 0\n",
	})

	collector := blockstat.NewCollector(root)
	var prev int64
	for i := 0; i < 3; i++ {
		sample, err := collector.Collect("loop0")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, sample.Time, prev)
		prev = sample.Time
	}
}

func TestCycle_DeviceOrderIsConfigurationOrder(t *testing.T) {
	root := fakeSysBlock(t, map[string]string{
		"sdb": "1 1 1 1 1 1 1 1 1 1 1\n",
		"sda": "2 2 2 2 2 2 2 2 2 2 2\n",
	})

	var out bytes.Buffer
	d := newTestDaemon(Config{
		Devices:      []string{"sdb", "sda"},
		Interval:     time.Second,
		Form:         output.FormHuman,
		SysBlockRoot: root,
	}, &out)

	require.NoError(t, d.cycle())

	first := strings.Index(out.String(), "[sdb]")
	second := strings.Index(out.String(), "[sda]")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second, "sdb was configured first and must be emitted first")
}

func TestCycle_UnavailableDeviceIsSkipped(t *testing.T) {
	root := fakeSysBlock(t, map[string]string{
		"sda": "1 2 3 4 5 6 7 8 9 10 11\n",
	})

	var out bytes.Buffer
	d := newTestDaemon(Config{
		Devices:      []string{"sda", "ghost"},
		Interval:     time.Second,
		Form:         output.FormHuman,
		SysBlockRoot: root,
	}, &out)

	require.NoError(t, d.cycle(), "a missing device must not abort the cycle")

	assert.Contains(t, out.String(), "[sda]")
	assert.NotContains(t, out.String(), "[ghost]")
}

func TestCycle_CorruptRecordIsFatal(t *testing.T) {
	root := fakeSysBlock(t, map[string]string{
		"sda": "1 2 oops 4 5 6 7 8 9 10 11\n",
	})

	var out bytes.Buffer
	d := newTestDaemon(Config{
		Devices:      []string{"sda"},
		Interval:     time.Second,
		Form:         output.FormHuman,
		SysBlockRoot: root,
	}, &out)

	err := d.cycle()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "got garbage from")
	assert.Equal(t, "", out.String(), "nothing is emitted for an aborted cycle")
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	root := fakeSysBlock(t, map[string]string{
		"loop0": "0 0 0 0 0 0 0 0 0 0 0\n",
	})

	var out bytes.Buffer
	d := newTestDaemon(Config{
		Devices:      []string{"loop0"},
		Interval:     10 * time.Millisecond,
		Form:         output.FormHuman,
		SysBlockRoot: root,
	}, &out)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- d.Run(ctx)
	}()

	// Let a few cycles happen, then stop
	time.Sleep(60 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after context cancellation")
	}

	lines := strings.Count(out.String(), "\n")
	assert.GreaterOrEqual(t, lines, blockstat.NumStatTypes, "at least one full batch was emitted")
}

func TestRun_PropagatesFatalCollectError(t *testing.T) {
	root := fakeSysBlock(t, map[string]string{
		"sda": "garbage record\n",
	})

	var out bytes.Buffer
	d := newTestDaemon(Config{
		Devices:      []string{"sda"},
		Interval:     time.Second,
		Form:         output.FormHuman,
		SysBlockRoot: root,
	}, &out)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := d.Run(ctx)
	require.Error(t, err)
}

func TestNew_SelectsTransportByForm(t *testing.T) {
	d, err := New(Config{
		Devices:  []string{"sda"},
		Interval: time.Second,
		Form:     output.FormHuman,
	})
	require.NoError(t, err)
	assert.IsType(t, output.HumanFormatter{}, d.formatter)
	assert.IsType(t, &sendbuf.WriterBuffer{}, d.buffer)

	d, err = New(Config{
		Devices:    []string{"sda"},
		Interval:   time.Second,
		Form:       output.FormGraphite,
		ServerAddr: "graphite:2003",
	})
	require.NoError(t, err)
	assert.IsType(t, &output.GraphiteFormatter{}, d.formatter)
	assert.IsType(t, &sendbuf.GraphiteBuffer{}, d.buffer)
}

func TestEndToEnd_GraphiteLinesOverLoop(t *testing.T) {
	root := fakeSysBlock(t, map[string]string{
		"loop0": "42 0 0 0 0 0 0 0 0 0 0\n",
	})

	var out bytes.Buffer
	d := &Daemon{
		config: Config{
			Devices:      []string{"loop0"},
			Interval:     time.Second,
			Form:         output.FormGraphite,
			SysBlockRoot: root,
		},
		collector: blockstat.NewCollector(root),
		formatter: output.NewGraphiteFormatterWithHostname("h"),
		buffer:    sendbuf.NewWriterBuffer(&out),
	}

	require.NoError(t, d.cycle())

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, blockstat.NumStatTypes)
	assert.True(t, strings.HasPrefix(lines[0], "blockstat.h.loop0.read_io 42 "),
		"got %q", lines[0])
	for i, statType := range blockstat.StatTypes() {
		assert.True(t, strings.HasPrefix(lines[i], fmt.Sprintf("blockstat.h.loop0.%s ", statType)),
			"line %d: got %q", i, lines[i])
	}
}
