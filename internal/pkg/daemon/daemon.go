// Package daemon runs the fixed-interval collect/format/flush cycle.
package daemon

import (
	"context"
	"time"

	"github.com/endorses/blockstatd/internal/pkg/blockstat"
	"github.com/endorses/blockstatd/internal/pkg/logger"
	"github.com/endorses/blockstatd/internal/pkg/output"
	"github.com/endorses/blockstatd/internal/pkg/sendbuf"
)

// Daemon drives one collector across the configured device set and
// delivers each cycle's batch through the send buffer.
type Daemon struct {
	config    Config
	collector *blockstat.Collector
	formatter output.Formatter
	buffer    sendbuf.Buffer
}

// New wires a daemon from a validated config, selecting the formatter and
// transport pair that matches the output form.
func New(config Config) (*Daemon, error) {
	var (
		formatter output.Formatter
		buffer    sendbuf.Buffer
	)

	switch config.Form {
	case output.FormGraphite:
		graphite, err := output.NewGraphiteFormatter()
		if err != nil {
			return nil, err
		}
		formatter = graphite
		buffer = sendbuf.NewGraphiteBuffer(config.ServerAddr)
	default:
		formatter = output.HumanFormatter{}
		buffer = sendbuf.NewStdoutBuffer()
	}

	return &Daemon{
		config:    config,
		collector: blockstat.NewCollector(config.sysBlockRoot()),
		formatter: formatter,
		buffer:    buffer,
	}, nil
}

// Run executes collection cycles until ctx is cancelled or a corrupt stat
// record is encountered. A corrupt record aborts the run: it means the
// kernel's counter layout no longer matches what we publish.
func (d *Daemon) Run(ctx context.Context) error {
	logger.Info("blockstatd collecting",
		"devices", d.config.Devices,
		"interval", d.config.Interval.String(),
		"output", string(d.config.Form))

	for {
		if err := d.cycle(); err != nil {
			return err
		}

		// Sleep a full interval measured from the end of the cycle, so
		// collection and flush time stretches the effective period.
		select {
		case <-ctx.Done():
			logger.Info("blockstatd stopping")
			return nil
		case <-time.After(d.config.Interval):
		}
	}
}

// cycle collects every device, formats the samples in the same device
// order, and flushes the batch once.
func (d *Daemon) cycle() error {
	samples := make([]blockstat.Sample, 0, len(d.config.Devices))
	for _, device := range d.config.Devices {
		sample, err := d.collector.Collect(device)
		if err != nil {
			return err
		}
		samples = append(samples, sample)
	}

	for _, sample := range samples {
		for _, line := range d.formatter.Format(sample) {
			d.buffer.Put(line)
		}
	}

	d.buffer.Flush()
	return nil
}
