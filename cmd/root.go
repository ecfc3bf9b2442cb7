package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/endorses/blockstatd/internal/pkg/blockstat"
	"github.com/endorses/blockstatd/internal/pkg/constants"
	"github.com/endorses/blockstatd/internal/pkg/daemon"
	"github.com/endorses/blockstatd/internal/pkg/logger"
	"github.com/endorses/blockstatd/internal/pkg/output"
	"github.com/endorses/blockstatd/internal/pkg/pidfile"
	"github.com/endorses/blockstatd/internal/pkg/signals"
	"github.com/endorses/blockstatd/internal/pkg/version"
)

// Exit statuses: 1 for runtime setup failures, 2 for invalid configuration.
const (
	exitRuntimeFailure = 1
	exitUsageError     = 2
)

var (
	cfgFile     string
	intervalSec int
	pidFilePath string
	outputForm  string
	serverAddr  string
	background  bool
	allDevices  bool
	verbosity   int
	quietness   int
)

var rootCmd = &cobra.Command{
	Use:   "blockstatd [flags] <blockdev> [blockdev ...]",
	Short: "Send Linux blockstat metrics to Graphite",
	Long: `blockstatd periodically reads the kernel's per-device block I/O counters
from /sys/block/<dev>/stat and emits them as metric lines, either human
readable on stdout or to a graphite server over TCP.`,
	Version:       version.GetFullVersion(),
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

// Execute runs the root command. Cobra-level failures (unknown flags, bad
// flag values) are configuration errors.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitUsageError)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.blockstatd.yaml)")

	rootCmd.Flags().IntVarP(&intervalSec, "interval", "i", constants.DefaultIntervalSeconds, "collection interval in seconds")
	rootCmd.Flags().StringVarP(&pidFilePath, "pidfile", "p", "", "PID file path (must be absolute); removed on graceful shutdown")
	rootCmd.Flags().StringVarP(&outputForm, "output", "o", "", `output form, "human" or "graphite" (default: human, or graphite when a server is set)`)
	rootCmd.Flags().StringVarP(&serverAddr, "server", "s", "", fmt.Sprintf("graphite server, host[:port] (default port %d)", constants.DefaultGraphitePort))
	rootCmd.Flags().BoolVarP(&background, "daemonize", "D", false, "fork to the background")
	rootCmd.Flags().BoolVarP(&allDevices, "all", "a", false, "collect all block devices found under "+constants.SysBlockPath)
	rootCmd.Flags().CountVarP(&verbosity, "verbose", "v", "be more verbose (repeatable)")
	rootCmd.Flags().CountVarP(&quietness, "quiet", "q", "be less verbose")

	viper.BindPFlag("blockstat.interval", rootCmd.Flags().Lookup("interval"))
	viper.BindPFlag("blockstat.pidfile", rootCmd.Flags().Lookup("pidfile"))
	viper.BindPFlag("blockstat.output", rootCmd.Flags().Lookup("output"))
	viper.BindPFlag("blockstat.server", rootCmd.Flags().Lookup("server"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".blockstatd")
	}

	viper.SetEnvPrefix("BLOCKSTATD")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger.Initialize()
	logger.SetLevel(logger.LevelFromVerbosity(verbosity, quietness))

	config, pidPath, err := buildConfig(args)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(exitUsageError)
	}

	if background {
		parent, err := daemon.Daemonize()
		if err != nil {
			logger.Error("Failed to daemonize", "error", err)
			os.Exit(exitRuntimeFailure)
		}
		if parent {
			// The detached child carries on; the parent is done.
			return nil
		}
	}

	if pidPath != "" {
		if err := pidfile.Write(pidPath); err != nil {
			logger.Error("Failed to set up PID file", "error", err)
			os.Exit(exitRuntimeFailure)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cleanup := signals.SetupHandler(ctx, cancel, func() {
		removePidFile(pidPath)
	})
	defer cleanup()

	d, err := daemon.New(config)
	if err != nil {
		logger.Error("Failed to set up collection", "error", err)
		removePidFile(pidPath)
		os.Exit(exitRuntimeFailure)
	}

	if err := d.Run(ctx); err != nil {
		logger.Error("Fatal collection error", "error", err)
		removePidFile(pidPath)
		os.Exit(exitRuntimeFailure)
	}

	removePidFile(pidPath)
	return nil
}

func removePidFile(pidPath string) {
	if pidPath == "" {
		return
	}
	if err := pidfile.Remove(pidPath); err != nil {
		logger.Warn("Failed to remove PID file", "error", err)
	}
}

// buildConfig validates the flag, config-file, and argument surface into
// the daemon's immutable config plus the PID file path. Every failure here
// is a configuration error.
func buildConfig(args []string) (daemon.Config, string, error) {
	devices := make([]string, 0, len(args))
	for _, name := range args {
		if err := blockstat.ValidateDeviceName(name); err != nil {
			return daemon.Config{}, "", err
		}
		if !slices.Contains(devices, name) {
			devices = append(devices, name)
		}
	}

	if allDevices {
		found, err := blockstat.ListDevices(constants.SysBlockPath)
		if err != nil {
			return daemon.Config{}, "", err
		}
		for _, name := range found {
			if !slices.Contains(devices, name) {
				devices = append(devices, name)
			}
		}
	}

	if len(devices) == 0 {
		return daemon.Config{}, "", errors.New("at least one block device must be specified")
	}

	interval := getIntConfig("blockstat.interval", intervalSec)
	if interval <= 0 {
		return daemon.Config{}, "", fmt.Errorf("illegal interval %d, must be a positive number of seconds", interval)
	}

	server := getStringConfig("blockstat.server", serverAddr)

	form, err := resolveForm(getStringConfig("blockstat.output", outputForm), server)
	if err != nil {
		return daemon.Config{}, "", err
	}

	if form == output.FormGraphite {
		server, err = normalizeServerAddr(server)
		if err != nil {
			return daemon.Config{}, "", err
		}
	}

	pidPath := getStringConfig("blockstat.pidfile", pidFilePath)
	if pidPath != "" && !strings.HasPrefix(pidPath, "/") {
		return daemon.Config{}, "", errors.New("PID file paths must be absolute")
	}

	return daemon.Config{
		Devices:    devices,
		Interval:   time.Duration(interval) * time.Second,
		Form:       form,
		ServerAddr: server,
	}, pidPath, nil
}

// resolveForm applies the original defaulting: human unless a server is
// configured, and graphite demands a server.
func resolveForm(form, server string) (output.Form, error) {
	if form == "" {
		if server == "" {
			return output.FormHuman, nil
		}
		return output.FormGraphite, nil
	}

	parsed, err := output.ParseForm(form)
	if err != nil {
		return "", err
	}
	if parsed == output.FormGraphite && server == "" {
		return "", errors.New("with the graphite output form, a server must be specified")
	}
	return parsed, nil
}

// normalizeServerAddr fills in the default graphite port when the address
// has none and rejects non-numeric ports.
func normalizeServerAddr(addr string) (string, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		// No port component; use the default.
		return net.JoinHostPort(addr, strconv.Itoa(constants.DefaultGraphitePort)), nil
	}
	if _, err := strconv.Atoi(port); err != nil {
		return "", fmt.Errorf("illegal port number %q, must be digits only", port)
	}
	return net.JoinHostPort(host, port), nil
}

// Helper functions to get config values with fallback to flags
func getStringConfig(key, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return viper.GetString(key)
}

func getIntConfig(key string, flagValue int) int {
	if flagValue != constants.DefaultIntervalSeconds {
		return flagValue
	}
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	return flagValue
}
