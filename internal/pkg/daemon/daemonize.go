package daemon

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// daemonEnvMarker tells a re-executed child that it already is the
// detached daemon and must not background itself again.
const daemonEnvMarker = "BLOCKSTATD_DAEMONIZED"

// InBackground reports whether this process is the detached child.
func InBackground() bool {
	return os.Getenv(daemonEnvMarker) == "1"
}

// Daemonize starts the current binary again as a detached session leader
// and returns true in the parent, which has nothing left to do but exit.
// The Go runtime cannot fork(), so backgrounding is a re-exec with a
// marker in the child's environment. The parent does not communicate with
// the child beyond observing that it started.
func Daemonize() (parent bool, err error) {
	if InBackground() {
		return false, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return false, fmt.Errorf("locate executable for re-exec: %w", err)
	}

	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.Env = append(os.Environ(), daemonEnvMarker+"=1")
	// The child keeps the metric and diagnostic streams.
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return false, fmt.Errorf("start background process: %w", err)
	}

	return true, nil
}
