// Package installer runs a downloaded installer unattended and owns the
// artifact's cleanup.
package installer

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/npp-tools/npp-updater/internal/logging"
)

var log = logging.L("installer")

// silentFlag suppresses the installer UI for unattended execution.
const silentFlag = "/S"

// ErrorKind classifies installation failures.
type ErrorKind int

const (
	// LaunchFailed means the installer process could not be started.
	LaunchFailed ErrorKind = iota
	// ProcessFailed means the installer ran and exited non-zero.
	ProcessFailed
)

// Error reports a failed installation.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ProcessFailed:
		return fmt.Sprintf("installer exited with failure: %v", e.Err)
	default:
		return fmt.Sprintf("installer could not be launched: %v", e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Runner invokes installer artifacts.
type Runner struct{}

func New() *Runner {
	return &Runner{}
}

// Run invokes the artifact at path with the silent flag and waits for it
// to finish. No timeout is applied; installers must be allowed to run to
// completion. The artifact is deleted before Run returns on every exit
// path, success or failure.
func (r *Runner) Run(path string) error {
	defer removeArtifact(path)

	log.Info("running installer", "path", path)
	err := exec.Command(path, silentFlag).Run()
	if err == nil {
		log.Info("installation complete")
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &Error{Kind: ProcessFailed, Err: err}
	}
	return &Error{Kind: LaunchFailed, Err: err}
}

func removeArtifact(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := os.Remove(path); err != nil {
		log.Warn("failed to remove installer artifact", "path", path, logging.KeyError, err)
	}
}
