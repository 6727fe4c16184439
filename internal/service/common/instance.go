//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-ps"
)

// ErrAlreadyRunning is returned when another process runs the same executable.
var ErrAlreadyRunning = errors.New("another instance is already running")

// ProcessLister lists running processes.
type ProcessLister func() ([]ps.Process, error)

// EnsureSingleInstance fails with ErrAlreadyRunning when a process other
// than the current one runs an executable with the same name.
func EnsureSingleInstance() error {
	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	return ensureSingle(ps.Processes, filepath.Base(executable), os.Getpid())
}

// ensureSingle scans list for processes named name other than selfPID.
func ensureSingle(list ProcessLister, name string, selfPID int) error {
	processList, err := list()
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}

	for _, process := range processList {
		if process.Pid() == selfPID {
			continue
		}

		// Linux truncates comm to 15 bytes; compare on that prefix.
		if !sameExecutable(process.Executable(), name) {
			continue
		}

		return fmt.Errorf("%w: pid %d", ErrAlreadyRunning, process.Pid())
	}

	return nil
}

// commLen is the length of the kernel task name, TASK_COMM_LEN minus the terminator.
const commLen = 15

// sameExecutable compares a process name from the process table with name.
func sameExecutable(processName, name string) bool {
	if processName == name {
		return true
	}

	if len(name) > commLen && len(processName) == commLen {
		return name[:commLen] == processName
	}

	return false
}
