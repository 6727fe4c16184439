//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"errors"
	"testing"

	"github.com/mitchellh/go-ps"
	"github.com/stretchr/testify/require"
)

var errTestList = errors.New("test list error")

// fakeProcess implements ps.Process.
type fakeProcess struct {
	pid  int
	name string
}

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return 1 }
func (p fakeProcess) Executable() string { return p.name }

// listOf returns a ProcessLister over fixed processes.
func listOf(processes ...ps.Process) ProcessLister {
	return func() ([]ps.Process, error) {
		return processes, nil
	}
}

// TestEnsureSingle detects another process with the same name and ignores itself.
func TestEnsureSingle(t *testing.T) {
	t.Parallel()

	self := fakeProcess{pid: 100, name: "poweroff-alarm"}
	other := fakeProcess{pid: 200, name: "poweroff-alarm"}
	unrelated := fakeProcess{pid: 300, name: "healthd"}

	require.NoError(t, ensureSingle(listOf(self, unrelated), "poweroff-alarm", 100))

	err := ensureSingle(listOf(self, other, unrelated), "poweroff-alarm", 100)
	require.ErrorIs(t, err, ErrAlreadyRunning)
	require.Contains(t, err.Error(), "pid 200")

	// Truncated kernel task names still match.
	truncated := fakeProcess{pid: 400, name: "poweroff-alarm-"}
	err = ensureSingle(listOf(truncated), "poweroff-alarm-daemon", 100)
	require.ErrorIs(t, err, ErrAlreadyRunning)

	err = ensureSingle(func() ([]ps.Process, error) { return nil, errTestList }, "x", 1)
	require.ErrorIs(t, err, errTestList)
}

// TestEnsureSingleInstance passes for the test binary itself.
func TestEnsureSingleInstance(t *testing.T) {
	t.Parallel()

	require.NoError(t, EnsureSingleInstance())
}
