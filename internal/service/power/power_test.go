package power

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeRecorder creates a shell script that stores its arguments in a file.
func writeRecorder(t *testing.T) (script, output string) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not available")
	}

	dir := t.TempDir()
	script = filepath.Join(dir, "record.sh")
	output = filepath.Join(dir, "args.txt")

	body := "#!/bin/sh\necho \"$@\" > '" + output + "'\n"
	require.NoError(t, os.WriteFile(script, []byte(body), 0o700)) //nolint:gosec // Test script must be executable.

	return script, output
}

// TestNew resolves method names.
func TestNew(t *testing.T) {
	t.Parallel()

	cases := map[string]Rebooter{
		MethodSyscall:  SyscallRebooter{},
		MethodProperty: PropertyRebooter{},
		MethodLogind:   LogindRebooter{},
		MethodNone:     NoopRebooter{},
	}

	for method, want := range cases {
		got, err := New(method, nil)
		require.NoError(t, err, method)
		require.IsType(t, want, got)
	}

	got, err := New(MethodCommand, []string{"reboot"})
	require.NoError(t, err)
	require.Equal(t, CommandRebooter{Argv: []string{"reboot"}}, got)

	_, err = New(MethodCommand, nil)
	require.ErrorIs(t, err, errEmptyCommand)

	_, err = New("kexec", nil)
	require.ErrorIs(t, err, errUnknownMethod)
}

// TestCommandRebooter appends the reason to the configured argv.
func TestCommandRebooter(t *testing.T) {
	t.Parallel()

	script, output := writeRecorder(t)

	err := CommandRebooter{Argv: []string{script, "--force"}}.Reboot(context.Background(), "rtc")
	require.NoError(t, err)

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	require.Equal(t, "--force rtc\n", string(got))

	require.ErrorIs(t, CommandRebooter{}.Reboot(context.Background(), "rtc"), errEmptyCommand)
}

// TestPropertyRebooter sets sys.powerctl to reboot,<reason>.
func TestPropertyRebooter(t *testing.T) {
	t.Parallel()

	script, output := writeRecorder(t)

	require.NoError(t, PropertyRebooter{Binary: script}.Reboot(context.Background(), "rtc"))

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	require.Equal(t, "sys.powerctl reboot,rtc\n", string(got))

	err = PropertyRebooter{Binary: filepath.Join(t.TempDir(), "missing")}.Reboot(context.Background(), "rtc")
	require.Error(t, err)
}

// TestNoopRebooter never fails.
func TestNoopRebooter(t *testing.T) {
	t.Parallel()

	require.NoError(t, NoopRebooter{}.Reboot(context.Background(), "rtc"))
}
