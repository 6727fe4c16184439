package alarm

import (
	"errors"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestStateNames verifies names and terminal states.
func TestStateNames(t *testing.T) {
	t.Parallel()

	require.Equal(t, "idle", StateIdle.String())
	require.Equal(t, "aborted", StateAborted.String())
	require.Equal(t, "unknown(42)", State(42).String())

	require.True(t, StateConfirmed.IsTerminal())
	require.True(t, StateAborted.IsTerminal())
	require.False(t, StateWaiting.IsTerminal())
}

// TestWaitOutcomeRetry verifies which outcomes keep the wait loop going.
func TestWaitOutcomeRetry(t *testing.T) {
	t.Parallel()

	require.True(t, OutcomeInterrupted.Retry())
	require.True(t, OutcomeNotYetExpired.Retry())
	require.False(t, OutcomeConfirmed.Retry())
	require.False(t, OutcomeHardError.Retry())
}

// TestDeviceErrorMatching ensures DeviceError matches its kind and its cause.
func TestDeviceErrorMatching(t *testing.T) {
	t.Parallel()

	err := NewDeviceError(ErrIoctl, "/dev/rtc0", "RTC_RD_TIME", syscall.EINVAL)

	require.ErrorIs(t, err, ErrIoctl)
	require.ErrorIs(t, err, syscall.EINVAL)
	require.NotErrorIs(t, err, ErrDeviceOpen)
	require.Contains(t, err.Error(), "/dev/rtc0")
	require.Contains(t, err.Error(), "RTC_RD_TIME")

	var deviceErr *DeviceError
	require.True(t, errors.As(err, &deviceErr))
	require.Equal(t, "RTC_RD_TIME", deviceErr.Op)

	bare := NewDeviceError(ErrWait, "/dev/alarm", "ANDROID_ALARM_WAIT", nil)
	require.ErrorIs(t, bare, ErrWait)
	require.Equal(t, "wait on alarm failed: /dev/alarm ANDROID_ALARM_WAIT", bare.Error())
}
