package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestValidate checks defaults and enumerated values.
func TestValidate(t *testing.T) {
	t.Parallel()

	require.Error(t, Validate(nil))

	// Empty config is completed with defaults.
	cfg := new(Config)
	require.NoError(t, Validate(cfg))
	require.Equal(t, DefaultRTCDevice, cfg.RTC.Device)
	require.Equal(t, RegisterAlarm, cfg.RTC.AlarmRegister)
	require.Equal(t, BackendAndroid, cfg.WakeTimer.Backend)
	require.Equal(t, DefaultAlarmDevice, cfg.WakeTimer.Device)
	require.Equal(t, DefaultBootModeKey, cfg.BootMode.Key)
	require.Equal(t, DefaultChargerValue, cfg.BootMode.ChargerValue)
	require.Equal(t, MethodSyscall, cfg.Reboot.Method)
	require.Equal(t, "rtc", cfg.Reboot.Reason)

	// Unknown backend.
	cfg = &Config{WakeTimer: WakeTimerConfig{Backend: "hrtimer"}}
	require.ErrorIs(t, Validate(cfg), errUnknownValue)

	// Unknown reboot method.
	cfg = &Config{Reboot: RebootConfig{Method: "kexec"}}
	require.ErrorIs(t, Validate(cfg), errUnknownValue)

	// Command method needs argv.
	cfg = &Config{Reboot: RebootConfig{Method: MethodCommand}}
	require.ErrorIs(t, Validate(cfg), errEmptyValue)

	// Bad zone.
	cfg = &Config{RTC: RTCConfig{Location: "Mars/Olympus"}}
	require.Error(t, Validate(cfg))

	// Bad log level.
	cfg = &Config{LogLevel: "chatty"}
	require.ErrorIs(t, Validate(cfg), errUnknownValue)

	// Timerfd backend does not need a device node.
	cfg = &Config{WakeTimer: WakeTimerConfig{Backend: BackendTimerfd}}
	require.NoError(t, Validate(cfg))
	require.Empty(t, cfg.WakeTimer.Device)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.RTC.Location = "UTC"
	cfg.WakeTimer.Backend = BackendTimerfd
	cfg.BootMode.Source = SourceStatic
	cfg.BootMode.Value = "charger"
	cfg.Reboot.Method = MethodNone

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
	require.Equal(t, "UTC", loaded.Location().String())

	_, err = os.Stat(path)
	require.NoError(t, err)
}

// TestLoadPartialFile checks that omitted keys keep their defaults.
func TestLoadPartialFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := []byte("rtc:\n  device: /dev/rtc1\nreboot:\n  method: property\n")
	require.NoError(t, os.WriteFile(path, contents, DefaultFilePermissions))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/dev/rtc1", cfg.RTC.Device)
	require.Equal(t, RegisterAlarm, cfg.RTC.AlarmRegister)
	require.Equal(t, MethodProperty, cfg.Reboot.Method)
	require.Equal(t, "rtc", cfg.Reboot.Reason)
}

// TestLoadMissingExplicitPath verifies an explicit path must exist.
func TestLoadMissingExplicitPath(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

// TestSaveNil rejects a nil configuration.
func TestSaveNil(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Save(filepath.Join(t.TempDir(), "x.yaml"), nil), errConfigIsNotSet)
}
