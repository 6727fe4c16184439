package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/poweroff-alarm/internal/domain/alarm"
	"github.com/oshokin/poweroff-alarm/internal/logger"
)

// Config holds the settings of the poweroff-alarm daemon.
type Config struct {
	// RTC describes the real-time clock device.
	RTC RTCConfig `yaml:"rtc"`
	// WakeTimer describes the wake-capable alarm device.
	WakeTimer WakeTimerConfig `yaml:"wake_timer"`
	// BootMode describes how the boot mode is obtained.
	BootMode BootModeConfig `yaml:"boot_mode"`
	// Reboot describes how the reboot is requested.
	Reboot RebootConfig `yaml:"reboot"`
	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// RTCConfig describes the RTC character device.
type RTCConfig struct {
	// Device is the RTC node, usually /dev/rtc0.
	Device string `yaml:"device"`
	// AlarmRegister selects the control request used to read the alarm:
	// "alarm" (RTC_ALM_READ) or "wakealarm" (RTC_WKALM_RD).
	AlarmRegister string `yaml:"alarm_register"`
	// Location is the zone the RTC calendar is interpreted in: Local, UTC or an IANA name.
	Location string `yaml:"location"`
}

// WakeTimerConfig describes the wake-capable elapsed-realtime alarm.
type WakeTimerConfig struct {
	// Backend is "android" (/dev/alarm) or "timerfd" (CLOCK_BOOTTIME_ALARM).
	Backend string `yaml:"backend"`
	// Device is the alarm node for the android backend.
	Device string `yaml:"device"`
}

// BootModeConfig describes the startup gate.
type BootModeConfig struct {
	// Source is "getprop", "cmdline" or "static".
	Source string `yaml:"source"`
	// Key is the property name, ro.bootmode by default.
	Key string `yaml:"key"`
	// Value is the boot mode reported by the static source.
	Value string `yaml:"value"`
	// ChargerValue is the boot mode that starts the mechanism.
	ChargerValue string `yaml:"charger_value"`
}

// RebootConfig describes the reboot request.
type RebootConfig struct {
	// Method is "syscall", "property", "command", "logind" or "none".
	Method string `yaml:"method"`
	// Reason tags the restart, "rtc" by default.
	Reason string `yaml:"reason"`
	// Command is the argv used by the command method; the reason is appended.
	Command []string `yaml:"command"`
}

const (
	// AppName is used for the XDG config lookup.
	AppName = "poweroff-alarm"

	// DefaultConfigFilename is the file name searched in the XDG config dirs.
	DefaultConfigFilename = "config.yaml"

	// DefaultRTCDevice is the first RTC of the system.
	DefaultRTCDevice = "/dev/rtc0"

	// DefaultAlarmDevice is the Android alarm driver node.
	DefaultAlarmDevice = "/dev/alarm"

	// DefaultBootModeKey is the Android property holding the boot mode.
	DefaultBootModeKey = "ro.bootmode"

	// DefaultChargerValue is the boot mode of power-off charging.
	DefaultChargerValue = "charger"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

// Alarm register names.
const (
	RegisterAlarm     = "alarm"
	RegisterWakeAlarm = "wakealarm"
)

// Wake timer backends.
const (
	BackendAndroid = "android"
	BackendTimerfd = "timerfd"
)

// Boot mode sources.
const (
	SourceGetprop = "getprop"
	SourceCmdline = "cmdline"
	SourceStatic  = "static"
)

// Reboot methods.
const (
	MethodSyscall  = "syscall"
	MethodProperty = "property"
	MethodCommand  = "command"
	MethodLogind   = "logind"
	MethodNone     = "none"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownValue is returned when an enumerated setting has an unsupported value.
	errUnknownValue = errors.New("unknown value")
	// errEmptyValue is returned when a required setting is empty.
	errEmptyValue = errors.New("value must be provided")
)

// Default returns the settings used when no configuration file exists.
func Default() *Config {
	return &Config{
		RTC: RTCConfig{
			Device:        DefaultRTCDevice,
			AlarmRegister: RegisterAlarm,
			Location:      "Local",
		},
		WakeTimer: WakeTimerConfig{
			Backend: BackendAndroid,
			Device:  DefaultAlarmDevice,
		},
		BootMode: BootModeConfig{
			Source:       SourceGetprop,
			Key:          DefaultBootModeKey,
			ChargerValue: DefaultChargerValue,
		},
		Reboot: RebootConfig{
			Method:  MethodSyscall,
			Reason:  alarm.DefaultRebootReason,
			Command: []string{"reboot"},
		},
		LogLevel: "info",
	}
}

// Load reads configuration from path. An explicit path must exist.
// With an empty path the XDG config dirs are searched and defaults are
// returned when no file is found.
func Load(path string) (*Config, error) {
	if path == "" {
		found, err := xdg.SearchConfigFile(filepath.Join(AppName, DefaultConfigFilename))
		if err != nil {
			cfg := Default()

			return cfg, Validate(cfg)
		}

		path = found
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills defaults for empty optional fields and rejects unsupported values.
//
//nolint:cyclop // A flat list of checks reads better than helpers.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	defaults := Default()

	if cfg.RTC.Device == "" {
		cfg.RTC.Device = defaults.RTC.Device
	}

	if cfg.RTC.AlarmRegister == "" {
		cfg.RTC.AlarmRegister = defaults.RTC.AlarmRegister
	}

	if err := oneOf("rtc.alarm_register", cfg.RTC.AlarmRegister, RegisterAlarm, RegisterWakeAlarm); err != nil {
		return err
	}

	if cfg.RTC.Location == "" {
		cfg.RTC.Location = defaults.RTC.Location
	}

	if _, err := time.LoadLocation(cfg.RTC.Location); err != nil {
		return fmt.Errorf("invalid rtc.location %q: %w", cfg.RTC.Location, err)
	}

	if cfg.WakeTimer.Backend == "" {
		cfg.WakeTimer.Backend = defaults.WakeTimer.Backend
	}

	if err := oneOf("wake_timer.backend", cfg.WakeTimer.Backend, BackendAndroid, BackendTimerfd); err != nil {
		return err
	}

	if cfg.WakeTimer.Device == "" && cfg.WakeTimer.Backend == BackendAndroid {
		cfg.WakeTimer.Device = defaults.WakeTimer.Device
	}

	if cfg.BootMode.Source == "" {
		cfg.BootMode.Source = defaults.BootMode.Source
	}

	if err := oneOf("boot_mode.source", cfg.BootMode.Source, SourceGetprop, SourceCmdline, SourceStatic); err != nil {
		return err
	}

	if cfg.BootMode.Key == "" {
		cfg.BootMode.Key = defaults.BootMode.Key
	}

	if cfg.BootMode.ChargerValue == "" {
		cfg.BootMode.ChargerValue = defaults.BootMode.ChargerValue
	}

	if cfg.Reboot.Method == "" {
		cfg.Reboot.Method = defaults.Reboot.Method
	}

	err := oneOf("reboot.method", cfg.Reboot.Method,
		MethodSyscall, MethodProperty, MethodCommand, MethodLogind, MethodNone)
	if err != nil {
		return err
	}

	if cfg.Reboot.Reason == "" {
		cfg.Reboot.Reason = defaults.Reboot.Reason
	}

	if cfg.Reboot.Method == MethodCommand && len(cfg.Reboot.Command) == 0 {
		return fmt.Errorf("reboot.command: %w", errEmptyValue)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("log_level %q: %w", cfg.LogLevel, errUnknownValue)
	}

	return nil
}

// Location returns the zone the RTC calendar is interpreted in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.RTC.Location)
	if err != nil {
		return time.Local
	}

	return loc
}

// oneOf checks that value is among allowed.
func oneOf(key, value string, allowed ...string) error {
	if slices.Contains(allowed, value) {
		return nil
	}

	return fmt.Errorf("%s %q (want one of %v): %w", key, value, allowed, errUnknownValue)
}
