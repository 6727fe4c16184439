package poweroff

import (
	"context"
	"fmt"

	"github.com/oshokin/poweroff-alarm/internal/bootmode"
	"github.com/oshokin/poweroff-alarm/internal/config"
	"github.com/oshokin/poweroff-alarm/internal/logger"
	"github.com/oshokin/poweroff-alarm/internal/rtc"
	"github.com/oshokin/poweroff-alarm/internal/service/common"
	"github.com/oshokin/poweroff-alarm/internal/service/power"
	"github.com/oshokin/poweroff-alarm/internal/version"
	"github.com/oshokin/poweroff-alarm/internal/waketimer"
)

// Options controls the poweroff-alarm process.
type Options struct {
	// ConfigPath specifies the settings YAML file; empty searches the XDG config dirs.
	ConfigPath string
	// BootMode overrides the boot mode read from the configured source.
	BootMode string
	// Foreground runs the sequence on the calling goroutine and returns its error.
	Foreground bool
	// DryRun logs the reboot request instead of performing it.
	DryRun bool
}

// Run checks the boot mode and, in charger mode, starts the alarm worker.
// In the default mode the host keeps running until ctx is canceled or the
// worker exits; the worker outcome is never returned.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "poweroff-alarm")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	}

	logger.InfoKV(ctx, "Starting", "version", version.Full())

	mode, err := resolveBootMode(ctx, cfg, opts.BootMode)
	if err != nil {
		return fmt.Errorf("resolve boot mode: %w", err)
	}

	if mode != cfg.BootMode.ChargerValue {
		logger.InfoKV(ctx, "Not in charger mode, alarm not started", "boot_mode", mode)

		return nil
	}

	if err = common.EnsureSingleInstance(); err != nil {
		return fmt.Errorf("check instance: %w", err)
	}

	orchestrator, err := Build(cfg, opts.DryRun)
	if err != nil {
		return fmt.Errorf("build alarm worker: %w", err)
	}

	if opts.Foreground {
		return orchestrator.Run(ctx)
	}

	worker := Start(ctx, orchestrator)

	select {
	case <-ctx.Done():
		logger.Info(ctx, "Context canceled, exiting")
	case <-worker.Done():
		logger.Info(ctx, "Alarm worker exited")
	}

	return nil
}

// Build wires the RTC reader, validator, wake timer and rebooter from cfg.
func Build(cfg *config.Config, dryRun bool) (*Orchestrator, error) {
	reader := NewReader(cfg)

	open, err := waketimer.Open(cfg.WakeTimer.Backend)
	if err != nil {
		return nil, err
	}

	device := cfg.WakeTimer.Device
	if cfg.WakeTimer.Backend == config.BackendTimerfd {
		device = ""
	}

	driver := waketimer.NewDriver(device, open, rtc.NewValidator(reader))

	var rebooter power.Rebooter = power.NoopRebooter{}
	if !dryRun {
		rebooter, err = power.New(cfg.Reboot.Method, cfg.Reboot.Command)
		if err != nil {
			return nil, err
		}
	}

	return NewOrchestrator(reader, driver, rebooter, cfg.Reboot.Reason), nil
}

// NewReader builds the RTC reader described by cfg.
func NewReader(cfg *config.Config) *rtc.Reader {
	wakeAlarm := cfg.RTC.AlarmRegister == config.RegisterWakeAlarm

	return rtc.NewReader(
		cfg.RTC.Device,
		rtc.WithLocation(cfg.Location()),
		rtc.WithOpenFunc(rtc.OpenDevice(wakeAlarm)),
	)
}

// resolveBootMode returns override when set, otherwise asks the configured source.
func resolveBootMode(ctx context.Context, cfg *config.Config, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	source, err := bootmode.New(cfg.BootMode.Source, cfg.BootMode.Value)
	if err != nil {
		return "", err
	}

	return source.Get(ctx, cfg.BootMode.Key)
}
