package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/poweroff-alarm/internal/logger"
	"github.com/oshokin/poweroff-alarm/internal/service/poweroff"
	"github.com/oshokin/poweroff-alarm/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// bootMode overrides the boot mode source.
	bootMode string
	// foreground runs the alarm sequence on the main goroutine.
	foreground bool
	// dryRun logs the reboot instead of performing it.
	dryRun bool

	// rootCmd starts the power-off alarm worker.
	rootCmd = &cobra.Command{
		Use:   "poweroff-alarm",
		Short: "Reboot from power-off charging when the RTC alarm fires.",
		Long: `Wakes the device from power-off charging mode when the RTC alarm fires.

In charger boot mode the RTC alarm register and the RTC clock are read, a
wake-capable alarm is armed for the remaining delay and the device reboots
with reason "rtc" once the wake is confirmed against the alarm time (±2s).
Any failure stops the worker after logging it; the device then simply does
not wake on schedule.

The boot mode comes from getprop, the kernel command line or the config file.
Without --config, poweroff-alarm/config.yaml is searched in the XDG config dirs.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &poweroff.Options{
				ConfigPath: configPath,
				BootMode:   bootMode,
				Foreground: foreground,
				DryRun:     dryRun,
			}

			return poweroff.Run(ctx, options)
		},
	}
)

// Execute runs the poweroff-alarm CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)
	rootCmd.AddCommand(newReadCommand())

	if err := rootCmd.Execute(); err != nil {
		logger.ErrorKV(context.Background(), "Command failed", "error", err)
		logger.Sync()
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file")

	rootCmd.Flags().StringVarP(&bootMode, "boot-mode", "b", "", "boot mode to assume instead of reading it")
	rootCmd.Flags().BoolVarP(&foreground, "foreground", "f", false, "run the alarm sequence in the foreground and report its error")

	// Hidden dry-run flag to skip the reboot for debugging.
	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "log the reboot instead of performing it")

	err := rootCmd.Flags().MarkHidden("dry-run")
	if err != nil {
		panic(err)
	}
}
