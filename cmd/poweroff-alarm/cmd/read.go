package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/poweroff-alarm/internal/domain/alarm"
	"github.com/oshokin/poweroff-alarm/internal/service/poweroff"
)

// newReadCommand builds `read [alarm|current]`.
func newReadCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "read [alarm|current]",
		Short:     "Print the RTC alarm and clock registers as epoch seconds.",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{alarm.KindAlarm.String(), alarm.KindCurrent.String()},
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := parseKinds(args)
			if err != nil {
				return err
			}

			return poweroff.PrintRegisters(cmd.Context(), cmd.OutOrStdout(), configPath, kinds)
		},
	}
}

// parseKinds maps arguments to registers; no argument means both.
func parseKinds(args []string) ([]alarm.TimeKind, error) {
	if len(args) == 0 {
		return []alarm.TimeKind{alarm.KindAlarm, alarm.KindCurrent}, nil
	}

	switch args[0] {
	case alarm.KindAlarm.String():
		return []alarm.TimeKind{alarm.KindAlarm}, nil
	case alarm.KindCurrent.String():
		return []alarm.TimeKind{alarm.KindCurrent}, nil
	default:
		return nil, fmt.Errorf("unknown register %q", args[0])
	}
}
