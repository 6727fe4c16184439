package poweroff

import (
	"context"
	"fmt"
	"io"

	"github.com/oshokin/poweroff-alarm/internal/config"
	"github.com/oshokin/poweroff-alarm/internal/domain/alarm"
)

// PrintRegisters reads each requested RTC register and writes one line per register to w.
// It stops at the first failed read.
func PrintRegisters(ctx context.Context, w io.Writer, configPath string, kinds []alarm.TimeKind) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	return printRegisters(ctx, w, NewReader(cfg), kinds)
}

// printRegisters reads kinds from reader and prints them.
func printRegisters(ctx context.Context, w io.Writer, reader TimeReader, kinds []alarm.TimeKind) error {
	for _, kind := range kinds {
		secs, err := reader.Read(ctx, kind)
		if err != nil {
			return fmt.Errorf("read %s register: %w", kind, err)
		}

		if _, err = fmt.Fprintf(w, "%s\t%d\t%s\n", kind, int64(secs), secs.Time().Format("2006-01-02T15:04:05Z07:00")); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	return nil
}
