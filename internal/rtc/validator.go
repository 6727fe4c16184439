package rtc

import (
	"context"

	"github.com/oshokin/poweroff-alarm/internal/domain/alarm"
	"github.com/oshokin/poweroff-alarm/internal/logger"
)

// TimeReader reads an RTC register as epoch seconds.
type TimeReader interface {
	Read(ctx context.Context, kind alarm.TimeKind) (alarm.EpochSeconds, error)
}

// Validator decides whether a wake matches the alarm that was read at startup.
type Validator struct {
	reader TimeReader
}

// NewValidator creates a Validator reading the live clock from reader.
func NewValidator(reader TimeReader) *Validator {
	return &Validator{
		reader: reader,
	}
}

// IsExpired reads the live clock and reports whether it lies within
// alarm.Tolerance of reference. A failed read is never a confirmation.
func (v *Validator) IsExpired(ctx context.Context, reference alarm.EpochSeconds) bool {
	current, err := v.reader.Read(ctx, alarm.KindCurrent)
	if err != nil {
		logger.WarnKV(ctx, "Unable to read rtc time while validating wake", "error", err)
		return false
	}

	expired := alarm.WithinTolerance(reference, current)
	if !expired {
		logger.InfoKV(ctx, "Wake does not match alarm",
			"alarm", reference.String(),
			"rtc", current.String())
	}

	return expired
}
