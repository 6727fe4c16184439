package alarm

import (
	"strconv"
	"time"
)

// EpochSeconds is an absolute time in whole seconds since the Unix epoch.
type EpochSeconds int64

// Time converts the value to time.Time in UTC.
func (s EpochSeconds) Time() time.Time {
	return time.Unix(int64(s), 0).UTC()
}

// String renders the value in RFC 3339 along with the raw seconds.
func (s EpochSeconds) String() string {
	return s.Time().Format(time.RFC3339) + " (" + strconv.FormatInt(int64(s), 10) + ")"
}

// TimeKind selects which RTC register is read.
type TimeKind int

const (
	// KindAlarm reads the stored wake-alarm register.
	KindAlarm TimeKind = iota
	// KindCurrent reads the live clock register.
	KindCurrent
)

// String returns a short name of the register.
func (k TimeKind) String() string {
	switch k {
	case KindAlarm:
		return "alarm"
	case KindCurrent:
		return "current"
	default:
		return "unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// Tolerance is the allowed difference between the alarm time and the RTC time
// observed after the wake timer fires.
const Tolerance EpochSeconds = 2

// DefaultRebootReason tags a reboot triggered by the RTC alarm.
const DefaultRebootReason = "rtc"

// WithinTolerance reports whether current lies in [reference-Tolerance, reference+Tolerance].
func WithinTolerance(reference, current EpochSeconds) bool {
	return reference-Tolerance <= current && current <= reference+Tolerance
}
