package rtc

import (
	"context"
	"errors"
	"time"

	"github.com/oshokin/poweroff-alarm/internal/domain/alarm"
	"github.com/oshokin/poweroff-alarm/internal/logger"
)

// Calendar is a broken-down RTC time as reported by the driver.
type Calendar struct {
	// Year is the full year, e.g. 2024.
	Year int
	// Month is 1-12.
	Month time.Month
	// Day is 1-31.
	Day int
	// Hour is 0-23.
	Hour int
	// Minute is 0-59.
	Minute int
	// Second is 0-59.
	Second int
}

// Device is an open RTC character device.
type Device interface {
	// Read issues the control request for kind and returns the register contents.
	Read(kind alarm.TimeKind) (Calendar, error)
	// Op names the control request used for kind, for diagnostics.
	Op(kind alarm.TimeKind) string
	// Close releases the device handle.
	Close() error
}

// OpenFunc opens the RTC device node at path.
type OpenFunc func(path string) (Device, error)

// Reader reads epoch seconds from the RTC.
type Reader struct {
	// path is the RTC device node.
	path string
	// open opens path for each read.
	open OpenFunc
	// location is the zone the calendar is interpreted in.
	location *time.Location
}

// Option configures the Reader.
type Option func(*Reader)

// WithLocation sets the zone the RTC calendar is interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(r *Reader) {
		if loc != nil {
			r.location = loc
		}
	}
}

// WithOpenFunc replaces the device opener.
func WithOpenFunc(open OpenFunc) Option {
	return func(r *Reader) {
		if open != nil {
			r.open = open
		}
	}
}

// NewReader creates a Reader for the device at path.
// By default the platform device with the RTC_ALM_READ alarm register is used.
func NewReader(path string, opts ...Option) *Reader {
	r := &Reader{
		path:     path,
		open:     OpenDevice(false),
		location: time.Local,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Path returns the RTC device node.
func (r *Reader) Path() string {
	return r.path
}

// Read returns the register selected by kind as epoch seconds.
// The device is opened read-write and closed on every exit path.
func (r *Reader) Read(ctx context.Context, kind alarm.TimeKind) (secs alarm.EpochSeconds, err error) {
	device, err := r.open(r.path)
	if err != nil {
		var deviceErr *alarm.DeviceError
		if errors.As(err, &deviceErr) {
			return 0, err
		}

		return 0, alarm.NewDeviceError(alarm.ErrDeviceOpen, r.path, "open", err)
	}

	defer func() {
		if closeErr := device.Close(); closeErr != nil {
			logger.WarnKV(ctx, "Unable to close rtc device", "device", r.path, "error", closeErr)
		}
	}()

	op := device.Op(kind)

	calendar, err := device.Read(kind)
	if err != nil {
		return 0, alarm.NewDeviceError(alarm.ErrIoctl, r.path, op, err)
	}

	secs = ToEpoch(calendar, r.location)
	if secs < 0 {
		return 0, alarm.NewDeviceError(alarm.ErrInvalidTime, r.path, op, nil)
	}

	logger.DebugKV(ctx, "Read rtc register", "device", r.path, "kind", kind.String(), "secs", int64(secs))

	return secs, nil
}

// ToEpoch converts a calendar record to epoch seconds: the calendar is
// interpreted in loc and the UTC offset of loc at that instant is added back,
// so the result does not depend on the zone the process runs in.
func ToEpoch(c Calendar, loc *time.Location) alarm.EpochSeconds {
	if loc == nil {
		loc = time.UTC
	}

	t := time.Date(c.Year, c.Month, c.Day, c.Hour, c.Minute, c.Second, 0, loc)
	_, offset := t.Zone()

	return alarm.EpochSeconds(t.Unix() + int64(offset))
}
