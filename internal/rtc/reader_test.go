package rtc

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/poweroff-alarm/internal/domain/alarm"
)

// fakeDevice is an in-memory RTC returning fixed registers.
type fakeDevice struct {
	// registers holds the calendar returned per kind.
	registers map[alarm.TimeKind]Calendar
	// readErr is returned from Read when set.
	readErr error
	// closed counts Close calls.
	closed *int
}

func (d *fakeDevice) Read(kind alarm.TimeKind) (Calendar, error) {
	if d.readErr != nil {
		return Calendar{}, d.readErr
	}

	return d.registers[kind], nil
}

func (d *fakeDevice) Op(kind alarm.TimeKind) string {
	if kind == alarm.KindCurrent {
		return "RTC_RD_TIME"
	}

	return "RTC_ALM_READ"
}

func (d *fakeDevice) Close() error {
	*d.closed++

	return nil
}

// newFakeReader builds a Reader over a fakeDevice and returns the close counter.
func newFakeReader(device *fakeDevice, openErr error) (*Reader, *int) {
	closed := 0
	device.closed = &closed

	open := func(string) (Device, error) {
		if openErr != nil {
			return nil, openErr
		}

		return device, nil
	}

	return NewReader("/dev/rtc0", WithOpenFunc(open), WithLocation(time.UTC)), &closed
}

// calendarOf converts a UTC instant to a Calendar.
func calendarOf(t time.Time) Calendar {
	return Calendar{
		Year:   t.Year(),
		Month:  t.Month(),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

// TestToEpochAddsZoneOffset checks epoch(calendar in zone) + offset equals the UTC calendar.
func TestToEpochAddsZoneOffset(t *testing.T) {
	t.Parallel()

	instant := time.Date(2024, time.March, 9, 7, 30, 15, 0, time.UTC)
	calendar := calendarOf(instant)

	zones := []*time.Location{
		time.UTC,
		time.FixedZone("UTC+3", 3*60*60),
		time.FixedZone("UTC-8", -8*60*60),
		time.FixedZone("UTC+5:30", 5*60*60+30*60),
	}

	for _, loc := range zones {
		require.Equal(t, alarm.EpochSeconds(instant.Unix()), ToEpoch(calendar, loc), loc.String())
	}

	require.Equal(t, alarm.EpochSeconds(0), ToEpoch(Calendar{Year: 1970, Month: time.January, Day: 1}, nil))
}

// TestReaderRead verifies both registers are converted and the device is closed.
func TestReaderRead(t *testing.T) {
	t.Parallel()

	alarmAt := time.Unix(2000, 0).UTC()
	nowAt := time.Unix(1500, 0).UTC()

	reader, closed := newFakeReader(&fakeDevice{
		registers: map[alarm.TimeKind]Calendar{
			alarm.KindAlarm:   calendarOf(alarmAt),
			alarm.KindCurrent: calendarOf(nowAt),
		},
	}, nil)

	ctx := context.Background()

	got, err := reader.Read(ctx, alarm.KindAlarm)
	require.NoError(t, err)
	require.Equal(t, alarm.EpochSeconds(2000), got)

	// Unchanged register reads the same.
	again, err := reader.Read(ctx, alarm.KindAlarm)
	require.NoError(t, err)
	require.Equal(t, got, again)

	got, err = reader.Read(ctx, alarm.KindCurrent)
	require.NoError(t, err)
	require.Equal(t, alarm.EpochSeconds(1500), got)

	require.Equal(t, 3, *closed)
	require.Equal(t, "/dev/rtc0", reader.Path())
}

// TestReaderOpenError maps open failures to ErrDeviceOpen.
func TestReaderOpenError(t *testing.T) {
	t.Parallel()

	reader, closed := newFakeReader(&fakeDevice{}, syscall.ENOENT)

	_, err := reader.Read(context.Background(), alarm.KindAlarm)
	require.ErrorIs(t, err, alarm.ErrDeviceOpen)
	require.ErrorIs(t, err, syscall.ENOENT)
	require.Zero(t, *closed)
}

// TestReaderIoctlError maps control request failures to ErrIoctl and still closes the device.
func TestReaderIoctlError(t *testing.T) {
	t.Parallel()

	reader, closed := newFakeReader(&fakeDevice{readErr: syscall.EINVAL}, nil)

	_, err := reader.Read(context.Background(), alarm.KindAlarm)
	require.ErrorIs(t, err, alarm.ErrIoctl)
	require.ErrorIs(t, err, syscall.EINVAL)

	var deviceErr *alarm.DeviceError
	require.True(t, errors.As(err, &deviceErr))
	require.Equal(t, "RTC_ALM_READ", deviceErr.Op)
	require.Equal(t, "/dev/rtc0", deviceErr.Device)
	require.Equal(t, 1, *closed)
}

// TestReaderNegativeTime rejects times before the epoch and still closes the device.
func TestReaderNegativeTime(t *testing.T) {
	t.Parallel()

	reader, closed := newFakeReader(&fakeDevice{
		registers: map[alarm.TimeKind]Calendar{
			alarm.KindCurrent: {Year: 1969, Month: time.December, Day: 31, Hour: 23, Minute: 59, Second: 59},
		},
	}, nil)

	_, err := reader.Read(context.Background(), alarm.KindCurrent)
	require.ErrorIs(t, err, alarm.ErrInvalidTime)
	require.Equal(t, 1, *closed)
}
