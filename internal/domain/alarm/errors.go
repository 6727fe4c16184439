package alarm

import (
	"errors"
	"fmt"
)

var (
	// ErrDeviceOpen is returned when a device node is missing or inaccessible.
	ErrDeviceOpen = errors.New("device open failed")
	// ErrIoctl is returned when a control request is rejected by the driver.
	ErrIoctl = errors.New("device control request failed")
	// ErrInvalidTime is returned when a converted RTC time is negative.
	ErrInvalidTime = errors.New("invalid rtc time")
	// ErrWait is returned when the blocking wait fails for a reason other than a signal.
	ErrWait = errors.New("wait on alarm failed")
	// ErrNoAlarmProgrammed is returned when the alarm register reads as zero.
	ErrNoAlarmProgrammed = errors.New("no alarm programmed")
	// ErrAlarmAlreadyElapsed is returned when the alarm is due now or in the past.
	ErrAlarmAlreadyElapsed = errors.New("alarm already elapsed")
)

// DeviceError describes a failed operation on a device node.
// It matches both its Kind and the underlying Err with errors.Is.
type DeviceError struct {
	// Kind is one of the package sentinels (ErrDeviceOpen, ErrIoctl, ...).
	Kind error
	// Device is the device node path, e.g. /dev/rtc0.
	Device string
	// Op names the operation, e.g. "RTC_RD_TIME".
	Op string
	// Err is the cause reported by the OS, may be nil.
	Err error
}

// NewDeviceError builds a DeviceError.
func NewDeviceError(kind error, device, op string, err error) *DeviceError {
	return &DeviceError{
		Kind:   kind,
		Device: device,
		Op:     op,
		Err:    err,
	}
}

// Error implements error.
func (e *DeviceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s %s", e.Kind, e.Device, e.Op)
	}

	return fmt.Sprintf("%s: %s %s: %v", e.Kind, e.Device, e.Op, e.Err)
}

// Unwrap exposes both the kind and the cause.
func (e *DeviceError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}
