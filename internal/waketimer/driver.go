package waketimer

import (
	"context"
	"errors"
	"fmt"
	"syscall"

	"github.com/oshokin/poweroff-alarm/internal/domain/alarm"
	"github.com/oshokin/poweroff-alarm/internal/logger"
)

// Timespec is an elapsed-realtime instant.
type Timespec struct {
	// Sec is whole seconds since boot.
	Sec int64
	// Nsec is the sub-second part.
	Nsec int64
}

// Step names a device operation for diagnostics.
type Step int

const (
	// StepGetTime reads elapsed realtime since boot.
	StepGetTime Step = iota
	// StepSet arms the wake-capable alarm.
	StepSet
	// StepWait blocks until the alarm fires.
	StepWait
)

// Device is an open wake-capable alarm.
type Device interface {
	// ElapsedRealtime returns the time since boot, including suspend.
	ElapsedRealtime() (Timespec, error)
	// SetWakeup arms the alarm at the absolute elapsed-realtime deadline.
	SetWakeup(deadline Timespec) error
	// Wait blocks until the alarm fires and returns a positive result
	// (fired mask or expiration count) on success.
	Wait() (int, error)
	// Op names the control request behind step.
	Op(step Step) string
	// Close releases the device handle.
	Close() error
}

// OpenFunc opens the wake alarm device at path.
type OpenFunc func(path string) (Device, error)

// ExpiryChecker validates a wake against the alarm time.
type ExpiryChecker interface {
	IsExpired(ctx context.Context, reference alarm.EpochSeconds) bool
}

// Driver arms the wake alarm and waits for a validated wake.
type Driver struct {
	// path is the device node, empty for the timerfd backend.
	path string
	// open opens path for one ArmAndWait call.
	open OpenFunc
	// checker validates every successful wait.
	checker ExpiryChecker
}

// errUnknownBackend is returned by Open for an unsupported backend name.
var errUnknownBackend = errors.New("unknown wake timer backend")

// Backend names accepted by Open.
const (
	BackendAndroid = "android"
	BackendTimerfd = "timerfd"
)

// Open returns the OpenFunc of the named backend.
func Open(backend string) (OpenFunc, error) {
	switch backend {
	case BackendAndroid:
		return OpenAndroid, nil
	case BackendTimerfd:
		return OpenTimerfd, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownBackend, backend)
	}
}

// NewDriver creates a Driver for the device at path.
func NewDriver(path string, open OpenFunc, checker ExpiryChecker) *Driver {
	return &Driver{
		path:    path,
		open:    open,
		checker: checker,
	}
}

// ArmAndWait arms the wake alarm delaySeconds from now and blocks until a
// wake is confirmed against reference. Interrupted and unconfirmed waits
// block again without re-arming. The device is closed on every exit path.
func (d *Driver) ArmAndWait(ctx context.Context, delaySeconds int64, reference alarm.EpochSeconds) error {
	if delaySeconds <= 0 {
		return fmt.Errorf("arm wake timer with delay %ds: %w", delaySeconds, alarm.ErrAlarmAlreadyElapsed)
	}

	device, err := d.open(d.path)
	if err != nil {
		return alarm.NewDeviceError(alarm.ErrDeviceOpen, d.name(), "open", err)
	}

	defer func() {
		if closeErr := device.Close(); closeErr != nil {
			logger.WarnKV(ctx, "Unable to close wake alarm device", "device", d.name(), "error", closeErr)
		}
	}()

	now, err := device.ElapsedRealtime()
	if err != nil {
		return alarm.NewDeviceError(alarm.ErrIoctl, d.name(), device.Op(StepGetTime), err)
	}

	deadline := Timespec{
		Sec:  now.Sec + delaySeconds,
		Nsec: 0,
	}

	if err = device.SetWakeup(deadline); err != nil {
		return alarm.NewDeviceError(alarm.ErrIoctl, d.name(), device.Op(StepSet), err)
	}

	logger.InfoKV(ctx, "Wake alarm armed",
		"device", d.name(),
		"elapsed_now", now.Sec,
		"deadline", deadline.Sec,
		"delay_seconds", delaySeconds,
		"alarm", reference.String())

	for {
		result, waitErr := device.Wait()

		outcome := Classify(result, waitErr, func() bool {
			return d.checker.IsExpired(ctx, reference)
		})

		logger.DebugKV(ctx, "Wait returned", "result", result, "outcome", outcome.String())

		switch outcome {
		case alarm.OutcomeConfirmed:
			return nil
		case alarm.OutcomeInterrupted, alarm.OutcomeNotYetExpired:
			continue
		case alarm.OutcomeHardError:
			return alarm.NewDeviceError(alarm.ErrWait, d.name(), device.Op(StepWait), waitErr)
		}
	}
}

// name is the device label used in errors and logs.
func (d *Driver) name() string {
	if d.path == "" {
		return "timerfd"
	}

	return d.path
}

// Classify maps one return of the blocking wait to an outcome.
// expired is consulted only when the wait itself succeeded.
func Classify(result int, err error, expired func() bool) alarm.WaitOutcome {
	if err != nil {
		if errors.Is(err, syscall.EINTR) {
			return alarm.OutcomeInterrupted
		}

		return alarm.OutcomeHardError
	}

	if !expired() {
		return alarm.OutcomeNotYetExpired
	}

	if result <= 0 {
		return alarm.OutcomeHardError
	}

	return alarm.OutcomeConfirmed
}
