package poweroff

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/oshokin/poweroff-alarm/internal/domain/alarm"
	"github.com/oshokin/poweroff-alarm/internal/logger"
	"github.com/oshokin/poweroff-alarm/internal/service/power"
)

// TimeReader reads an RTC register as epoch seconds.
type TimeReader interface {
	Read(ctx context.Context, kind alarm.TimeKind) (alarm.EpochSeconds, error)
}

// WakeTimer arms a wake alarm and blocks until a wake matching reference.
type WakeTimer interface {
	ArmAndWait(ctx context.Context, delaySeconds int64, reference alarm.EpochSeconds) error
}

// Orchestrator drives one run of the power-off alarm state machine.
type Orchestrator struct {
	// reader reads the alarm and clock registers.
	reader TimeReader
	// timer arms and waits for the wake alarm.
	timer WakeTimer
	// rebooter performs the final reboot request.
	rebooter power.Rebooter
	// reason tags the reboot.
	reason string
	// state is the current step, readable from other goroutines.
	state atomic.Int32
}

// NewOrchestrator wires the collaborators. An empty reason means alarm.DefaultRebootReason.
func NewOrchestrator(reader TimeReader, timer WakeTimer, rebooter power.Rebooter, reason string) *Orchestrator {
	if reason == "" {
		reason = alarm.DefaultRebootReason
	}

	return &Orchestrator{
		reader:   reader,
		timer:    timer,
		rebooter: rebooter,
		reason:   reason,
	}
}

// State returns the current step of the state machine.
func (o *Orchestrator) State() alarm.State {
	return alarm.State(o.state.Load())
}

// Run executes the sequence once and returns the reason it ended.
// It returns nil only after a confirmed wake and a successful reboot request.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.transition(ctx, alarm.StateReadingAlarm)

	// The alarm time is owned by this call and never changes after the read.
	alarmTime, err := o.reader.Read(ctx, alarm.KindAlarm)
	if err != nil {
		return o.abort(ctx, fmt.Errorf("read alarm register: %w", err))
	}

	if alarmTime == 0 {
		return o.abort(ctx, alarm.ErrNoAlarmProgrammed)
	}

	o.transition(ctx, alarm.StateReadingCurrent)

	current, err := o.reader.Read(ctx, alarm.KindCurrent)
	if err != nil {
		return o.abort(ctx, fmt.Errorf("read rtc time: %w", err))
	}

	o.transition(ctx, alarm.StateComputingDelay)

	delay := int64(alarmTime - current)
	if delay <= 0 {
		return o.abort(ctx, fmt.Errorf("alarm %s, rtc %s: %w", alarmTime, current, alarm.ErrAlarmAlreadyElapsed))
	}

	logger.InfoKV(ctx, "Power off alarm pending",
		"alarm", alarmTime.String(),
		"rtc", current.String(),
		"delay_seconds", delay)

	o.transition(ctx, alarm.StateWaiting)

	if err = o.timer.ArmAndWait(ctx, delay, alarmTime); err != nil {
		return o.abort(ctx, fmt.Errorf("wait for wake alarm: %w", err))
	}

	o.transition(ctx, alarm.StateConfirmed)

	logger.InfoKV(ctx, "Exit from power off charging, rebooting", "reason", o.reason)

	if err = o.rebooter.Reboot(ctx, o.reason); err != nil {
		logger.ErrorKV(ctx, "Reboot request failed", "reason", o.reason, "error", err)

		return fmt.Errorf("request reboot: %w", err)
	}

	return nil
}

// transition moves the state machine to next.
func (o *Orchestrator) transition(ctx context.Context, next alarm.State) {
	prev := alarm.State(o.state.Swap(int32(next)))

	logger.DebugKV(ctx, "State changed", "from", prev.String(), "to", next.String())
}

// abort logs err with the failing state and device details and enters StateAborted.
func (o *Orchestrator) abort(ctx context.Context, err error) error {
	failed := alarm.State(o.state.Swap(int32(alarm.StateAborted)))

	kvs := []any{"state", failed.String(), "error", err}

	var deviceErr *alarm.DeviceError
	if errors.As(err, &deviceErr) {
		kvs = append(kvs, "device", deviceErr.Device, "op", deviceErr.Op)
	}

	logger.ErrorKV(ctx, "Exit from alarm worker", kvs...)

	return err
}
