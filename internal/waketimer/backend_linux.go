//go:build linux

package waketimer

import (
	"encoding/binary"
	"io"
	"unsafe"

	"golang.org/x/sys/unix"
)

// timespecSize is sizeof(struct timespec) on this architecture.
const timespecSize = unsafe.Sizeof(unix.Timespec{})

// androidDevice is the /dev/alarm driver of Android kernels.
type androidDevice struct {
	fd int
}

// OpenAndroid opens the Android alarm driver at path read-write.
func OpenAndroid(path string) (Device, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, err
	}

	return &androidDevice{fd: fd}, nil
}

// ElapsedRealtime issues ANDROID_ALARM_GET_TIME(ELAPSED_REALTIME_WAKEUP).
func (d *androidDevice) ElapsedRealtime() (Timespec, error) {
	var ts unix.Timespec

	req := androidAlarmGetTime(alarmTypeElapsedRealtimeWakeup, timespecSize)
	if err := d.ioctlTimespec(req, &ts); err != nil {
		return Timespec{}, err
	}

	sec, nsec := ts.Unix()

	return Timespec{Sec: sec, Nsec: nsec}, nil
}

// SetWakeup issues ANDROID_ALARM_SET(ELAPSED_REALTIME_WAKEUP).
func (d *androidDevice) SetWakeup(deadline Timespec) error {
	ts := toUnix(deadline)

	return d.ioctlTimespec(androidAlarmSet(alarmTypeElapsedRealtimeWakeup, timespecSize), &ts)
}

// Wait issues ANDROID_ALARM_WAIT and returns the mask of fired alarm types.
func (d *androidDevice) Wait() (int, error) {
	r1, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(d.fd), androidAlarmWait(), 0)
	if errno != 0 {
		return -1, errno
	}

	return int(r1), nil
}

// Op names the control request behind step.
func (d *androidDevice) Op(step Step) string {
	return androidOp(step)
}

// Close releases the descriptor.
func (d *androidDevice) Close() error {
	return unix.Close(d.fd)
}

// ioctlTimespec issues req with a struct timespec argument.
func (d *androidDevice) ioctlTimespec(req uintptr, ts *unix.Timespec) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(d.fd), req, uintptr(unsafe.Pointer(ts)))
	if errno != 0 {
		return errno
	}

	return nil
}

// timerfdDevice is a timerfd on CLOCK_BOOTTIME_ALARM. Arming it requires CAP_WAKE_ALARM.
type timerfdDevice struct {
	fd int
}

// OpenTimerfd creates a wake-capable timerfd. The path is ignored.
func OpenTimerfd(string) (Device, error) {
	fd, err := unix.TimerfdCreate(unix.CLOCK_BOOTTIME_ALARM, unix.TFD_CLOEXEC)
	if err != nil {
		return nil, err
	}

	return &timerfdDevice{fd: fd}, nil
}

// ElapsedRealtime reads CLOCK_BOOTTIME, the clock CLOCK_BOOTTIME_ALARM counts in.
func (d *timerfdDevice) ElapsedRealtime() (Timespec, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_BOOTTIME, &ts); err != nil {
		return Timespec{}, err
	}

	sec, nsec := ts.Unix()

	return Timespec{Sec: sec, Nsec: nsec}, nil
}

// SetWakeup arms a one-shot absolute deadline.
func (d *timerfdDevice) SetWakeup(deadline Timespec) error {
	spec := unix.ItimerSpec{
		Value: toUnix(deadline),
	}

	return unix.TimerfdSettime(d.fd, unix.TFD_TIMER_ABSTIME, &spec, nil)
}

// Wait blocks on read and returns the expiration count.
func (d *timerfdDevice) Wait() (int, error) {
	var buf [8]byte

	n, err := unix.Read(d.fd, buf[:])
	if err != nil {
		return -1, err
	}

	if n != len(buf) {
		return -1, io.ErrUnexpectedEOF
	}

	return int(binary.NativeEndian.Uint64(buf[:])), nil
}

// Op names the system call behind step.
func (d *timerfdDevice) Op(step Step) string {
	return timerfdOp(step)
}

// Close releases the descriptor.
func (d *timerfdDevice) Close() error {
	return unix.Close(d.fd)
}

// toUnix converts a Timespec to the platform struct.
func toUnix(ts Timespec) unix.Timespec {
	return unix.NsecToTimespec(ts.Sec*1e9 + ts.Nsec)
}
