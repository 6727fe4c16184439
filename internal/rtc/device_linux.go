//go:build linux

package rtc

import (
	"time"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/oshokin/poweroff-alarm/internal/domain/alarm"
)

// Control request names for diagnostics.
const (
	opReadTime      = "RTC_RD_TIME"
	opReadAlarm     = "RTC_ALM_READ"
	opReadWakeAlarm = "RTC_WKALM_RD"
)

// linuxDevice is an RTC character device opened read-write.
type linuxDevice struct {
	// fd is the raw descriptor of the device node.
	fd int
	// wakeAlarm selects RTC_WKALM_RD instead of RTC_ALM_READ for the alarm register.
	wakeAlarm bool
}

// OpenDevice returns an OpenFunc for Linux RTC nodes. When wakeAlarm is set
// the alarm register is read with RTC_WKALM_RD, which newer drivers support
// in place of RTC_ALM_READ.
func OpenDevice(wakeAlarm bool) OpenFunc {
	return func(path string) (Device, error) {
		fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
		if err != nil {
			return nil, err
		}

		return &linuxDevice{
			fd:        fd,
			wakeAlarm: wakeAlarm,
		}, nil
	}
}

// Op names the control request used for kind.
func (d *linuxDevice) Op(kind alarm.TimeKind) string {
	switch {
	case kind == alarm.KindCurrent:
		return opReadTime
	case d.wakeAlarm:
		return opReadWakeAlarm
	default:
		return opReadAlarm
	}
}

// Read issues the control request for kind.
func (d *linuxDevice) Read(kind alarm.TimeKind) (Calendar, error) {
	switch {
	case kind == alarm.KindCurrent:
		tm, err := unix.IoctlGetRTCTime(d.fd)
		if err != nil {
			return Calendar{}, err
		}

		return fromRTCTime(tm), nil
	case d.wakeAlarm:
		wk, err := unix.IoctlGetRTCWkAlrm(d.fd)
		if err != nil {
			return Calendar{}, err
		}

		// A disabled wake alarm is reported as the epoch, i.e. not programmed.
		if wk.Enabled == 0 {
			return Calendar{Year: 1970, Month: time.January, Day: 1}, nil
		}

		return fromRTCTime(&wk.Time), nil
	default:
		var tm unix.RTCTime

		_, _, errno := unix.Syscall(
			unix.SYS_IOCTL,
			uintptr(d.fd),
			uintptr(unix.RTC_ALM_READ),
			uintptr(unsafe.Pointer(&tm)),
		)
		if errno != 0 {
			return Calendar{}, errno
		}

		return fromRTCTime(&tm), nil
	}
}

// Close releases the descriptor.
func (d *linuxDevice) Close() error {
	return unix.Close(d.fd)
}

// fromRTCTime converts struct rtc_time (years since 1900, months 0-11).
func fromRTCTime(tm *unix.RTCTime) Calendar {
	return Calendar{
		Year:   int(tm.Year) + 1900,
		Month:  time.Month(tm.Mon + 1),
		Day:    int(tm.Mday),
		Hour:   int(tm.Hour),
		Minute: int(tm.Min),
		Second: int(tm.Sec),
	}
}
