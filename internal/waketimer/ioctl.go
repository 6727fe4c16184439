package waketimer

// Android alarm types from linux/android_alarm.h.
const (
	alarmTypeElapsedRealtimeWakeup = 2
)

// ioctl encoding for the generic _IOC layout used on arm, arm64 and x86.
const (
	iocNone  = 0
	iocWrite = 1

	iocNRShift   = 0
	iocTypeShift = 8
	iocSizeShift = 16
	iocDirShift  = 30

	androidAlarmMagic = 'a'
)

// ioc mirrors the kernel _IOC macro.
func ioc(dir, typ, nr, size uintptr) uintptr {
	return dir<<iocDirShift | size<<iocSizeShift | typ<<iocTypeShift | nr<<iocNRShift
}

// androidAlarmWait is ANDROID_ALARM_WAIT.
func androidAlarmWait() uintptr {
	return ioc(iocNone, androidAlarmMagic, 1, 0)
}

// androidAlarmSet is ANDROID_ALARM_SET(alarmType).
func androidAlarmSet(alarmType, timespecSize uintptr) uintptr {
	return ioc(iocWrite, androidAlarmMagic, 2|alarmType<<4, timespecSize)
}

// androidAlarmGetTime is ANDROID_ALARM_GET_TIME(alarmType).
func androidAlarmGetTime(alarmType, timespecSize uintptr) uintptr {
	return ioc(iocWrite, androidAlarmMagic, 4|alarmType<<4, timespecSize)
}

// Op names of the android backend.
const (
	opAndroidGetTime = "ANDROID_ALARM_GET_TIME(ELAPSED_REALTIME_WAKEUP)"
	opAndroidSet     = "ANDROID_ALARM_SET(ELAPSED_REALTIME_WAKEUP)"
	opAndroidWait    = "ANDROID_ALARM_WAIT"
)

// Op names of the timerfd backend.
const (
	opTimerfdGetTime = "clock_gettime(CLOCK_BOOTTIME)"
	opTimerfdSet     = "timerfd_settime(CLOCK_BOOTTIME_ALARM)"
	opTimerfdWait    = "read(timerfd)"
)

// androidOp names the control request behind step.
func androidOp(step Step) string {
	switch step {
	case StepGetTime:
		return opAndroidGetTime
	case StepSet:
		return opAndroidSet
	default:
		return opAndroidWait
	}
}

// timerfdOp names the system call behind step.
func timerfdOp(step Step) string {
	switch step {
	case StepGetTime:
		return opTimerfdGetTime
	case StepSet:
		return opTimerfdSet
	default:
		return opTimerfdWait
	}
}
