// Package waketimer arms a wake-capable elapsed-realtime alarm and blocks
// until it fires.
//
// Two backends are available: the Android alarm driver (/dev/alarm) and a
// timerfd on CLOCK_BOOTTIME_ALARM for mainline kernels. Every return from the
// blocking wait is classified into an alarm.WaitOutcome; only a wake whose RTC
// time matches the reference within alarm.Tolerance ends the wait.
package waketimer
