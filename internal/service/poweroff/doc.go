// Package poweroff runs the power-off alarm sequence: read the RTC alarm,
// read the RTC clock, arm the wake timer for the difference, wait for a
// validated wake and request a reboot tagged "rtc".
//
// The sequence runs once per process on a single worker goroutine that the
// host does not wait on. Every failure ends the worker after an error log.
package poweroff
