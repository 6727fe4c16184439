// Package rtc reads the real-time clock registers and validates a wake
// against the alarm that was read at startup.
//
// Reader opens the RTC character device for each read and always closes it
// before returning. Validator re-reads the live clock and checks it against
// a reference within alarm.Tolerance.
package rtc
