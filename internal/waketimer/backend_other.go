//go:build !linux

package waketimer

import "errors"

// errUnsupportedPlatform is returned when wake alarms are unavailable.
var errUnsupportedPlatform = errors.New("wake alarms are only supported on linux")

// OpenAndroid always fails outside Linux.
func OpenAndroid(string) (Device, error) {
	return nil, errUnsupportedPlatform
}

// OpenTimerfd always fails outside Linux.
func OpenTimerfd(string) (Device, error) {
	return nil, errUnsupportedPlatform
}
