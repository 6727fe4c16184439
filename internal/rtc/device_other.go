//go:build !linux

package rtc

import "errors"

// errUnsupportedPlatform is returned when RTC ioctls are unavailable.
var errUnsupportedPlatform = errors.New("rtc ioctls are only supported on linux")

// OpenDevice returns an OpenFunc that always fails outside Linux.
func OpenDevice(bool) OpenFunc {
	return func(string) (Device, error) {
		return nil, errUnsupportedPlatform
	}
}
