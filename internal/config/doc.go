// Package config defines the poweroff-alarm settings and provides helpers
// to load, validate and save them in YAML format.
//
// Config groups the RTC device, the wake timer backend, the boot-mode gate
// and the reboot method. Empty optional fields are filled with defaults.
package config
