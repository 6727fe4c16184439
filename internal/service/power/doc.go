// Package power requests a device reboot tagged with a reason string.
//
// Several methods are supported: reboot(2) with LINUX_REBOOT_CMD_RESTART2,
// the Android sys.powerctl property, an external command, systemd-logind
// over D-Bus, and a no-op for dry runs.
package power
