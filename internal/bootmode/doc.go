// Package bootmode reads the boot mode that decides whether the power-off
// alarm starts at all: from the Android property service (getprop), from the
// kernel command line, or from a fixed configured value.
package bootmode
