//go:build !linux

package power

import (
	"context"
	"fmt"
	"runtime"
)

// SyscallRebooter is only available on Linux.
type SyscallRebooter struct{}

// Reboot always fails outside Linux.
func (SyscallRebooter) Reboot(context.Context, string) error {
	return fmt.Errorf("reboot(2) on %s: %w", runtime.GOOS, ErrUnsupportedOS)
}
