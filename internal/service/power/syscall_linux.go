//go:build linux

package power

import (
	"context"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/oshokin/poweroff-alarm/internal/logger"
)

// SyscallRebooter calls reboot(2) with LINUX_REBOOT_CMD_RESTART2 so the
// reason reaches the bootloader. It needs CAP_SYS_BOOT.
type SyscallRebooter struct{}

// Reboot syncs filesystems and restarts with reason as the restart command.
// On success it does not return.
func (SyscallRebooter) Reboot(ctx context.Context, reason string) error {
	arg, err := unix.BytePtrFromString(reason)
	if err != nil {
		return fmt.Errorf("encode reboot reason: %w", err)
	}

	logger.InfoKV(ctx, "Requesting reboot through syscall", "cmd", "LINUX_REBOOT_CMD_RESTART2", "reason", reason)
	logger.Sync()

	unix.Sync()

	_, _, errno := unix.Syscall6(
		unix.SYS_REBOOT,
		uintptr(unix.LINUX_REBOOT_MAGIC1),
		uintptr(unix.LINUX_REBOOT_MAGIC2),
		uintptr(unix.LINUX_REBOOT_CMD_RESTART2),
		uintptr(unsafe.Pointer(arg)),
		0,
		0,
	)
	if errno != 0 {
		return fmt.Errorf("reboot(2): %w", errno)
	}

	return nil
}
