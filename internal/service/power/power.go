package power

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"slices"

	"github.com/oshokin/poweroff-alarm/internal/logger"
)

// Rebooter restarts the device into a normal boot, tagging the restart with reason.
type Rebooter interface {
	Reboot(ctx context.Context, reason string) error
}

// Method names accepted by New.
const (
	MethodSyscall  = "syscall"
	MethodProperty = "property"
	MethodCommand  = "command"
	MethodLogind   = "logind"
	MethodNone     = "none"
)

// PowerctlProperty is the Android init property that performs reboots.
const PowerctlProperty = "sys.powerctl"

var (
	// ErrUnsupportedOS indicates the current OS cannot reboot through this method.
	ErrUnsupportedOS = errors.New("unsupported operating system")
	// errUnknownMethod is returned by New for an unsupported method name.
	errUnknownMethod = errors.New("unknown reboot method")
	// errEmptyCommand is returned when the command method has no argv.
	errEmptyCommand = errors.New("reboot command is empty")
)

// New returns the Rebooter of the given method. command is used by MethodCommand.
//
//nolint:ireturn // Callers select the implementation by name.
func New(method string, command []string) (Rebooter, error) {
	switch method {
	case MethodSyscall:
		return SyscallRebooter{}, nil
	case MethodProperty:
		return PropertyRebooter{}, nil
	case MethodCommand:
		if len(command) == 0 {
			return nil, errEmptyCommand
		}

		return CommandRebooter{Argv: command}, nil
	case MethodLogind:
		return LogindRebooter{}, nil
	case MethodNone:
		return NoopRebooter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownMethod, method)
	}
}

// PropertyRebooter asks Android init to reboot by setting sys.powerctl.
type PropertyRebooter struct {
	// Binary is the setprop executable, "setprop" when empty.
	Binary string
}

// Reboot runs `setprop sys.powerctl reboot,<reason>`.
func (p PropertyRebooter) Reboot(ctx context.Context, reason string) error {
	binary := p.Binary
	if binary == "" {
		binary = "setprop"
	}

	value := "reboot," + reason

	logger.InfoKV(ctx, "Requesting reboot through init", "property", PowerctlProperty, "value", value)

	if err := exec.CommandContext(ctx, binary, PowerctlProperty, value).Run(); err != nil {
		return fmt.Errorf("set %s: %w", PowerctlProperty, err)
	}

	return nil
}

// CommandRebooter runs an external command with the reason appended,
// e.g. `reboot rtc` or `systemctl reboot rtc`.
type CommandRebooter struct {
	// Argv is the command and its leading arguments.
	Argv []string
}

// Reboot runs the command and waits for it to hand over to the OS.
func (c CommandRebooter) Reboot(ctx context.Context, reason string) error {
	if len(c.Argv) == 0 {
		return errEmptyCommand
	}

	args := append(slices.Clone(c.Argv[1:]), reason)

	logger.InfoKV(ctx, "Requesting reboot through command", "command", c.Argv[0], "args", args)

	if err := exec.CommandContext(ctx, c.Argv[0], args...).Run(); err != nil {
		return fmt.Errorf("run %s: %w", c.Argv[0], err)
	}

	return nil
}

// NoopRebooter only logs the request. It backs the hidden --dry-run flag.
type NoopRebooter struct{}

// Reboot logs the reason and returns nil.
func (NoopRebooter) Reboot(ctx context.Context, reason string) error {
	logger.InfoKV(ctx, "Dry run, reboot skipped", "reason", reason)

	return nil
}
