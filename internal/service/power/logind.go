package power

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/oshokin/poweroff-alarm/internal/logger"
)

// logind D-Bus coordinates.
const (
	logindDestination = "org.freedesktop.login1"
	logindPath        = dbus.ObjectPath("/org/freedesktop/login1")
	logindManager     = "org.freedesktop.login1.Manager"
)

// LogindRebooter asks systemd-logind over the system bus to reboot.
type LogindRebooter struct{}

// Reboot stores reason as the reboot parameter and calls Manager.Reboot.
// Older logind versions without SetRebootParameter still reboot, untagged.
func (LogindRebooter) Reboot(ctx context.Context, reason string) error {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return fmt.Errorf("connect system bus: %w", err)
	}

	defer func() {
		_ = conn.Close()
	}()

	obj := conn.Object(logindDestination, logindPath)

	if err = obj.Call(logindManager+".SetRebootParameter", 0, reason).Err; err != nil {
		logger.WarnKV(ctx, "Unable to set reboot parameter", "reason", reason, "error", err)
	}

	logger.InfoKV(ctx, "Requesting reboot through logind", "reason", reason)

	if err = obj.Call(logindManager+".Reboot", 0, false).Err; err != nil {
		return fmt.Errorf("call %s.Reboot: %w", logindManager, err)
	}

	return nil
}
