package app

import (
	"context"
	"os/exec"
	"runtime"
	"time"

	"vidgrab/internal/domain/consts"
	"vidgrab/internal/logging"
)

const notifyTimeout = 5 * time.Second

// Notifier shows a desktop notification.
type Notifier interface {
	Notify(ctx context.Context, body string)
}

// DesktopNotifier calls notify-send on Linux. Elsewhere, or without the binary, it does nothing.
type DesktopNotifier struct{}

// Notify implements Notifier.
func (DesktopNotifier) Notify(ctx context.Context, body string) {
	if runtime.GOOS != "linux" {
		return
	}
	bin, err := exec.LookPath("notify-send")
	if err != nil {
		logging.D(2, "notify-send not found, skipping notification")
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if err := exec.CommandContext(ctx, bin, consts.NotifyAppName, body).Run(); err != nil {
		logging.D(1, "Notification failed: %v", err)
	}
}
