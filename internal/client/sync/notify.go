package sync

import "go.uber.org/zap"

// Notifier receives the transient user-facing notifications the
// synchronizers emit alongside their state changes. Implementations render
// them however the surface wants (shell output, logs); the synchronizers
// only publish.
type Notifier interface {
	// Success reports a completed mutation.
	Success(msg string)
	// Failure reports a failed mutation.
	Failure(msg string)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Failure(string) {}

// LogNotifier forwards notifications to a zap logger.
type LogNotifier struct {
	Log *zap.Logger
}

func (n LogNotifier) Success(msg string) { n.Log.Info(msg) }
func (n LogNotifier) Failure(msg string) { n.Log.Warn(msg) }
