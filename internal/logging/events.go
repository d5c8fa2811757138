package logging

import (
	"context"
	"log/slog"
)

// Domain events carried under the "event" key so sync runs can be traced in
// the log stream regardless of message wording.
const (
	EventSyncStarted   = "sync_started"
	EventSyncSucceeded = "sync_succeeded"
	EventSyncFailed    = "sync_failed"
	EventExportSaved   = "export_saved"
)

// Event emits a structured record whose message and "event" attribute are both
// the event name.
func Event(logger *slog.Logger, level slog.Level, event string, args ...any) {
	if logger == nil {
		return
	}
	logger.Log(context.Background(), level, event, append([]any{"event", event}, args...)...)
}
