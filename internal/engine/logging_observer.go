package engine

import (
	"context"
	"log/slog"
)

// LoggingObserver logs all operation events using structured logging
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates a new logging observer; a nil logger falls back to slog.Default
func NewLoggingObserver(logger *slog.Logger) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{logger: logger}
}

// OnEvent implements the Observer interface.
// Operation boundaries log at info, statement details at debug.
func (lo *LoggingObserver) OnEvent(event Event) {
	level := slog.LevelDebug
	switch event.Type {
	case EventOpStart, EventOpEnd, EventOpAborted, EventOpFailed:
		level = slog.LevelInfo
	}
	lo.logger.Log(context.Background(), level, "operation_lifecycle",
		"event", event.Type,
		"tx_id", event.TxID,
		"timestamp", event.Timestamp,
		"data", event.Data,
	)
}
