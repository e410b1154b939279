package engine

import "time"

// EventType represents different lifecycle phases of a menu operation
type EventType string

const (
	EventOpStart   EventType = "op_start"
	EventStatement EventType = "statement"
	EventExecEnd   EventType = "exec_end"
	EventOpFailed  EventType = "op_failed"
	EventOpAborted EventType = "op_aborted"
	EventOpEnd     EventType = "op_end"
)

// Event represents a lifecycle event of an operation
type Event struct {
	Type      EventType   // Type of event
	TxID      string      // Transaction ID for tracing
	Timestamp time.Time   // When the event occurred
	Data      interface{} // Phase-specific data (e.g., table, SQL, rows affected, error)
}

// Observer interface for event subscribers
type Observer interface {
	OnEvent(event Event)
}
