package transaction

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// seqCounter numbers operations within one session
var seqCounter uint64

// ChangeType represents the kind of modification an operation performs
type ChangeType string

const (
	ChangeTypeInsert ChangeType = "INSERT"
	ChangeTypeUpdate ChangeType = "UPDATE"
	ChangeTypeDelete ChangeType = "DELETE"
	ChangeTypeCreate ChangeType = "CREATE"
	ChangeTypeDrop   ChangeType = "DROP"
	ChangeTypeRead   ChangeType = "READ"
)

// Change represents a single statement executed within an operation
type Change struct {
	Type         ChangeType
	Table        string
	SQL          string
	RowsAffected int64
}

// Transaction is the tracing context of one menu operation
type Transaction struct {
	ID        string     // Unique identifier used to correlate log events
	Seq       uint64     // Session-local sequence number
	Type      ChangeType // Operation kind
	Table     string     // Target table, set once resolved
	Active    bool
	StartTime time.Time
	Changes   []Change
}

// NewTransaction creates a new transaction with a unique ID
func NewTransaction(op ChangeType) *Transaction {
	return &Transaction{
		ID:        uuid.New().String(),
		Seq:       atomic.AddUint64(&seqCounter, 1),
		Type:      op,
		Active:    true,
		StartTime: time.Now(),
		Changes:   make([]Change, 0),
	}
}

// Record appends an executed statement
func (tx *Transaction) Record(c Change) {
	tx.Changes = append(tx.Changes, c)
}

// RowsAffected sums the rows touched by every recorded change
func (tx *Transaction) RowsAffected() int64 {
	var n int64
	for _, c := range tx.Changes {
		n += c.RowsAffected
	}
	return n
}

// Close marks the transaction as inactive and returns its duration
func (tx *Transaction) Close() time.Duration {
	tx.Active = false
	return time.Since(tx.StartTime)
}
