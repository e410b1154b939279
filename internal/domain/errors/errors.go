// Package errors defines the error taxonomy shared by the table manager.
//
// Validation errors are recoverable at the prompt that produced them.
// Integrity errors abandon the current operation. Engine errors degrade
// reads to "no results". Every typed error unwraps to one of the sentinels
// below so callers can branch with errors.Is.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput marks operator input that failed validation
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks a table or column that does not exist
	ErrNotFound = errors.New("not found")
	// ErrIntegrity marks a write rejected by a storage constraint
	ErrIntegrity = errors.New("integrity violation")
	// ErrEngine marks any other failure reported by the storage engine
	ErrEngine = errors.New("engine error")
	// ErrNoAssignments is returned when an UPDATE would carry no operator-entered column
	ErrNoAssignments = errors.New("no columns to update")
)

// ValidationError represents operator input that was rejected
type ValidationError struct {
	Field   string // what was being entered (column, table, answer)
	Value   string // offending input
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// ColumnNotFoundError is returned when a column name is not part of a table schema
type ColumnNotFoundError struct {
	TableName  string
	ColumnName string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("Column '%s' not found in schema of '%s'", e.ColumnName, e.TableName)
}

func (e *ColumnNotFoundError) Unwrap() error { return ErrNotFound }

// TableNotFoundError is returned when input names no known table
type TableNotFoundError struct {
	TableName string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("no such table: '%s'", e.TableName)
}

func (e *TableNotFoundError) Unwrap() error { return ErrNotFound }

// IndexError reports a table index outside of the listed range
type IndexError struct {
	Index int
	Count int
}

func (e *IndexError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("no such table index %d, the database has no tables", e.Index)
	}
	return fmt.Sprintf("no such table index %d, please specify the name or the index between 0 and %d", e.Index, e.Count-1)
}

func (e *IndexError) Unwrap() error { return ErrNotFound }

// ConditionSyntaxError is returned for a condition that is not of the form column=value
type ConditionSyntaxError struct {
	Input  string
	Reason string
}

func (e *ConditionSyntaxError) Error() string {
	return fmt.Sprintf("malformed condition %q: %s", e.Input, e.Reason)
}

func (e *ConditionSyntaxError) Unwrap() error { return ErrInvalidInput }

// IntegrityError wraps a storage constraint violation (unique, not null, primary key, ...)
type IntegrityError struct {
	Table string
	Op    string // INSERT, UPDATE, DELETE
	Err   error
}

func (e *IntegrityError) Error() string {
	parts := []string{"constraint violation"}
	if e.Table != "" {
		parts[0] = fmt.Sprintf("constraint violation in %s", e.Table)
	}
	if e.Op != "" {
		parts = append(parts, fmt.Sprintf("(%s)", e.Op))
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, " - ")
}

func (e *IntegrityError) Unwrap() []error { return []error{ErrIntegrity, e.Err} }

// EngineError wraps an operational failure reported by the storage engine
type EngineError struct {
	SQL string
	Err error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("engine error: %v", e.Err)
}

func (e *EngineError) Unwrap() []error { return []error{ErrEngine, e.Err} }

// IsRecoverable reports whether err should be reported and retried instead of ending the session
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrIntegrity) ||
		errors.Is(err, ErrEngine) ||
		errors.Is(err, ErrNoAssignments)
}
