package errors

import (
	"errors"
	"io"
	"testing"

	"gotest.tools/v3/assert"
)

func TestSentinelUnwrapping(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed: users.name")

	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"validation", &ValidationError{Field: "answer", Message: "not a boolean"}, ErrInvalidInput},
		{"column", &ColumnNotFoundError{TableName: "users", ColumnName: "nope"}, ErrNotFound},
		{"table", &TableNotFoundError{TableName: "nope"}, ErrNotFound},
		{"index", &IndexError{Index: 5, Count: 2}, ErrNotFound},
		{"condition", &ConditionSyntaxError{Input: "id", Reason: "missing '='"}, ErrInvalidInput},
		{"integrity", &IntegrityError{Table: "users", Op: "INSERT", Err: cause}, ErrIntegrity},
		{"engine", &EngineError{SQL: "SELECT", Err: cause}, ErrEngine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Assert(t, errors.Is(tt.err, tt.sentinel))
			assert.Assert(t, IsRecoverable(tt.err))
		})
	}
}

func TestIntegrityErrorKeepsCause(t *testing.T) {
	cause := errors.New("NOT NULL constraint failed: users.name")
	err := &IntegrityError{Table: "users", Op: "INSERT", Err: cause}

	assert.Assert(t, errors.Is(err, cause))
	assert.Equal(t, err.Error(), "constraint violation in users - (INSERT) - NOT NULL constraint failed: users.name")
}

func TestIndexErrorMessage(t *testing.T) {
	err := &IndexError{Index: 2, Count: 2}
	assert.Equal(t, err.Error(), "no such table index 2, please specify the name or the index between 0 and 1")
}

func TestLifecycleErrorsAreNotRecoverable(t *testing.T) {
	assert.Assert(t, !IsRecoverable(io.EOF))
}
