package validation

import (
	"errors"
	"testing"

	domainerrors "github.com/mesabjorn/anything-db/internal/domain/errors"
	"gotest.tools/v3/assert"
)

func TestParseBool(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"yes", true}, {"Y", true}, {"TRUE", true}, {"1", true}, {" t ", true},
		{"no", false}, {"N", false}, {"False", false}, {"0", false}, {"f", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBool(tt.input)
			assert.NilError(t, err)
			assert.Equal(t, got, tt.want)
		})
	}
}

func TestParseBoolRejectsOtherInput(t *testing.T) {
	for _, input := range []string{"", "maybe", "yess", "2"} {
		_, err := ParseBool(input)
		assert.Assert(t, errors.Is(err, domainerrors.ErrInvalidInput), "input %q", input)
	}
}

func TestValidateIdentifier(t *testing.T) {
	assert.NilError(t, ValidateIdentifier("table", "users"))
	assert.NilError(t, ValidateIdentifier("column", "_created_at2"))

	for _, name := range []string{"", "1abc", "drop table", "a-b", "sqlite_master"} {
		err := ValidateIdentifier("table", name)
		assert.Assert(t, errors.Is(err, domainerrors.ErrInvalidInput), "name %q", name)
	}
}
