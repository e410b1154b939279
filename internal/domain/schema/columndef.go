package schema

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mesabjorn/anything-db/internal/domain/errors"
	"github.com/mesabjorn/anything-db/internal/validation"
)

var (
	notNullSuffix = regexp.MustCompile(`(^|\s+)(nn|not\s+null)$`)
	// a type token such as "text", "varchar(20)" or "decimal(10, 2)"
	typeTokenRegex = regexp.MustCompile(`^[a-z][a-z0-9_ ]*(\(\s*\d+\s*(,\s*\d+\s*)?\))?$`)
)

// ColumnDef is an operator-defined column for CREATE TABLE
type ColumnDef struct {
	Name    string
	Type    string
	NotNull bool
}

// ParseColumnDef parses a column name and a free-text type token.
// A trailing "nn" or "not null" (case-insensitive) marks the column mandatory.
func ParseColumnDef(name, typeSpec string) (ColumnDef, error) {
	name = strings.TrimSpace(name)
	if err := validation.ValidateIdentifier("column", name); err != nil {
		return ColumnDef{}, err
	}
	if strings.EqualFold(name, IdentityColumn) || strings.EqualFold(name, ChangeTrackingColumn) {
		return ColumnDef{}, &errors.ValidationError{
			Field:   "column",
			Value:   name,
			Message: fmt.Sprintf("'%s' is reserved for a system-managed column", name),
		}
	}

	spec := strings.ToLower(strings.TrimSpace(typeSpec))
	def := ColumnDef{Name: name}
	if loc := notNullSuffix.FindStringIndex(spec); loc != nil {
		def.NotNull = true
		spec = strings.TrimSpace(spec[:loc[0]])
	}
	if spec != "" && !typeTokenRegex.MatchString(spec) {
		return ColumnDef{}, &errors.ValidationError{
			Field:   "column type",
			Value:   typeSpec,
			Message: fmt.Sprintf("'%s' is not a valid type (e.g., TEXT, INTEGER, REAL, BLOB)", typeSpec),
		}
	}
	def.Type = spec
	return def, nil
}
