package builder

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/mesabjorn/anything-db/internal/domain/errors"
	"github.com/mesabjorn/anything-db/internal/domain/schema"
	"github.com/mesabjorn/anything-db/internal/query/projection"
)

// Condition is a single column=value row selection
type Condition struct {
	Column string
	Value  string
	// Arg is the typed parameter bound for Value; nil binds Value as text
	Arg any
}

func (c Condition) String() string {
	return c.Column + "=" + c.Value
}

// Bind returns c with its value coerced to the column type described by p
func (c Condition) Bind(p projection.Projection) Condition {
	c.Arg = p.Coerce(schema.RawValue(c.Value))
	return c
}

func (c Condition) eq() sq.Eq {
	if c.Arg != nil {
		return sq.Eq{QuoteIdent(c.Column): c.Arg}
	}
	return sq.Eq{QuoteIdent(c.Column): c.Value}
}

// ParseCondition splits raw on the first '=' and trims both sides
func ParseCondition(raw string) (Condition, error) {
	col, val, found := strings.Cut(raw, "=")
	if !found {
		return Condition{}, &errors.ConditionSyntaxError{Input: raw, Reason: "expected column=value"}
	}
	c := Condition{Column: strings.TrimSpace(col), Value: strings.TrimSpace(val)}
	if c.Column == "" {
		return Condition{}, &errors.ConditionSyntaxError{Input: raw, Reason: "column name is empty"}
	}
	return c, nil
}
