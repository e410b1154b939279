package schema

import (
	"fmt"
	"strings"

	"github.com/mesabjorn/anything-db/internal/console"
)

const (
	// IdentityColumn is the system-managed primary key every created table carries
	IdentityColumn = "id"
	// ChangeTrackingColumn optionally records the last modification time of a row
	ChangeTrackingColumn = "updated"
)

// ColumnInfo is one row of storage introspection (PRAGMA table_info)
type ColumnInfo struct {
	Position   int
	Name       string
	Type       string
	NotNull    bool
	Default    *string
	PrimaryKey bool
}

// Column describes one table attribute
type Column struct {
	Position   int
	Name       string
	Type       string // declared storage type, compared case-insensitively
	NotNull    bool
	Default    *string
	PrimaryKey bool
	Visible    bool // eligible for interactive entry
}

func newColumn(info ColumnInfo) Column {
	return Column{
		Position:   info.Position,
		Name:       info.Name,
		Type:       info.Type,
		NotNull:    info.NotNull,
		Default:    info.Default,
		PrimaryKey: info.PrimaryKey,
		Visible:    IsVisible(info.Name),
	}
}

// IsVisible reports whether a column with this name is entered by the operator
func IsVisible(name string) bool {
	return name != IdentityColumn && name != ChangeTrackingColumn
}

// Accepts applies the not-null policy to a candidate value.
// In update mode an empty value means "leave unchanged".
func (c *Column) Accepts(v RawValue, forUpdate bool) bool {
	return forUpdate || !v.IsEmpty() || !c.NotNull
}

// Collect prompts until the entered value satisfies the not-null policy.
// Rejections are reported and re-prompted; the returned error only
// carries input lifecycle failures from the prompter.
func (c *Column) Collect(p console.Prompter, r console.Reporter, forUpdate bool) (RawValue, error) {
	label := fmt.Sprintf("Value for %s: (%s) ", c.Name, c.Type)
	for {
		line, err := p.Prompt(label)
		if err != nil {
			return "", err
		}
		v := RawValue(strings.TrimSpace(line))
		if c.Accepts(v, forUpdate) {
			return v, nil
		}
		r.Warn(fmt.Sprintf("A value for '%s' is required and cannot be empty.", c.Name))
	}
}

func (c Column) String() string {
	s := fmt.Sprintf("<Column %s:%s", c.Name, c.Type)
	if c.NotNull {
		s += " !REQUIRED!"
	}
	return s + ">"
}
