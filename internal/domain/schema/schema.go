package schema

import (
	"fmt"
	"strings"
	"time"

	"github.com/mesabjorn/anything-db/internal/console"
)

// TimestampLayout matches the text SQLite stores for CURRENT_TIMESTAMP
const TimestampLayout = "2006-01-02 15:04:05"

// Schema is the live description of one table's columns.
// It is rebuilt from storage metadata for every operation and never cached.
type Schema struct {
	TableName string
	Columns   []Column
}

// New builds a schema from introspection descriptors, keeping storage order
func New(tableName string, infos []ColumnInfo) *Schema {
	s := &Schema{
		TableName: tableName,
		Columns:   make([]Column, 0, len(infos)),
	}
	for _, info := range infos {
		s.Columns = append(s.Columns, newColumn(info))
	}
	return s
}

// Lookup finds a column by exact name
func (s *Schema) Lookup(name string) (*Column, bool) {
	for i := range s.Columns {
		if s.Columns[i].Name == name {
			return &s.Columns[i], true
		}
	}
	return nil, false
}

// Visible returns the columns eligible for interactive entry, in order
func (s *Schema) Visible() []Column {
	var cols []Column
	for _, c := range s.Columns {
		if c.Visible {
			cols = append(cols, c)
		}
	}
	return cols
}

// Names returns all column names in storage order
func (s *Schema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// ChangeTracked reports whether the table carries the change-tracking column
func (s *Schema) ChangeTracked() bool {
	_, ok := s.Lookup(ChangeTrackingColumn)
	return ok
}

// BuildValues collects a value for every visible column and, for change-tracked
// tables, stamps the change-tracking column with now.
func (s *Schema) BuildValues(p console.Prompter, r console.Reporter, forUpdate bool, now time.Time) (ValueMapping, error) {
	var m ValueMapping
	for i := range s.Columns {
		c := &s.Columns[i]
		if !c.Visible {
			continue
		}
		v, err := c.Collect(p, r, forUpdate)
		if err != nil {
			return ValueMapping{}, err
		}
		m.Set(c.Name, v)
	}

	if s.ChangeTracked() {
		m.SetSystem(ChangeTrackingColumn, RawValue(now.UTC().Format(TimestampLayout)))
	}
	return m, nil
}

func (s *Schema) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Schema for table '%s':\n", s.TableName)
	for _, c := range s.Visible() {
		fmt.Fprintf(&b, "\t%s\n", c)
	}
	return b.String()
}
