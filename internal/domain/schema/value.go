package schema

import "strings"

// RawValue is free-form operator input for a single column.
// Values are not type-checked; coercion for display lives in the projection package.
type RawValue string

// IsEmpty reports whether nothing but whitespace was entered
func (v RawValue) IsEmpty() bool {
	return strings.TrimSpace(string(v)) == ""
}

func (v RawValue) String() string {
	return string(v)
}

// Assignment is one column→value entry of a ValueMapping
type Assignment struct {
	Column string
	Value  RawValue
	System bool // set by the system (change tracking), never entered by the operator
}

// ValueMapping is an ordered column→value mapping collected for INSERT or UPDATE
type ValueMapping struct {
	entries []Assignment
}

// Set adds or replaces the operator value for column, keeping first-insertion order
func (m *ValueMapping) Set(column string, value RawValue) {
	m.put(Assignment{Column: column, Value: value})
}

// SetSystem adds or replaces a system-managed value for column
func (m *ValueMapping) SetSystem(column string, value RawValue) {
	m.put(Assignment{Column: column, Value: value, System: true})
}

func (m *ValueMapping) put(a Assignment) {
	for i := range m.entries {
		if m.entries[i].Column == a.Column {
			m.entries[i] = a
			return
		}
	}
	m.entries = append(m.entries, a)
}

// Get returns the value stored for column
func (m ValueMapping) Get(column string) (RawValue, bool) {
	for _, a := range m.entries {
		if a.Column == column {
			return a.Value, true
		}
	}
	return "", false
}

// Len returns the number of entries
func (m ValueMapping) Len() int {
	return len(m.entries)
}

// Entries returns a copy of the entries in order
func (m ValueMapping) Entries() []Assignment {
	out := make([]Assignment, len(m.entries))
	copy(out, m.entries)
	return out
}

// Filtered drops entries with an empty value so storage defaults apply
func (m ValueMapping) Filtered() ValueMapping {
	var out ValueMapping
	for _, a := range m.entries {
		if !a.Value.IsEmpty() {
			out.entries = append(out.entries, a)
		}
	}
	return out
}

// Columns returns the column names in order
func (m ValueMapping) Columns() []string {
	cols := make([]string, len(m.entries))
	for i, a := range m.entries {
		cols[i] = a.Column
	}
	return cols
}

// Args returns the values in column order, ready to bind as statement parameters
func (m ValueMapping) Args() []any {
	args := make([]any, len(m.entries))
	for i, a := range m.entries {
		args[i] = string(a.Value)
	}
	return args
}

// HasUserValues reports whether at least one non-empty operator-entered value is present
func (m ValueMapping) HasUserValues() bool {
	for _, a := range m.entries {
		if !a.System && !a.Value.IsEmpty() {
			return true
		}
	}
	return false
}
