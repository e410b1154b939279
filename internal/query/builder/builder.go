// Package builder renders parameterized SQL statements from a table name,
// a ValueMapping and an optional condition. It never touches storage.
package builder

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/mesabjorn/anything-db/internal/domain/errors"
	"github.com/mesabjorn/anything-db/internal/domain/schema"
	"github.com/mesabjorn/anything-db/internal/query/projection"
)

// Statement is SQL text plus its positional parameters
type Statement struct {
	SQL  string
	Args []any
}

func (s Statement) String() string {
	return fmt.Sprintf("%s %v", s.SQL, s.Args)
}

// QuoteIdent quotes a table or column name, doubling embedded quotes
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = QuoteIdent(n)
	}
	return out
}

func build(q sq.Sqlizer) (Statement, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return Statement{}, &errors.EngineError{Err: err}
	}
	return Statement{SQL: query, Args: args}, nil
}

// Insert renders INSERT INTO table (cols...) VALUES (?...).
// Empty values are dropped first. A mapping left without columns renders
// a column-less statement the engine rejects.
func Insert(table string, values schema.ValueMapping) (Statement, error) {
	m := values.Filtered()
	if m.Len() == 0 {
		return Statement{SQL: fmt.Sprintf("INSERT INTO %s () VALUES ()", QuoteIdent(table))}, nil
	}
	return build(sq.Insert(QuoteIdent(table)).
		Columns(quoteAll(m.Columns())...).
		Values(m.Args()...).
		PlaceholderFormat(sq.Question))
}

// Update renders UPDATE table SET col = ?, ... WHERE conditionColumn = ?.
// Parameters are the mapping values in order followed by the condition value.
func Update(table, condition string, values schema.ValueMapping) (Statement, error) {
	cond, err := ParseCondition(condition)
	if err != nil {
		return Statement{}, err
	}
	return UpdateWhere(table, cond, values)
}

// UpdateWhere is Update with an already parsed condition
func UpdateWhere(table string, cond Condition, values schema.ValueMapping) (Statement, error) {
	m := values.Filtered()
	if !m.HasUserValues() {
		return Statement{}, errors.ErrNoAssignments
	}

	q := sq.Update(QuoteIdent(table)).PlaceholderFormat(sq.Question)
	args := m.Args()
	for i, col := range m.Columns() {
		q = q.Set(QuoteIdent(col), args[i])
	}
	return build(q.Where(cond.eq()))
}

// Delete renders DELETE FROM table WHERE column = ? from a column=value condition
func Delete(table, condition string) (Statement, error) {
	cond, err := ParseCondition(condition)
	if err != nil {
		return Statement{}, err
	}
	return DeleteWhere(table, cond)
}

// DeleteWhere is Delete with an already parsed condition
func DeleteWhere(table string, cond Condition) (Statement, error) {
	return build(sq.Delete(QuoteIdent(table)).
		Where(cond.eq()).
		PlaceholderFormat(sq.Question))
}

// Search renders a SELECT matching column against value with the column's
// comparison strategy. Exact matches bind the value coerced to the column type.
func Search(table, column string, p projection.Projection, value string) (Statement, error) {
	q := sq.Select("*").From(QuoteIdent(table)).PlaceholderFormat(sq.Question)
	if p.Strategy == projection.Substring {
		q = q.Where(sq.Expr(QuoteIdent(column)+" LIKE ? COLLATE NOCASE", p.Strategy.Pattern(value)))
	} else {
		q = q.Where(sq.Eq{QuoteIdent(column): p.Coerce(schema.RawValue(value))})
	}
	return build(q)
}

// SelectAll renders an unfiltered SELECT; limit <= 0 means no limit
func SelectAll(table string, limit int) Statement {
	q := sq.Select("*").From(QuoteIdent(table))
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	// a bare select with a FROM clause always renders
	stmt, _ := build(q)
	return stmt
}

// CreateTable renders the DDL for operator columns plus the system columns.
// The change-tracking column (when requested) comes before the identity column.
func CreateTable(table string, defs []schema.ColumnDef, changeTracked bool) Statement {
	cols := make([]string, 0, len(defs)+2)
	for _, d := range defs {
		def := QuoteIdent(d.Name)
		if d.Type != "" {
			def += " " + d.Type
		}
		if d.NotNull {
			def += " NOT NULL"
		}
		cols = append(cols, def)
	}
	if changeTracked {
		cols = append(cols, QuoteIdent(schema.ChangeTrackingColumn)+" TIMESTAMP DEFAULT CURRENT_TIMESTAMP")
	}
	cols = append(cols, QuoteIdent(schema.IdentityColumn)+" INTEGER PRIMARY KEY AUTOINCREMENT")

	return Statement{SQL: fmt.Sprintf("CREATE TABLE %s (%s)", QuoteIdent(table), strings.Join(cols, ", "))}
}

// DropTable renders DROP TABLE IF EXISTS
func DropTable(table string) Statement {
	return Statement{SQL: fmt.Sprintf("DROP TABLE IF EXISTS %s", QuoteIdent(table))}
}

// ListTables selects user table names in creation order
func ListTables() Statement {
	stmt, _ := build(sq.Select("name").From("sqlite_master").
		Where(sq.Eq{"type": "table"}).
		Where(sq.NotLike{"name": "sqlite_%"}))
	return stmt
}

// TableInfo renders the introspection pragma for table
func TableInfo(table string) Statement {
	return Statement{SQL: fmt.Sprintf("PRAGMA table_info(%s)", QuoteIdent(table))}
}
