package data

// Row holds the cell values of one result row, in result column order
type Row []any

// Result is the outcome of a read against storage
type Result struct {
	Columns []string
	Rows    []Row
}

// Len returns the number of rows
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// Empty reports whether the result holds no rows
func (r *Result) Empty() bool {
	return r.Len() == 0
}

// ColumnIndex returns the position of column in the result, or -1
func (r *Result) ColumnIndex(column string) int {
	for i, c := range r.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Value returns the cell for column in row i
func (r *Result) Value(i int, column string) (any, bool) {
	idx := r.ColumnIndex(column)
	if idx < 0 || i < 0 || i >= len(r.Rows) || idx >= len(r.Rows[i]) {
		return nil, false
	}
	return r.Rows[i][idx], true
}

// Head returns a result with at most n rows; n <= 0 keeps everything
func (r *Result) Head(n int) *Result {
	if n <= 0 || n >= r.Len() {
		return r
	}
	return &Result{Columns: r.Columns, Rows: r.Rows[:n]}
}
