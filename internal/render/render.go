// Package render prints result rows and schema descriptions for the operator
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/mesabjorn/anything-db/internal/domain/data"
	"github.com/mesabjorn/anything-db/internal/domain/schema"
	"github.com/mesabjorn/anything-db/internal/query/projection"
)

var titleStyle = lipgloss.NewStyle().Bold(true)

// Rows prints res as an aligned table. Column types come from sch when it
// knows the column; values are formatted through their projection.
// sch may be nil.
func Rows(w io.Writer, res *data.Result, sch *schema.Schema) {
	if res == nil || len(res.Columns) == 0 {
		return
	}

	projections := make([]projection.Projection, len(res.Columns))
	types := make([]string, len(res.Columns))
	for i, col := range res.Columns {
		if sch != nil {
			if c, ok := sch.Lookup(col); ok {
				projections[i] = projection.ForColumn(*c)
				types[i] = c.Type
				continue
			}
		}
		projections[i] = projection.Project("")
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	// Header - show type if known
	header := make([]string, len(res.Columns))
	for i, col := range res.Columns {
		if types[i] != "" {
			header[i] = fmt.Sprintf("%s (%s)", col, types[i])
		} else {
			header[i] = col
		}
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(res.Columns))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))

	for _, row := range res.Rows {
		cells := make([]string, len(res.Columns))
		for i := range res.Columns {
			if i < len(row) {
				cells[i] = projections[i].Format(row[i])
			} else {
				cells[i] = "NULL"
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()
}

// Summary prints rows followed by a count line, truncated to limit rows when limit > 0
func Summary(w io.Writer, res *data.Result, sch *schema.Schema, limit int) {
	if res.Empty() {
		fmt.Fprintln(w, "No rows found.")
		return
	}
	shown := res.Head(limit)
	Rows(w, shown, sch)
	if shown.Len() < res.Len() {
		fmt.Fprintf(w, "(%d of %d rows)\n", shown.Len(), res.Len())
	} else {
		fmt.Fprintf(w, "(%d rows)\n", res.Len())
	}
}

// Schema prints the visible columns of sch
func Schema(w io.Writer, sch *schema.Schema) {
	fmt.Fprintf(w, "%s\n", titleStyle.Render(fmt.Sprintf("Schema for table '%s':", sch.TableName)))
	for _, c := range sch.Visible() {
		fmt.Fprintf(w, "\t%s\n", c)
	}
}
