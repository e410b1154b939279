// Package catalog lists tables and resolves operator input to a table name
package catalog

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mesabjorn/anything-db/internal/console"
	"github.com/mesabjorn/anything-db/internal/domain/errors"
)

// Lister returns the current table names in display order
type Lister interface {
	Tables(ctx context.Context) ([]string, error)
}

// Resolve maps input to a known table, either by exact name or by list index
func Resolve(input string, known []string) (string, error) {
	for _, t := range known {
		if t == input {
			return t, nil
		}
	}

	index, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return "", &errors.TableNotFoundError{TableName: input}
	}
	if index < 0 || index >= len(known) {
		return "", &errors.IndexError{Index: index, Count: len(known)}
	}
	return known[index], nil
}

// Print writes the numbered table listing
func Print(w io.Writer, tables []string) {
	if len(tables) == 0 {
		fmt.Fprintln(w, "No tables found in the database.")
		return
	}
	fmt.Fprintln(w, "Available tables:")
	for i, t := range tables {
		fmt.Fprintf(w, "%d. %s\n", i, t)
	}
}

// Select prompts until the input resolves to an existing table.
// The table list is re-read on every attempt so it always reflects storage.
func Select(ctx context.Context, lister Lister, p console.Prompter, r console.Reporter, label string) (string, error) {
	for {
		input, err := p.Prompt(label)
		if err != nil {
			return "", err
		}
		tables, err := lister.Tables(ctx)
		if err != nil {
			return "", err
		}
		table, err := Resolve(input, tables)
		if err != nil {
			r.Error(err.Error())
			continue
		}
		return table, nil
	}
}
