package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mesabjorn/anything-db/internal/catalog"
	"github.com/mesabjorn/anything-db/internal/console"
	domainerrors "github.com/mesabjorn/anything-db/internal/domain/errors"
	"github.com/mesabjorn/anything-db/internal/domain/schema"
	"github.com/mesabjorn/anything-db/internal/domain/transaction"
	"github.com/mesabjorn/anything-db/internal/query/builder"
	"github.com/mesabjorn/anything-db/internal/render"
	"github.com/mesabjorn/anything-db/internal/validation"
)

const (
	tablePrompt       = "Enter table name: "
	createTablePrompt = "Enter table name to create: "
	dropTablePrompt   = "Enter table name to drop: "
	columnNamePrompt  = "Column name: "
	columnTypePrompt  = "Column type (e.g., TEXT, INTEGER, REAL, BLOB). Add 'NN' or 'NOT NULL' for obligatory columns: "
	trackingQuestion  = "Add a 'updated' column to track update times? "
)

// ListTables prints the numbered table listing
func (e *Engine) ListTables(ctx context.Context) error {
	tables, err := e.store.Tables(ctx)
	if err != nil {
		return e.fatal(err)
	}
	catalog.Print(e.out, tables)
	return nil
}

// chooseTable lists the tables and prompts until one is selected.
// ok is false when there is nothing to choose from.
func (e *Engine) chooseTable(ctx context.Context, tx *transaction.Transaction, label string) (string, bool, error) {
	tables, err := e.store.Tables(ctx)
	if err != nil {
		return "", false, e.fatal(err)
	}
	catalog.Print(e.out, tables)
	if len(tables) == 0 {
		e.abort(tx, "no tables")
		return "", false, nil
	}

	table, err := catalog.Select(ctx, e.store, e.prompter, e.reporter, label)
	if err != nil {
		return "", false, e.fatal(err)
	}
	tx.Table = table
	return table, true, nil
}

// loadSchema introspects table and prints its description
func (e *Engine) loadSchema(ctx context.Context, table string) (*schema.Schema, error) {
	sch, err := e.store.Schema(ctx, table)
	if err != nil {
		return nil, err
	}
	render.Schema(e.out, sch)
	return sch, nil
}

// CreateTable asks for a table name and its column definitions, then creates it
func (e *Engine) CreateTable(ctx context.Context) error {
	tx := e.begin(transaction.ChangeTypeCreate)
	defer e.finish(tx)

	name, err := e.askNewTableName()
	if err != nil || name == "" {
		return err
	}
	tx.Table = name

	tables, err := e.store.Tables(ctx)
	if err != nil {
		return e.fatal(err)
	}
	for _, t := range tables {
		if strings.EqualFold(t, name) {
			e.reporter.Warn("Table with this name already exists. Drop the table first, or enter another name.")
			e.abort(tx, "table exists")
			return nil
		}
	}

	defs, err := e.askColumnDefs()
	if err != nil {
		return err
	}
	tracked, err := console.AskYesNo(e.prompter, e.reporter, trackingQuestion)
	if err != nil {
		return err
	}

	if _, err := e.exec(ctx, tx, builder.CreateTable(name, defs, tracked)); err != nil {
		return e.fatal(err)
	}
	e.success(fmt.Sprintf("Table '%s' created successfully.", name))
	return nil
}

// askNewTableName returns "" when the operator enters nothing
func (e *Engine) askNewTableName() (string, error) {
	for {
		line, err := e.prompter.Prompt(createTablePrompt)
		if err != nil {
			return "", err
		}
		name := strings.TrimSpace(line)
		if name == "" {
			return "", nil
		}
		if err := validation.ValidateIdentifier("table", name); err != nil {
			e.reporter.Error(err.Error())
			continue
		}
		return name, nil
	}
}

func (e *Engine) askColumnDefs() ([]schema.ColumnDef, error) {
	fmt.Fprintln(e.out, "Define the columns for the table: ")
	fmt.Fprintln(e.out, "Leave the column name empty to stop adding columns. ")

	var defs []schema.ColumnDef
	seen := make(map[string]bool)
	for {
		line, err := e.prompter.Prompt(columnNamePrompt)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSpace(line)
		if name == "" {
			return defs, nil
		}
		if seen[strings.ToLower(name)] {
			e.reporter.Error((&domainerrors.ValidationError{
				Field:   "column",
				Value:   name,
				Message: fmt.Sprintf("'%s' is already defined", name),
			}).Error())
			continue
		}

		typeSpec, err := e.prompter.Prompt(columnTypePrompt)
		if err != nil {
			return nil, err
		}
		def, err := schema.ParseColumnDef(name, typeSpec)
		if err != nil {
			e.reporter.Error(err.Error())
			continue
		}
		seen[strings.ToLower(def.Name)] = true
		defs = append(defs, def)
	}
}

// DropTable asks for a table and drops it after confirmation
func (e *Engine) DropTable(ctx context.Context) error {
	tx := e.begin(transaction.ChangeTypeDrop)
	defer e.finish(tx)

	table, ok, err := e.chooseTable(ctx, tx, dropTablePrompt)
	if err != nil || !ok {
		return err
	}

	question := fmt.Sprintf("Are you sure you want to drop the table '%s'? This action cannot be undone. (yes/no): ", table)
	confirm, err := console.AskYesNo(e.prompter, e.reporter, question)
	if err != nil {
		return err
	}
	if !confirm {
		fmt.Fprintln(e.out, "Operation cancelled.")
		e.abort(tx, "not confirmed")
		return nil
	}

	if _, err := e.exec(ctx, tx, builder.DropTable(table)); err != nil {
		return e.fatal(err)
	}
	e.success(fmt.Sprintf("Table '%s' dropped successfully.", table))
	return nil
}

// Insert collects a value for every visible column and inserts one row
func (e *Engine) Insert(ctx context.Context) error {
	tx := e.begin(transaction.ChangeTypeInsert)
	defer e.finish(tx)

	table, ok, err := e.chooseTable(ctx, tx, tablePrompt)
	if err != nil || !ok {
		return err
	}
	sch, err := e.loadSchema(ctx, table)
	if err != nil {
		return e.fatal(err)
	}

	values, err := sch.BuildValues(e.prompter, e.reporter, false, e.now())
	if err != nil {
		return err
	}

	stmt, err := builder.Insert(table, values)
	if err != nil {
		return e.fatal(err)
	}
	if _, err := e.exec(ctx, tx, stmt); err != nil {
		return e.fatal(err)
	}
	e.success("Record inserted successfully.")
	return nil
}

// Read prints the first rows of a table
func (e *Engine) Read(ctx context.Context) error {
	tx := e.begin(transaction.ChangeTypeRead)
	defer e.finish(tx)

	table, ok, err := e.chooseTable(ctx, tx, tablePrompt)
	if err != nil || !ok {
		return err
	}
	sch, err := e.loadSchema(ctx, table)
	if err != nil {
		return e.fatal(err)
	}

	res, err := e.query(ctx, tx, builder.SelectAll(table, 0))
	if err != nil {
		if ferr := e.fatal(err); ferr != nil {
			return ferr
		}
		res = nil
	}
	e.ShowRows(res, sch)
	return nil
}

// Update resolves a condition, collects replacement values and updates the matching rows
func (e *Engine) Update(ctx context.Context) error {
	tx := e.begin(transaction.ChangeTypeUpdate)
	defer e.finish(tx)

	table, ok, err := e.chooseTable(ctx, tx, tablePrompt)
	if err != nil || !ok {
		return err
	}
	sch, err := e.loadSchema(ctx, table)
	if err != nil {
		return e.fatal(err)
	}

	cond, ok, err := e.resolver.Resolve(ctx, sch)
	if err != nil {
		return err
	}
	if !ok {
		e.abort(tx, "no condition")
		return nil
	}

	values, err := sch.BuildValues(e.prompter, e.reporter, true, e.now())
	if err != nil {
		return err
	}
	stmt, err := builder.UpdateWhere(table, cond, values)
	if errors.Is(err, domainerrors.ErrNoAssignments) {
		e.reporter.Warn("Nothing to update: every value was left empty.")
		e.abort(tx, "no assignments")
		return nil
	}
	if err != nil {
		return e.fatal(err)
	}

	n, err := e.exec(ctx, tx, stmt)
	if err != nil {
		return e.fatal(err)
	}
	e.affected(n, cond, "updated")
	return nil
}

// Delete resolves a condition and deletes the matching rows
func (e *Engine) Delete(ctx context.Context) error {
	tx := e.begin(transaction.ChangeTypeDelete)
	defer e.finish(tx)

	table, ok, err := e.chooseTable(ctx, tx, tablePrompt)
	if err != nil || !ok {
		return err
	}
	sch, err := e.loadSchema(ctx, table)
	if err != nil {
		return e.fatal(err)
	}

	cond, ok, err := e.resolver.Resolve(ctx, sch)
	if err != nil {
		return err
	}
	if !ok {
		e.abort(tx, "no condition")
		return nil
	}

	stmt, err := builder.DeleteWhere(table, cond)
	if err != nil {
		return e.fatal(err)
	}
	n, err := e.exec(ctx, tx, stmt)
	if err != nil {
		return e.fatal(err)
	}
	e.affected(n, cond, "deleted")
	return nil
}

func (e *Engine) affected(n int64, cond builder.Condition, verb string) {
	switch n {
	case 0:
		e.reporter.Warn(fmt.Sprintf("No records matched '%s'.", cond))
	case 1:
		e.success(fmt.Sprintf("Record %s successfully.", verb))
	default:
		e.success(fmt.Sprintf("%d records %s successfully.", n, verb))
	}
}
