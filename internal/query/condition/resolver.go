// Package condition interactively narrows an update or delete to the rows
// matching a single column=value condition.
package condition

import (
	"context"
	"fmt"
	"strings"

	"github.com/mesabjorn/anything-db/internal/console"
	"github.com/mesabjorn/anything-db/internal/domain/data"
	"github.com/mesabjorn/anything-db/internal/domain/errors"
	"github.com/mesabjorn/anything-db/internal/domain/schema"
	"github.com/mesabjorn/anything-db/internal/query/builder"
	"github.com/mesabjorn/anything-db/internal/query/projection"
)

const (
	modePrompt      = `How would you like to select ("direct", "list", "search", "cancel") `
	searchPrompt    = "Query: (format column=contents; e.g 'title=Asterix'): "
	conditionPrompt = "Enter condition (e.g., id=1): "
)

// Mode is a way of arriving at the final condition
type Mode string

const (
	ModeDirect Mode = "direct"
	ModeList   Mode = "list"
	ModeSearch Mode = "search"
	ModeCancel Mode = "cancel"
)

// Querier runs read statements
type Querier interface {
	Query(ctx context.Context, stmt builder.Statement) (*data.Result, error)
}

// Viewer displays rows to the operator
type Viewer interface {
	ShowRows(res *data.Result, sch *schema.Schema)
}

// Resolver drives the mode selection and condition prompts
type Resolver struct {
	prompter console.Prompter
	reporter console.Reporter
	querier  Querier
	viewer   Viewer
}

func NewResolver(p console.Prompter, r console.Reporter, q Querier, v Viewer) *Resolver {
	return &Resolver{prompter: p, reporter: r, querier: q, viewer: v}
}

// Resolve asks how to pick rows in sch's table and returns the final condition.
// ok is false when the operator cancelled or left the condition empty.
// err only carries prompter failures (EOF, interrupt).
func (res *Resolver) Resolve(ctx context.Context, sch *schema.Schema) (cond builder.Condition, ok bool, err error) {
	mode, err := res.askMode()
	if err != nil {
		return builder.Condition{}, false, err
	}

	switch mode {
	case ModeCancel:
		return builder.Condition{}, false, nil
	case ModeList:
		res.list(ctx, sch)
	case ModeSearch:
		if err := res.search(ctx, sch); err != nil {
			return builder.Condition{}, false, err
		}
	}

	return res.askCondition(sch)
}

func (res *Resolver) askMode() (Mode, error) {
	for {
		answer, err := res.prompter.Prompt(modePrompt)
		if err != nil {
			return "", err
		}
		switch m := Mode(strings.ToLower(strings.TrimSpace(answer))); m {
		case ModeDirect, ModeList, ModeSearch, ModeCancel:
			return m, nil
		}
		res.reporter.Warn(fmt.Sprintf("Unknown selection mode %q.", strings.TrimSpace(answer)))
	}
}

func (res *Resolver) list(ctx context.Context, sch *schema.Schema) {
	rows, err := res.querier.Query(ctx, builder.SelectAll(sch.TableName, 0))
	if err != nil {
		res.reporter.Warn(err.Error())
		return
	}
	res.viewer.ShowRows(rows, sch)
}

// search runs column=value lookups until the operator enters an empty line
func (res *Resolver) search(ctx context.Context, sch *schema.Schema) error {
	for {
		line, err := res.prompter.Prompt(searchPrompt)
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return nil
		}

		cond, err := builder.ParseCondition(line)
		if err != nil {
			res.reporter.Warn(err.Error())
			continue
		}
		col, found := sch.Lookup(cond.Column)
		if !found {
			res.reporter.Warn((&errors.ColumnNotFoundError{TableName: sch.TableName, ColumnName: cond.Column}).Error())
			continue
		}

		stmt, err := builder.Search(sch.TableName, col.Name, projection.ForColumn(*col), cond.Value)
		if err != nil {
			res.reporter.Warn(err.Error())
			continue
		}
		rows, err := res.querier.Query(ctx, stmt)
		if err != nil {
			res.reporter.Warn(err.Error())
			rows = &data.Result{}
		}
		res.viewer.ShowRows(rows, sch)
	}
}

func (res *Resolver) askCondition(sch *schema.Schema) (builder.Condition, bool, error) {
	for {
		line, err := res.prompter.Prompt(conditionPrompt)
		if err != nil {
			return builder.Condition{}, false, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return builder.Condition{}, false, nil
		}

		cond, err := builder.ParseCondition(line)
		if err != nil {
			res.reporter.Warn(err.Error())
			continue
		}
		col, found := sch.Lookup(cond.Column)
		if !found {
			res.reporter.Warn((&errors.ColumnNotFoundError{TableName: sch.TableName, ColumnName: cond.Column}).Error())
			continue
		}
		return cond.Bind(projection.ForColumn(*col)), true, nil
	}
}
