package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mesabjorn/anything-db/internal/console"
	"github.com/mesabjorn/anything-db/internal/domain/data"
	domainerrors "github.com/mesabjorn/anything-db/internal/domain/errors"
	"github.com/mesabjorn/anything-db/internal/domain/schema"
	"github.com/mesabjorn/anything-db/internal/domain/transaction"
	"github.com/mesabjorn/anything-db/internal/query/builder"
	"github.com/mesabjorn/anything-db/internal/query/condition"
	"github.com/mesabjorn/anything-db/internal/render"
)

// DefaultPreviewRows is how many rows Read shows when no limit is configured
const DefaultPreviewRows = 10

// Store is the storage surface the engine needs
type Store interface {
	Tables(ctx context.Context) ([]string, error)
	Exec(ctx context.Context, stmt builder.Statement) (int64, error)
	Query(ctx context.Context, stmt builder.Statement) (*data.Result, error)
	Schema(ctx context.Context, table string) (*schema.Schema, error)
}

// Options tunes an Engine
type Options struct {
	PreviewRows int              // rows shown by Read; <= 0 uses DefaultPreviewRows
	Now         func() time.Time // clock for change-tracking stamps; nil uses time.Now
	Logger      *slog.Logger     // nil disables the logging observer
}

// Engine is the main entry point for the table manager operations.
// Every operation returns an error only when the session must end
// (input closed or interrupted); everything else is reported and the
// operation abandoned.
type Engine struct {
	store       Store
	prompter    console.Prompter
	reporter    console.Reporter
	out         io.Writer
	previewRows int
	now         func() time.Time
	resolver    *condition.Resolver
	observers   []Observer // Observers for lifecycle events
}

// New creates a new Engine instance
func New(store Store, p console.Prompter, r console.Reporter, out io.Writer, opts Options) *Engine {
	e := &Engine{
		store:       store,
		prompter:    p,
		reporter:    r,
		out:         out,
		previewRows: opts.PreviewRows,
		now:         opts.Now,
		observers:   make([]Observer, 0),
	}
	if e.previewRows <= 0 {
		e.previewRows = DefaultPreviewRows
	}
	if e.now == nil {
		e.now = time.Now
	}
	e.resolver = condition.NewResolver(p, r, store, e)
	if opts.Logger != nil {
		e.AddObserver(NewLoggingObserver(opts.Logger))
	}
	return e
}

// ShowRows implements condition.Viewer
func (e *Engine) ShowRows(res *data.Result, sch *schema.Schema) {
	render.Summary(e.out, res, sch, e.previewRows)
}

// AddObserver registers an observer to receive lifecycle events
func (e *Engine) AddObserver(observer Observer) {
	e.observers = append(e.observers, observer)
}

// RemoveObserver unregisters an observer
func (e *Engine) RemoveObserver(observer Observer) {
	for i, o := range e.observers {
		if o == observer {
			e.observers = append(e.observers[:i], e.observers[i+1:]...)
			return
		}
	}
}

// notify sends an event to all registered observers
func (e *Engine) notify(event Event) {
	event.Timestamp = time.Now()
	for _, observer := range e.observers {
		observer.OnEvent(event)
	}
}

// begin starts the tracing context of one operation
func (e *Engine) begin(op transaction.ChangeType) *transaction.Transaction {
	tx := transaction.NewTransaction(op)
	e.notify(Event{Type: EventOpStart, TxID: tx.ID, Data: map[string]interface{}{
		"op":  string(op),
		"seq": tx.Seq,
	}})
	return tx
}

// finish closes tx and emits the matching end event
func (e *Engine) finish(tx *transaction.Transaction) {
	d := tx.Close()
	e.notify(Event{Type: EventOpEnd, TxID: tx.ID, Data: map[string]interface{}{
		"op":            string(tx.Type),
		"table":         tx.Table,
		"statements":    len(tx.Changes),
		"rows_affected": tx.RowsAffected(),
		"duration":      d.String(),
	}})
}

func (e *Engine) abort(tx *transaction.Transaction, reason string) {
	e.notify(Event{Type: EventOpAborted, TxID: tx.ID, Data: reason})
}

func (e *Engine) statement(tx *transaction.Transaction, stmt builder.Statement) {
	e.notify(Event{Type: EventStatement, TxID: tx.ID, Data: map[string]interface{}{
		"sql":  stmt.SQL,
		"args": stmt.Args,
	}})
}

// exec runs one write statement inside tx. Integrity errors are tagged with the table.
func (e *Engine) exec(ctx context.Context, tx *transaction.Transaction, stmt builder.Statement) (int64, error) {
	e.statement(tx, stmt)
	n, err := e.store.Exec(ctx, stmt)
	if err != nil {
		var integrity *domainerrors.IntegrityError
		if errors.As(err, &integrity) && integrity.Table == "" {
			integrity.Table = tx.Table
		}
		e.notify(Event{Type: EventOpFailed, TxID: tx.ID, Data: err.Error()})
		return 0, err
	}
	tx.Record(transaction.Change{Type: tx.Type, Table: tx.Table, SQL: stmt.SQL, RowsAffected: n})
	e.notify(Event{Type: EventExecEnd, TxID: tx.ID, Data: map[string]interface{}{
		"rows_affected": n,
	}})
	return n, nil
}

// query runs one read statement inside tx
func (e *Engine) query(ctx context.Context, tx *transaction.Transaction, stmt builder.Statement) (*data.Result, error) {
	e.statement(tx, stmt)
	res, err := e.store.Query(ctx, stmt)
	if err != nil {
		e.notify(Event{Type: EventOpFailed, TxID: tx.ID, Data: err.Error()})
		return nil, err
	}
	e.notify(Event{Type: EventExecEnd, TxID: tx.ID, Data: map[string]interface{}{
		"rows_returned": res.Len(),
	}})
	return res, nil
}

// report routes a recoverable failure to the operator.
// Engine errors are warnings; everything else is an error.
func (e *Engine) report(err error) {
	if errors.Is(err, domainerrors.ErrEngine) {
		e.reporter.Warn(err.Error())
		return
	}
	e.reporter.Error(err.Error())
}

// fatal separates session-ending failures from reportable ones
func (e *Engine) fatal(err error) error {
	if err == nil {
		return nil
	}
	if domainerrors.IsRecoverable(err) {
		e.report(err)
		return nil
	}
	return err
}

func (e *Engine) success(msg string) {
	fmt.Fprintln(e.out, console.SuccessStyle.Render(msg))
}
