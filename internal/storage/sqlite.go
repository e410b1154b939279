// Package storage is the only component that talks to the SQLite data file.
//
// Build modes:
//   - Default (CGO_ENABLED=0): pure Go modernc.org/sqlite
//   - CGO mode (-tags cgo_sqlite): mattn/go-sqlite3
//
// Callers hand it rendered statements and get rows back; writes run as one
// transaction per statement and are rolled back when the engine rejects them.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mesabjorn/anything-db/internal/domain/data"
	"github.com/mesabjorn/anything-db/internal/domain/errors"
	"github.com/mesabjorn/anything-db/internal/domain/schema"
	"github.com/mesabjorn/anything-db/internal/query/builder"
)

// DB is a single SQLite connection opened for the process lifetime
type DB struct {
	conn   *sql.DB
	path   string
	logger *slog.Logger
}

// Open opens (creating if needed) the SQLite file at path
func Open(ctx context.Context, path string, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// one thread of control, one connection
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	logger.Debug("database opened", "path", path, "driver", driverName, "driver_type", driverType)
	return &DB{conn: conn, path: path, logger: logger}, nil
}

// Close closes the connection. It must be called exactly once.
func (db *DB) Close() error {
	db.logger.Debug("database closed", "path", db.path)
	return db.conn.Close()
}

// Exec runs a write statement in its own transaction and returns the affected row count
func (db *DB) Exec(ctx context.Context, stmt builder.Statement) (int64, error) {
	db.logger.Debug("exec", "sql", stmt.SQL, "args", stmt.Args)

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, classify(stmt, err)
	}

	res, err := tx.ExecContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			db.logger.Error("rollback failed", "error", rbErr)
		}
		return 0, classify(stmt, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, classify(stmt, err)
	}

	return rowsAffected(stmt, res)
}

// rowsAffected reads the count of an already committed write
func rowsAffected(stmt builder.Statement, res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &errors.EngineError{SQL: stmt.SQL, Err: fmt.Errorf("rows affected: %w", err)}
	}
	return n, nil
}

// Query runs a read statement and materializes every row
func (db *DB) Query(ctx context.Context, stmt builder.Statement) (*data.Result, error) {
	db.logger.Debug("query", "sql", stmt.SQL, "args", stmt.Args)

	rows, err := db.conn.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, classify(stmt, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, classify(stmt, err)
	}

	result := &data.Result{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, classify(stmt, err)
		}
		result.Rows = append(result.Rows, data.Row(values))
	}
	if err := rows.Err(); err != nil {
		return nil, classify(stmt, err)
	}
	return result, nil
}

// Tables lists user tables in creation order
func (db *DB) Tables(ctx context.Context) ([]string, error) {
	res, err := db.Query(ctx, builder.ListTables())
	if err != nil {
		return nil, err
	}
	tables := make([]string, 0, res.Len())
	for _, row := range res.Rows {
		tables = append(tables, asString(row[0]))
	}
	return tables, nil
}

// TableInfo introspects the columns of table in declaration order
func (db *DB) TableInfo(ctx context.Context, table string) ([]schema.ColumnInfo, error) {
	stmt := builder.TableInfo(table)
	rows, err := db.conn.QueryContext(ctx, stmt.SQL)
	if err != nil {
		return nil, classify(stmt, err)
	}
	defer rows.Close()

	var infos []schema.ColumnInfo
	for rows.Next() {
		var (
			info    schema.ColumnInfo
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&info.Position, &info.Name, &info.Type, &notNull, &dflt, &pk); err != nil {
			return nil, classify(stmt, err)
		}
		info.NotNull = notNull != 0
		info.PrimaryKey = pk != 0
		if dflt.Valid {
			d := dflt.String
			info.Default = &d
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(stmt, err)
	}
	return infos, nil
}

// Schema introspects table and builds a fresh schema. A table without
// columns does not exist.
func (db *DB) Schema(ctx context.Context, table string) (*schema.Schema, error) {
	infos, err := db.TableInfo(ctx, table)
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		return nil, &errors.TableNotFoundError{TableName: table}
	}
	return schema.New(table, infos), nil
}

func classify(stmt builder.Statement, err error) error {
	if isConstraintError(err) {
		return &errors.IntegrityError{Op: statementVerb(stmt.SQL), Err: err}
	}
	return &errors.EngineError{SQL: stmt.SQL, Err: err}
}

func statementVerb(sqlText string) string {
	verb, _, _ := strings.Cut(strings.TrimSpace(sqlText), " ")
	return strings.ToUpper(verb)
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprint(v)
	}
}

// Info describes the compiled-in SQLite driver
type Info struct {
	DriverName string `json:"driver_name"`
	DriverType string `json:"driver_type"`
	IsCGO      bool   `json:"is_cgo"`
	Package    string `json:"package"`
}

// GetInfo returns information about the current SQLite configuration
func GetInfo() Info {
	return Info{
		DriverName: driverName,
		DriverType: driverType,
		IsCGO:      driverType == "cgo",
		Package:    driverPackage,
	}
}
