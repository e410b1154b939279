package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	domainerrors "github.com/mesabjorn/anything-db/internal/domain/errors"
	"github.com/mesabjorn/anything-db/internal/domain/schema"
	"github.com/mesabjorn/anything-db/internal/query/builder"
	"github.com/mesabjorn/anything-db/internal/query/projection"
	"gotest.tools/v3/assert"
)

// openTestDB opens a fresh SQLite file in a temp directory
func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"), nil)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// mustBuild unwraps a builder result, failing t on error
func mustBuild(t *testing.T) func(builder.Statement, error) builder.Statement {
	return func(stmt builder.Statement, err error) builder.Statement {
		t.Helper()
		assert.NilError(t, err)
		return stmt
	}
}

func mustExec(t *testing.T, db *DB, stmt builder.Statement) {
	t.Helper()
	if _, err := db.Exec(context.Background(), stmt); err != nil {
		t.Fatalf("exec %q: %v", stmt.SQL, err)
	}
}

func createPeople(t *testing.T, db *DB) {
	t.Helper()
	defs := []schema.ColumnDef{
		{Name: "name", Type: "text", NotNull: true},
		{Name: "age", Type: "integer"},
	}
	mustExec(t, db, builder.CreateTable("people", defs, false))
	for _, p := range [][2]string{{"Alice", "7"}, {"Bob", "17"}, {"Grace", "70"}} {
		var m schema.ValueMapping
		m.Set("name", schema.RawValue(p[0]))
		m.Set("age", schema.RawValue(p[1]))
		mustExec(t, db, mustBuild(t)(builder.Insert("people", m)))
	}
}

func TestDriverInfo(t *testing.T) {
	info := GetInfo()
	assert.Assert(t, info.DriverName != "")
	assert.Assert(t, info.Package != "")
	assert.Equal(t, info.IsCGO, info.DriverType == "cgo")
}

func TestCreateAndIntrospectRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	title, err := schema.ParseColumnDef("title", "text nn")
	assert.NilError(t, err)
	year, err := schema.ParseColumnDef("year", "integer")
	assert.NilError(t, err)
	mustExec(t, db, builder.CreateTable("books", []schema.ColumnDef{title, year}, true))

	sch, err := db.Schema(ctx, "books")
	assert.NilError(t, err)
	assert.DeepEqual(t, sch.Names(), []string{"title", "year", "updated", "id"})

	c, _ := sch.Lookup("title")
	assert.Assert(t, c.NotNull)
	c, _ = sch.Lookup("year")
	assert.Assert(t, !c.NotNull)
	c, _ = sch.Lookup("id")
	assert.Assert(t, c.PrimaryKey)
	assert.Assert(t, !c.Visible)
	c, _ = sch.Lookup("updated")
	assert.Assert(t, !c.Visible)
	assert.Assert(t, c.Default != nil)
	assert.Equal(t, *c.Default, "CURRENT_TIMESTAMP")

	assert.Equal(t, len(sch.Visible()), 2)
}

func TestTablesSkipsInternalTables(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	mustExec(t, db, builder.CreateTable("users", nil, false))
	mustExec(t, db, builder.CreateTable("orders", nil, false))

	tables, err := db.Tables(ctx)
	assert.NilError(t, err)
	assert.DeepEqual(t, tables, []string{"users", "orders"})
}

func TestSchemaOfMissingTable(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Schema(context.Background(), "ghost")
	var notFound *domainerrors.TableNotFoundError
	assert.Assert(t, errors.As(err, &notFound))
}

func TestSearchStrategies(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	createPeople(t, db)

	t.Run("TextSubstringIgnoresCase", func(t *testing.T) {
		res, err := db.Query(ctx, mustBuild(t)(builder.Search("people", "name", projection.Project("text"), "LIC")))
		assert.NilError(t, err)
		assert.Equal(t, res.Len(), 1)
		v, _ := res.Value(0, "name")
		assert.Equal(t, v, any("Alice"))

		res, err = db.Query(ctx, mustBuild(t)(builder.Search("people", "name", projection.Project("TEXT"), "ace")))
		assert.NilError(t, err)
		assert.Equal(t, res.Len(), 1)
		v, _ = res.Value(0, "name")
		assert.Equal(t, v, any("Grace"))
	})

	t.Run("IntegerExactOnly", func(t *testing.T) {
		res, err := db.Query(ctx, mustBuild(t)(builder.Search("people", "age", projection.Project("integer"), "7")))
		assert.NilError(t, err)
		assert.Equal(t, res.Len(), 1)
		v, _ := res.Value(0, "name")
		assert.Equal(t, v, any("Alice"))
	})
}

func TestExecReportsIntegrityError(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	createPeople(t, db)

	var m schema.ValueMapping
	m.Set("age", "30")
	_, err := db.Exec(ctx, mustBuild(t)(builder.Insert("people", m)))

	var integrity *domainerrors.IntegrityError
	assert.Assert(t, errors.As(err, &integrity))
	assert.Equal(t, integrity.Op, "INSERT")
	assert.Assert(t, errors.Is(err, domainerrors.ErrIntegrity))

	res, err := db.Query(ctx, builder.SelectAll("people", 0))
	assert.NilError(t, err)
	assert.Equal(t, res.Len(), 3, "failed insert must not leave rows behind")
}

func TestEngineErrors(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	createPeople(t, db)

	_, err := db.Exec(ctx, mustBuild(t)(builder.Insert("people", schema.ValueMapping{})))
	assert.Assert(t, errors.Is(err, domainerrors.ErrEngine))

	_, err = db.Query(ctx, mustBuild(t)(builder.Search("ghost", "name", projection.Project("integer"), "1")))
	assert.Assert(t, errors.Is(err, domainerrors.ErrEngine))

	// a name that differs only in case is the same table
	_, err = db.Exec(ctx, builder.CreateTable("People", nil, false))
	assert.Assert(t, errors.Is(err, domainerrors.ErrEngine))
	assert.ErrorContains(t, err, "already exists")
}

type brokenResult struct{}

func (brokenResult) LastInsertId() (int64, error) { return 0, nil }
func (brokenResult) RowsAffected() (int64, error) { return 0, errors.New("driver lost count") }

func TestRowsAffectedErrorIsReported(t *testing.T) {
	stmt := builder.Statement{SQL: `DELETE FROM "people"`}

	_, err := rowsAffected(stmt, brokenResult{})
	assert.Assert(t, errors.Is(err, domainerrors.ErrEngine))
	assert.ErrorContains(t, err, "driver lost count")

	var engineErr *domainerrors.EngineError
	assert.Assert(t, errors.As(err, &engineErr))
	assert.Equal(t, engineErr.SQL, stmt.SQL)
}

func TestIntegerConditionMatchesCoercedValue(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	createPeople(t, db)

	cond, err := builder.ParseCondition("age=17")
	assert.NilError(t, err)
	stmt := mustBuild(t)(builder.DeleteWhere("people", cond.Bind(projection.Project("integer"))))
	assert.DeepEqual(t, stmt.Args, []any{int64(17)})

	n, err := db.Exec(ctx, stmt)
	assert.NilError(t, err)
	assert.Equal(t, n, int64(1))
}

func TestUpdateAndDeleteAffectRows(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	createPeople(t, db)

	var m schema.ValueMapping
	m.Set("name", "Bobby")
	stmt, err := builder.Update("people", "name=Bob", m)
	assert.NilError(t, err)
	n, err := db.Exec(ctx, stmt)
	assert.NilError(t, err)
	assert.Equal(t, n, int64(1))

	stmt, err = builder.Delete("people", "age=70")
	assert.NilError(t, err)
	n, err = db.Exec(ctx, stmt)
	assert.NilError(t, err)
	assert.Equal(t, n, int64(1))

	res, err := db.Query(ctx, builder.SelectAll("people", 0))
	assert.NilError(t, err)
	assert.Equal(t, res.Len(), 2)
	v, _ := res.Value(1, "name")
	assert.Equal(t, v, any("Bobby"))
}
