// Package store provides a safety-focused accessor for one slug-keyed table
// in an embedded SQLite database. Every user-supplied identifier is
// validated before it reaches SQL text; every value travels as a typed
// parameter; each operation is a single autocommitted statement.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/satishbabariya/slugstore/internal/debug"
	"github.com/satishbabariya/slugstore/query/executor"
	"github.com/satishbabariya/slugstore/query/sqlgen"
	"github.com/satishbabariya/slugstore/schema"
)

// Row is one materialized result row.
type Row = map[string]any

// SelectOptions shapes a Select call; see sqlgen.SelectOptions.
type SelectOptions = sqlgen.SelectOptions

// OrderBy orders a Select by one column.
type OrderBy = sqlgen.OrderBy

// Table is a handle on one slug-keyed table. It owns its connection for its
// lifetime and is not safe for concurrent use without external
// serialization; the engine processes one statement per connection at a
// time. Operations block until the engine responds; callers needing
// timeouts pass a deadline context.
type Table struct {
	db   *sql.DB
	name string
	insp *schema.Inspector
	ops  *schema.Ops
	exec *executor.Executor
}

// Open opens the database file and binds a handle to table. The table name
// must satisfy the identifier rule. Open does not create the table; call
// EnsureTable for that.
func Open(path, table string) (*Table, error) {
	name, err := sqlgen.ValidateIdent(table)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// The handle owns exactly one connection.
	db.SetMaxOpenConns(1)
	insp := schema.NewInspector(db, name)
	debug.Debug("opened", "path", path, "table", name)
	return &Table{
		db:   db,
		name: name,
		insp: insp,
		ops:  schema.NewOps(db, name),
		exec: executor.New(db, insp),
	}, nil
}

// Close releases the underlying connection.
func (t *Table) Close() error {
	return t.db.Close()
}

// Name returns the validated table name.
func (t *Table) Name() string {
	return t.name
}

// Columns returns the live column catalog; empty when the table is absent.
func (t *Table) Columns(ctx context.Context) map[string]string {
	return t.insp.Columns(ctx)
}

// TableExists reports whether the table exists.
func (t *Table) TableExists(ctx context.Context) bool {
	return t.insp.TableExists(ctx)
}

// ColumnExists reports whether name is a column of the table.
func (t *Table) ColumnExists(ctx context.Context, name string) (bool, error) {
	return t.insp.ColumnExists(ctx, name)
}

// EnsureTable creates the table with the reserved columns when absent.
func (t *Table) EnsureTable(ctx context.Context) (schema.Result, error) {
	return t.ops.EnsureTable(ctx)
}

// DropTable removes the table when present.
func (t *Table) DropTable(ctx context.Context) (schema.Result, error) {
	return t.ops.DropTable(ctx)
}

// AddColumn adds a column when absent.
func (t *Table) AddColumn(ctx context.Context, name string, typ schema.ColumnType) (schema.Result, error) {
	return t.ops.AddColumn(ctx, name, typ)
}

// DropColumn removes a column when present.
func (t *Table) DropColumn(ctx context.Context, name string) (schema.Result, error) {
	return t.ops.DropColumn(ctx, name)
}

// EnsureColumns adds every requested column; succeeds only when all of them
// end up present.
func (t *Table) EnsureColumns(ctx context.Context, want map[string]schema.ColumnType) error {
	return t.ops.EnsureColumns(ctx, want)
}

// RowExists reports whether a row with slug exists.
func (t *Table) RowExists(ctx context.Context, slug string) (bool, error) {
	if slug == "" {
		return false, ErrEmptySlug
	}
	rows, err := t.exec.Query(ctx, sqlgen.BuildExists(t.name, slug))
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// RowUpsert inserts or updates the row identified by slug. Every payload key
// must pass the identifier rule and name a column present in the live
// catalog; otherwise no write happens at all. _created_at keeps its
// first-insert value, _updated_at is set on every call.
func (t *Table) RowUpsert(ctx context.Context, slug string, payload map[string]any) error {
	if slug == "" {
		return ErrEmptySlug
	}
	catalog := t.insp.Columns(ctx)

	// Sorted keys give the statement a stable shape across calls.
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cols := make([]string, 0, len(keys))
	vals := make([]any, 0, len(keys))
	for _, k := range keys {
		name, err := sqlgen.ValidateIdent(k)
		if err != nil {
			return err
		}
		if _, ok := catalog[name]; !ok {
			continue
		}
		cols = append(cols, name)
		vals = append(vals, payload[k])
	}
	if len(cols) != len(payload) {
		return fmt.Errorf("%w: table %s", ErrUnknownColumn, t.name)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	q := sqlgen.BuildUpsert(t.name, slug, cols, vals, now)
	if _, err := t.exec.Exec(ctx, q); err != nil {
		return fmt.Errorf("upsert %q: %w", slug, err)
	}
	return nil
}

// RowRemove deletes the row identified by slug; reports whether a row was
// actually deleted.
func (t *Table) RowRemove(ctx context.Context, slug string) (bool, error) {
	if slug == "" {
		return false, ErrEmptySlug
	}
	n, err := t.exec.Exec(ctx, sqlgen.BuildDelete(t.name, slug))
	if err != nil {
		return false, fmt.Errorf("remove %q: %w", slug, err)
	}
	return n > 0, nil
}

// Select runs a filtered read and materializes the full result set before
// returning.
func (t *Table) Select(ctx context.Context, opts SelectOptions) ([]Row, error) {
	q, err := sqlgen.BuildSelect(t.name, opts)
	if err != nil {
		return nil, err
	}
	return t.exec.Query(ctx, q)
}
