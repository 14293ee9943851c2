// Package executor prepares and runs parameterized statements with
// schema-driven bind typing.
package executor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/satishbabariya/slugstore/internal/debug"
	"github.com/satishbabariya/slugstore/query/sqlgen"
	"github.com/satishbabariya/slugstore/schema"
)

// ErrBindMismatch means the number of successfully bound values does not
// match the statement's binding list without any individual bind having
// failed. That is a bookkeeping defect between compiler and executor, not a
// transient condition.
var ErrBindMismatch = errors.New("binding count mismatch")

// Executor runs one statement at a time: prepare, bind all-or-abort,
// execute. It holds no state across calls; the catalog is re-read for every
// statement so bind kinds always reflect the live schema.
type Executor struct {
	db   *sql.DB
	insp *schema.Inspector
}

// New returns an executor over db using insp for bind-type decisions.
func New(db *sql.DB, insp *schema.Inspector) *Executor {
	return &Executor{db: db, insp: insp}
}

// bindAll maps every binding through the current catalog. Every binding is
// attempted even after a failure so the success count is meaningful; the
// statement may only run when that count equals the input count.
func (e *Executor) bindAll(ctx context.Context, bindings []sqlgen.Binding) ([]any, error) {
	catalog := e.insp.Columns(ctx)
	args := make([]any, 0, len(bindings))
	var firstErr error
	bound := 0
	for _, b := range bindings {
		kind := KindFor(catalog[b.Column], b.Value)
		v, err := Coerce(b.Value, kind)
		if err != nil {
			debug.Debug("bind failed", "placeholder", b.Placeholder, "column", b.Column, "kind", kind.String(), "err", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("bind :%s (%s as %s): %w", b.Placeholder, b.Column, kind, err)
			}
			continue
		}
		args = append(args, sql.Named(b.Placeholder, v))
		bound++
	}
	if bound != len(bindings) {
		if firstErr != nil {
			return nil, firstErr
		}
		return nil, fmt.Errorf("%w: bound %d of %d", ErrBindMismatch, bound, len(bindings))
	}
	return args, nil
}

// Query prepares q, binds every value, executes and materializes the full
// result set. The cursor is always drained and closed before returning.
func (e *Executor) Query(ctx context.Context, q *sqlgen.Query) ([]map[string]any, error) {
	args, err := e.bindAll(ctx, q.Bindings)
	if err != nil {
		return nil, err
	}
	debug.Debug("query", "sql", q.SQL, "bindings", len(args))
	stmt, err := e.db.PrepareContext(ctx, q.SQL)
	if err != nil {
		return nil, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()
	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("execute: %w", err)
	}
	defer rows.Close()
	return materialize(rows)
}

// Exec is Query for statements without a result set. Returns the affected
// row count.
func (e *Executor) Exec(ctx context.Context, q *sqlgen.Query) (int64, error) {
	args, err := e.bindAll(ctx, q.Bindings)
	if err != nil {
		return 0, err
	}
	debug.Debug("exec", "sql", q.SQL, "bindings", len(args))
	stmt, err := e.db.PrepareContext(ctx, q.SQL)
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()
	res, err := stmt.ExecContext(ctx, args...)
	if err != nil {
		return 0, fmt.Errorf("execute: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}

// materialize drains the cursor into ordered rows. Values keep the driver's
// Go types (int64, float64, nil for NULL) except that text arriving as
// []byte is converted to string; only BLOB-declared columns stay []byte.
func materialize(rows *sql.Rows) ([]map[string]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("column types: %w", err)
	}
	blob := make([]bool, len(cols))
	for i, ct := range types {
		blob[i] = strings.EqualFold(ct.DatabaseTypeName(), "BLOB")
	}
	var out []map[string]any
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		row := make(map[string]any, len(cols))
		for i, c := range cols {
			if b, ok := vals[i].([]byte); ok && !blob[i] {
				row[c] = string(b)
				continue
			}
			row[c] = vals[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cursor: %w", err)
	}
	return out, nil
}
