// Package schema inspects and alters the column catalog of a slug-keyed
// table. The catalog is never cached: every lookup issues a fresh metadata
// query, so schema changes made elsewhere become visible on the next call.
package schema

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/satishbabariya/slugstore/internal/debug"
	"github.com/satishbabariya/slugstore/query/sqlgen"
)

// ErrBadColumnType marks a column declaration outside the accepted set.
var ErrBadColumnType = errors.New("column type must be INTEGER, REAL, BLOB or TEXT")

// ColumnType is a declared column type accepted at column creation.
type ColumnType string

const (
	TypeInteger ColumnType = "INTEGER"
	TypeReal    ColumnType = "REAL"
	TypeBlob    ColumnType = "BLOB"
	TypeText    ColumnType = "TEXT"
)

// ParseColumnType normalizes s into one of the accepted column types.
func ParseColumnType(s string) (ColumnType, error) {
	switch ColumnType(strings.ToUpper(strings.TrimSpace(s))) {
	case TypeInteger:
		return TypeInteger, nil
	case TypeReal:
		return TypeReal, nil
	case TypeBlob:
		return TypeBlob, nil
	case TypeText:
		return TypeText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrBadColumnType, s)
	}
}

// Result reports the outcome of a schema operation.
type Result int

const (
	// Applied means the DDL ran and changed the schema.
	Applied Result = iota
	// Unchanged means the schema was already in the requested state.
	Unchanged
	// Failed means the operation was rejected before or by the engine.
	Failed
)

func (r Result) String() string {
	switch r {
	case Applied:
		return "applied"
	case Unchanged:
		return "unchanged"
	default:
		return "failed"
	}
}

// Inspector reads the live catalog for one table.
type Inspector struct {
	db    *sql.DB
	table string
}

// NewInspector returns an inspector bound to table. The table name must
// already have passed the identifier rule.
func NewInspector(db *sql.DB, table string) *Inspector {
	return &Inspector{db: db, table: table}
}

// Columns returns the current column-name to declared-type mapping. A failed
// metadata query returns an empty map, not an error: "no columns" and "table
// absent" are the same observable state, and callers reduce both to "does
// not exist".
func (i *Inspector) Columns(ctx context.Context) map[string]string {
	rows, err := i.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", i.table))
	if err != nil {
		debug.Debug("table_info failed", "table", i.table, "err", err)
		return map[string]string{}
	}
	defer rows.Close()

	cols := make(map[string]string)
	for rows.Next() {
		var (
			cid     int
			name    string
			decl    string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &decl, &notNull, &dflt, &pk); err != nil {
			debug.Debug("table_info scan failed", "table", i.table, "err", err)
			return map[string]string{}
		}
		cols[name] = strings.ToUpper(decl)
	}
	if err := rows.Err(); err != nil {
		debug.Debug("table_info cursor failed", "table", i.table, "err", err)
		return map[string]string{}
	}
	return cols
}

// TableExists reports whether the table has any columns.
func (i *Inspector) TableExists(ctx context.Context) bool {
	return len(i.Columns(ctx)) > 0
}

// ColumnExists reports whether name is a column of the table. Reserved
// column names are admitted alongside ordinary identifiers.
func (i *Inspector) ColumnExists(ctx context.Context, name string) (bool, error) {
	col, err := sqlgen.ValidateReadIdent(name)
	if err != nil {
		return false, err
	}
	_, ok := i.Columns(ctx)[col]
	return ok, nil
}

// Ops applies DDL to one table.
type Ops struct {
	db    *sql.DB
	table string
	insp  *Inspector
}

// NewOps returns a DDL runner bound to table. The table name must already
// have passed the identifier rule.
func NewOps(db *sql.DB, table string) *Ops {
	return &Ops{db: db, table: table, insp: NewInspector(db, table)}
}

// EnsureTable creates the table with the reserved columns when it does not
// exist yet.
func (o *Ops) EnsureTable(ctx context.Context) (Result, error) {
	if o.insp.TableExists(ctx) {
		return Unchanged, nil
	}
	ddl := fmt.Sprintf(
		"CREATE TABLE %s (%s INTEGER PRIMARY KEY AUTOINCREMENT, %s TEXT NOT NULL UNIQUE, %s TEXT NOT NULL, %s TEXT NOT NULL)",
		o.table, sqlgen.ColID, sqlgen.ColSlug, sqlgen.ColCreatedAt, sqlgen.ColUpdatedAt,
	)
	debug.Debug("ddl", "sql", ddl)
	if _, err := o.db.ExecContext(ctx, ddl); err != nil {
		return Failed, fmt.Errorf("create table %s: %w", o.table, err)
	}
	return Applied, nil
}

// DropTable removes the table when it exists.
func (o *Ops) DropTable(ctx context.Context) (Result, error) {
	if !o.insp.TableExists(ctx) {
		return Unchanged, nil
	}
	ddl := "DROP TABLE " + o.table
	debug.Debug("ddl", "sql", ddl)
	if _, err := o.db.ExecContext(ctx, ddl); err != nil {
		return Failed, fmt.Errorf("drop table %s: %w", o.table, err)
	}
	return Applied, nil
}

// AddColumn adds a column when it does not exist yet. The name must pass the
// strict identifier rule (reserved names cannot be re-added) and the type
// must be one of the accepted declarations.
func (o *Ops) AddColumn(ctx context.Context, name string, typ ColumnType) (Result, error) {
	col, err := sqlgen.ValidateIdent(name)
	if err != nil {
		return Failed, err
	}
	ct, err := ParseColumnType(string(typ))
	if err != nil {
		return Failed, err
	}
	if _, ok := o.insp.Columns(ctx)[col]; ok {
		return Unchanged, nil
	}
	ddl := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", o.table, col, ct)
	debug.Debug("ddl", "sql", ddl)
	if _, err := o.db.ExecContext(ctx, ddl); err != nil {
		return Failed, fmt.Errorf("add column %s.%s: %w", o.table, col, err)
	}
	return Applied, nil
}

// DropColumn removes a column when it exists. Reserved columns fail the
// identifier rule and so cannot be dropped.
func (o *Ops) DropColumn(ctx context.Context, name string) (Result, error) {
	col, err := sqlgen.ValidateIdent(name)
	if err != nil {
		return Failed, err
	}
	if _, ok := o.insp.Columns(ctx)[col]; !ok {
		return Unchanged, nil
	}
	ddl := fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", o.table, col)
	debug.Debug("ddl", "sql", ddl)
	if _, err := o.db.ExecContext(ctx, ddl); err != nil {
		return Failed, fmt.Errorf("drop column %s.%s: %w", o.table, col, err)
	}
	return Applied, nil
}

// EnsureColumns adds every requested column, then verifies against a fresh
// catalog that all of them are present. Succeeds only when every requested
// column ends up in the table.
func (o *Ops) EnsureColumns(ctx context.Context, want map[string]ColumnType) error {
	for name, typ := range want {
		if _, err := o.AddColumn(ctx, name, typ); err != nil {
			return err
		}
	}
	cols := o.insp.Columns(ctx)
	for name := range want {
		if _, ok := cols[name]; !ok {
			return fmt.Errorf("column %s.%s missing after ensure", o.table, name)
		}
	}
	return nil
}
