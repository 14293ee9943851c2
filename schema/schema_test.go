package schema

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/satishbabariya/slugstore/query/sqlgen"
)

func newOps(t *testing.T) *Ops {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema_test.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return NewOps(db, "records")
}

func TestEnsureTableTwice(t *testing.T) {
	ctx := context.Background()
	ops := newOps(t)

	res, err := ops.EnsureTable(ctx)
	if err != nil {
		t.Fatalf("first EnsureTable failed: %v", err)
	}
	if res != Applied {
		t.Errorf("first EnsureTable = %s, want applied", res)
	}

	res, err = ops.EnsureTable(ctx)
	if err != nil {
		t.Fatalf("second EnsureTable failed: %v", err)
	}
	if res != Unchanged {
		t.Errorf("second EnsureTable = %s, want unchanged", res)
	}
}

func TestEnsureTableCreatesReservedColumns(t *testing.T) {
	ctx := context.Background()
	ops := newOps(t)
	if _, err := ops.EnsureTable(ctx); err != nil {
		t.Fatalf("EnsureTable failed: %v", err)
	}

	cols := ops.insp.Columns(ctx)
	want := map[string]string{
		sqlgen.ColID:        "INTEGER",
		sqlgen.ColSlug:      "TEXT",
		sqlgen.ColCreatedAt: "TEXT",
		sqlgen.ColUpdatedAt: "TEXT",
	}
	for name, typ := range want {
		if cols[name] != typ {
			t.Errorf("column %s = %q, want %q", name, cols[name], typ)
		}
	}
	if len(cols) != len(want) {
		t.Errorf("got %d columns, want %d: %v", len(cols), len(want), cols)
	}
}

func TestDropTable(t *testing.T) {
	ctx := context.Background()
	ops := newOps(t)

	res, err := ops.DropTable(ctx)
	if err != nil {
		t.Fatalf("DropTable on absent table failed: %v", err)
	}
	if res != Unchanged {
		t.Errorf("DropTable on absent table = %s, want unchanged", res)
	}

	if _, err := ops.EnsureTable(ctx); err != nil {
		t.Fatalf("EnsureTable failed: %v", err)
	}
	res, err = ops.DropTable(ctx)
	if err != nil {
		t.Fatalf("DropTable failed: %v", err)
	}
	if res != Applied {
		t.Errorf("DropTable = %s, want applied", res)
	}
	if ops.insp.TableExists(ctx) {
		t.Error("table still exists after drop")
	}
}

func TestColumnsOnAbsentTable(t *testing.T) {
	ops := newOps(t)
	cols := ops.insp.Columns(context.Background())
	if len(cols) != 0 {
		t.Errorf("absent table has columns: %v", cols)
	}
}

func TestAddColumn(t *testing.T) {
	ctx := context.Background()
	ops := newOps(t)
	if _, err := ops.EnsureTable(ctx); err != nil {
		t.Fatalf("EnsureTable failed: %v", err)
	}

	res, err := ops.AddColumn(ctx, "title", TypeText)
	if err != nil {
		t.Fatalf("AddColumn failed: %v", err)
	}
	if res != Applied {
		t.Errorf("AddColumn = %s, want applied", res)
	}

	res, err = ops.AddColumn(ctx, "title", TypeText)
	if err != nil {
		t.Fatalf("repeated AddColumn failed: %v", err)
	}
	if res != Unchanged {
		t.Errorf("repeated AddColumn = %s, want unchanged", res)
	}

	if typ := ops.insp.Columns(ctx)["title"]; typ != "TEXT" {
		t.Errorf("title declared as %q", typ)
	}
}

func TestAddColumnRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	ops := newOps(t)

	res, err := ops.AddColumn(ctx, "1bad", TypeText)
	if res != Failed || !errors.Is(err, sqlgen.ErrInvalidIdent) {
		t.Errorf("invalid name: res=%s err=%v", res, err)
	}

	res, err = ops.AddColumn(ctx, "_slug", TypeText)
	if res != Failed || !errors.Is(err, sqlgen.ErrInvalidIdent) {
		t.Errorf("reserved name: res=%s err=%v", res, err)
	}

	res, err = ops.AddColumn(ctx, "c", ColumnType("VARCHAR"))
	if res != Failed || !errors.Is(err, ErrBadColumnType) {
		t.Errorf("bad type: res=%s err=%v", res, err)
	}
}

func TestDropColumn(t *testing.T) {
	ctx := context.Background()
	ops := newOps(t)
	if _, err := ops.EnsureTable(ctx); err != nil {
		t.Fatalf("EnsureTable failed: %v", err)
	}

	res, err := ops.DropColumn(ctx, "nope")
	if err != nil {
		t.Fatalf("DropColumn on absent column failed: %v", err)
	}
	if res != Unchanged {
		t.Errorf("DropColumn on absent column = %s, want unchanged", res)
	}

	if _, err := ops.AddColumn(ctx, "tmp", TypeInteger); err != nil {
		t.Fatalf("AddColumn failed: %v", err)
	}
	res, err = ops.DropColumn(ctx, "tmp")
	if err != nil {
		t.Fatalf("DropColumn failed: %v", err)
	}
	if res != Applied {
		t.Errorf("DropColumn = %s, want applied", res)
	}

	// Reserved columns fail the identifier rule and cannot be dropped.
	if _, err := ops.DropColumn(ctx, "_created_at"); !errors.Is(err, sqlgen.ErrInvalidIdent) {
		t.Errorf("dropping reserved column: err=%v", err)
	}
}

func TestEnsureColumns(t *testing.T) {
	ctx := context.Background()
	ops := newOps(t)
	if _, err := ops.EnsureTable(ctx); err != nil {
		t.Fatalf("EnsureTable failed: %v", err)
	}

	want := map[string]ColumnType{
		"title": TypeText,
		"views": TypeInteger,
		"score": TypeReal,
	}
	if err := ops.EnsureColumns(ctx, want); err != nil {
		t.Fatalf("EnsureColumns failed: %v", err)
	}
	// Idempotent.
	if err := ops.EnsureColumns(ctx, want); err != nil {
		t.Fatalf("second EnsureColumns failed: %v", err)
	}

	cols := ops.insp.Columns(ctx)
	for name := range want {
		if _, ok := cols[name]; !ok {
			t.Errorf("column %s missing", name)
		}
	}

	if err := ops.EnsureColumns(ctx, map[string]ColumnType{"bad name": TypeText}); err == nil {
		t.Error("EnsureColumns with invalid name succeeded")
	}
}

func TestColumnExists(t *testing.T) {
	ctx := context.Background()
	ops := newOps(t)
	if _, err := ops.EnsureTable(ctx); err != nil {
		t.Fatalf("EnsureTable failed: %v", err)
	}

	ok, err := ops.insp.ColumnExists(ctx, "_slug")
	if err != nil || !ok {
		t.Errorf("ColumnExists(_slug) = %v, %v", ok, err)
	}
	ok, err = ops.insp.ColumnExists(ctx, "title")
	if err != nil || ok {
		t.Errorf("ColumnExists(title) = %v, %v", ok, err)
	}
	if _, err := ops.insp.ColumnExists(ctx, "no pe"); !errors.Is(err, sqlgen.ErrInvalidIdent) {
		t.Errorf("ColumnExists invalid name err = %v", err)
	}
}

func TestParseColumnType(t *testing.T) {
	for in, want := range map[string]ColumnType{
		"integer": TypeInteger,
		" TEXT ":  TypeText,
		"Real":    TypeReal,
		"BLOB":    TypeBlob,
	} {
		got, err := ParseColumnType(in)
		if err != nil || got != want {
			t.Errorf("ParseColumnType(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseColumnType("VARCHAR(10)"); !errors.Is(err, ErrBadColumnType) {
		t.Errorf("ParseColumnType(VARCHAR) err = %v", err)
	}
}
