// Package sqlgen builds parameterized SQL statements for a slug-keyed
// table. Every identifier reaching SQL text has passed the identifier rule;
// every value travels as a named parameter.
package sqlgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/satishbabariya/slugstore/filter"
)

// ErrNegativeRange marks a SELECT with a negative limit or offset.
var ErrNegativeRange = errors.New("limit and offset must be non-negative")

// Query is a SQL statement plus the ordered bindings for its placeholders.
type Query struct {
	SQL      string
	Bindings []Binding
}

// OrderBy orders a SELECT by one column.
type OrderBy struct {
	Column string
	Desc   bool
}

// SelectOptions shapes a SELECT statement. A nil Filter omits the WHERE
// clause, an empty Columns list selects *, nil Limit/Offset omit those
// clauses.
type SelectOptions struct {
	Columns  []string
	Filter   filter.Node
	OrderBy  []OrderBy
	Limit    *int
	Offset   *int
	Distinct bool
}

// BuildExists builds the probe for one slug. LIMIT 1: the caller only needs
// row presence.
func BuildExists(table, slug string) *Query {
	return &Query{
		SQL: fmt.Sprintf("SELECT 1 FROM %s WHERE %s = :slug LIMIT 1", table, ColSlug),
		Bindings: []Binding{
			{Placeholder: "slug", Column: ColSlug, Value: slug},
		},
	}
}

// BuildDelete builds the delete statement for one slug.
func BuildDelete(table, slug string) *Query {
	return &Query{
		SQL: fmt.Sprintf("DELETE FROM %s WHERE %s = :slug", table, ColSlug),
		Bindings: []Binding{
			{Placeholder: "slug", Column: ColSlug, Value: slug},
		},
	}
}

// BuildUpsert builds the INSERT ... ON CONFLICT statement for one slug and
// the retained payload columns. The update arm reuses the insert arm's
// placeholders, so each value binds exactly once. _created_at appears only
// in the insert arm and therefore keeps its first-insert value across
// updates; :now is shared by both timestamp columns.
func BuildUpsert(table, slug string, columns []string, values []any, now string) *Query {
	cols := []string{ColSlug, ColCreatedAt, ColUpdatedAt}
	phs := []string{":slug", ":now", ":now"}
	sets := []string{ColUpdatedAt + " = :now"}
	bindings := []Binding{
		{Placeholder: "slug", Column: ColSlug, Value: slug},
		{Placeholder: "now", Column: ColUpdatedAt, Value: now},
	}
	for i, col := range columns {
		ph := fmt.Sprintf("c%d", i)
		cols = append(cols, col)
		phs = append(phs, ":"+ph)
		sets = append(sets, fmt.Sprintf("%s = :%s", col, ph))
		bindings = append(bindings, Binding{Placeholder: ph, Column: col, Value: values[i]})
	}
	sql := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT(%s) DO UPDATE SET %s",
		table,
		strings.Join(cols, ", "),
		strings.Join(phs, ", "),
		ColSlug,
		strings.Join(sets, ", "),
	)
	return &Query{SQL: sql, Bindings: bindings}
}

// BuildSelect builds a SELECT statement from opts. Projection, ORDER BY and
// filter columns may reference the reserved columns; anything else must pass
// the identifier rule.
func BuildSelect(table string, opts SelectOptions) (*Query, error) {
	var parts []string

	keyword := "SELECT"
	if opts.Distinct {
		keyword = "SELECT DISTINCT"
	}
	if len(opts.Columns) == 0 {
		parts = append(parts, keyword+" *")
	} else {
		cols := make([]string, len(opts.Columns))
		for i, c := range opts.Columns {
			col, err := ValidateReadIdent(c)
			if err != nil {
				return nil, err
			}
			cols[i] = col
		}
		parts = append(parts, keyword+" "+strings.Join(cols, ", "))
	}

	parts = append(parts, "FROM "+table)

	var bindings []Binding
	if opts.Filter != nil {
		frag, bs, err := CompileFilter(opts.Filter)
		if err != nil {
			return nil, err
		}
		if frag != "" {
			parts = append(parts, "WHERE "+frag)
			bindings = bs
		}
	}

	if len(opts.OrderBy) > 0 {
		terms := make([]string, len(opts.OrderBy))
		for i, ob := range opts.OrderBy {
			col, err := ValidateReadIdent(ob.Column)
			if err != nil {
				return nil, err
			}
			dir := "ASC"
			if ob.Desc {
				dir = "DESC"
			}
			terms[i] = col + " " + dir
		}
		parts = append(parts, "ORDER BY "+strings.Join(terms, ", "))
	}

	if opts.Limit != nil && *opts.Limit < 0 {
		return nil, fmt.Errorf("%w: limit %d", ErrNegativeRange, *opts.Limit)
	}
	if opts.Offset != nil && *opts.Offset < 0 {
		return nil, fmt.Errorf("%w: offset %d", ErrNegativeRange, *opts.Offset)
	}
	switch {
	case opts.Limit != nil && opts.Offset != nil:
		parts = append(parts, fmt.Sprintf("LIMIT %d OFFSET %d", *opts.Limit, *opts.Offset))
	case opts.Limit != nil:
		parts = append(parts, fmt.Sprintf("LIMIT %d", *opts.Limit))
	case opts.Offset != nil:
		// SQLite only accepts OFFSET after a LIMIT; -1 means unbounded.
		parts = append(parts, fmt.Sprintf("LIMIT -1 OFFSET %d", *opts.Offset))
	}

	return &Query{SQL: strings.Join(parts, " "), Bindings: bindings}, nil
}
