package store

import (
	"errors"

	"github.com/satishbabariya/slugstore/query/executor"
	"github.com/satishbabariya/slugstore/query/sqlgen"
	"github.com/satishbabariya/slugstore/schema"
)

var (
	// ErrEmptySlug marks a row operation called with an empty slug.
	ErrEmptySlug = errors.New("slug must not be empty")

	// ErrUnknownColumn marks an upsert payload referencing a column that is
	// not in the schema. The write is rejected whole; nothing executes.
	ErrUnknownColumn = errors.New("payload references a column not in the schema")
)

// IsContractViolation reports whether err is a caller contract violation —
// invalid identifier, empty slug, unknown payload column, malformed or
// unsupported filter, bad column type, binding bookkeeping mismatch — as
// opposed to an ordinary engine failure. Contract violations indicate a bug
// in the calling code; retrying cannot fix them.
func IsContractViolation(err error) bool {
	return errors.Is(err, ErrEmptySlug) ||
		errors.Is(err, ErrUnknownColumn) ||
		errors.Is(err, sqlgen.ErrInvalidIdent) ||
		errors.Is(err, sqlgen.ErrMalformedFilter) ||
		errors.Is(err, sqlgen.ErrUnsupportedOp) ||
		errors.Is(err, sqlgen.ErrNegativeRange) ||
		errors.Is(err, schema.ErrBadColumnType) ||
		errors.Is(err, executor.ErrBindMismatch)
}
