package sqlgen

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidIdent marks a table or column name that failed the identifier
// rule. Treated as a contract violation: SQL must never be built from it.
var ErrInvalidIdent = errors.New("invalid identifier")

// Identifiers are interpolated literally into SQL text, so they cannot be
// parameter-bound; the only defense is this lexical gate.
var identPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Reserved columns created with every table. Their leading underscore makes
// them fail the identifier rule, which keeps them out of caller payloads;
// read paths admit them through ValidateReadIdent.
const (
	ColID        = "_id"
	ColSlug      = "_slug"
	ColCreatedAt = "_created_at"
	ColUpdatedAt = "_updated_at"
)

// ValidIdent reports whether name may be used as a table or column name.
func ValidIdent(name string) bool {
	return identPattern.MatchString(name)
}

// ValidateIdent returns name unchanged if it passes the identifier rule.
func ValidateIdent(name string) (string, error) {
	if !ValidIdent(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdent, name)
	}
	return name, nil
}

// IsReserved reports whether name is one of the columns created with every
// table.
func IsReserved(name string) bool {
	switch name {
	case ColID, ColSlug, ColCreatedAt, ColUpdatedAt:
		return true
	}
	return false
}

// ValidateReadIdent accepts reserved column names in addition to ordinary
// identifiers. Used for projection, ORDER BY and filter columns, which may
// legitimately reference _id and friends; payload keys must go through
// ValidateIdent instead.
func ValidateReadIdent(name string) (string, error) {
	if IsReserved(name) {
		return name, nil
	}
	return ValidateIdent(name)
}
