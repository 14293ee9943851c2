package sqlgen

import (
	"errors"
	"testing"
)

func TestValidateIdentAcceptsValidNames(t *testing.T) {
	for _, name := range []string{"a", "A", "abc", "a1", "a_b", "Table_2", "z9_"} {
		got, err := ValidateIdent(name)
		if err != nil {
			t.Errorf("ValidateIdent(%q) failed: %v", name, err)
			continue
		}
		if got != name {
			t.Errorf("ValidateIdent(%q) = %q, want identity", name, got)
		}
	}
}

func TestValidateIdentRejectsInvalidNames(t *testing.T) {
	for _, name := range []string{"", "1abc", "a-b", "_slug", "a b", "a;drop table x", "tab\tle", "naïve"} {
		if _, err := ValidateIdent(name); err == nil {
			t.Errorf("ValidateIdent(%q) succeeded, want error", name)
		} else if !errors.Is(err, ErrInvalidIdent) {
			t.Errorf("ValidateIdent(%q) error = %v, want ErrInvalidIdent", name, err)
		}
	}
}

func TestValidateReadIdentAdmitsReservedColumns(t *testing.T) {
	for _, name := range []string{ColID, ColSlug, ColCreatedAt, ColUpdatedAt} {
		got, err := ValidateReadIdent(name)
		if err != nil {
			t.Errorf("ValidateReadIdent(%q) failed: %v", name, err)
		}
		if got != name {
			t.Errorf("ValidateReadIdent(%q) = %q", name, got)
		}
	}
	if _, err := ValidateReadIdent("_other"); err == nil {
		t.Error("ValidateReadIdent(\"_other\") succeeded, want error")
	}
}

func TestIsReserved(t *testing.T) {
	if !IsReserved("_slug") {
		t.Error("IsReserved(\"_slug\") = false")
	}
	if IsReserved("slug") {
		t.Error("IsReserved(\"slug\") = true")
	}
}
