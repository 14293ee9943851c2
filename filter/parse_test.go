package filter

import (
	"reflect"
	"testing"
)

func TestParseSingleComparison(t *testing.T) {
	node, err := Parse(`a = 1`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := Compare{Column: "a", Op: OpEq, Value: int64(1)}
	if !reflect.DeepEqual(node, want) {
		t.Errorf("node = %#v, want %#v", node, want)
	}
}

func TestParsePrecedenceAndGrouping(t *testing.T) {
	node, err := Parse(`a = 1 AND NOT (b IS NULL OR c LIKE "x%")`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := And{Children: []Node{
		Compare{Column: "a", Op: OpEq, Value: int64(1)},
		Not{Child: Or{Children: []Node{
			Compare{Column: "b", Op: OpIsNull},
			Compare{Column: "c", Op: OpLike, Value: "x%"},
		}}},
	}}
	if !reflect.DeepEqual(node, want) {
		t.Errorf("node = %#v\nwant   %#v", node, want)
	}
}

func TestParseOrBindsLooserThanAnd(t *testing.T) {
	node, err := Parse(`a = 1 OR b = 2 AND c = 3`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	or, ok := node.(Or)
	if !ok {
		t.Fatalf("root is %T, want Or", node)
	}
	if len(or.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(or.Children))
	}
	if _, ok := or.Children[1].(And); !ok {
		t.Errorf("second child is %T, want And", or.Children[1])
	}
}

func TestParseNumberTypes(t *testing.T) {
	node, err := Parse(`a = 2.5`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := node.(Compare).Value; got != 2.5 {
		t.Errorf("value = %#v, want 2.5", got)
	}
	node, err = Parse(`a = -3`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := node.(Compare).Value; got != int64(-3) {
		t.Errorf("value = %#v, want int64(-3)", got)
	}
}

func TestParseKeywordsCaseInsensitive(t *testing.T) {
	node, err := Parse(`a = 1 and b is null`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	and, ok := node.(And)
	if !ok {
		t.Fatalf("root is %T, want And", node)
	}
	if got := and.Children[1].(Compare).Op; got != OpIsNull {
		t.Errorf("op = %q, want IS NULL", got)
	}
}

func TestParseOperators(t *testing.T) {
	for text, op := range map[string]Op{
		`a != 1`: OpNe, `a < 1`: OpLt, `a <= 1`: OpLe,
		`a > 1`: OpGt, `a >= 1`: OpGe,
	} {
		node, err := Parse(text)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", text, err)
			continue
		}
		if got := node.(Compare).Op; got != op {
			t.Errorf("Parse(%q) op = %q, want %q", text, got, op)
		}
	}
}

func TestParseReservedOperators(t *testing.T) {
	node, err := Parse(`a IN (1, 2, 3)`)
	if err != nil {
		t.Fatalf("Parse IN failed: %v", err)
	}
	cmp := node.(Compare)
	if cmp.Op != OpIn {
		t.Errorf("op = %q, want IN", cmp.Op)
	}
	if vals := cmp.Value.([]any); len(vals) != 3 || vals[0] != int64(1) {
		t.Errorf("values = %#v", cmp.Value)
	}

	node, err = Parse(`a BETWEEN 1 AND 5`)
	if err != nil {
		t.Fatalf("Parse BETWEEN failed: %v", err)
	}
	cmp = node.(Compare)
	if cmp.Op != OpBetween {
		t.Errorf("op = %q, want BETWEEN", cmp.Op)
	}
	if vals := cmp.Value.([]any); len(vals) != 2 || vals[1] != int64(5) {
		t.Errorf("bounds = %#v", cmp.Value)
	}
}

func TestParseBetweenThenConjunction(t *testing.T) {
	node, err := Parse(`a BETWEEN 1 AND 5 AND b = 2`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	and, ok := node.(And)
	if !ok {
		t.Fatalf("root is %T, want And", node)
	}
	if len(and.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(and.Children))
	}
	if got := and.Children[0].(Compare).Op; got != OpBetween {
		t.Errorf("first child op = %q, want BETWEEN", got)
	}
}

func TestParseErrors(t *testing.T) {
	for _, text := range []string{``, `a =`, `= 1`, `a = 1 AND`, `(a = 1`, `a LIKE`} {
		if _, err := Parse(text); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", text)
		}
	}
}
