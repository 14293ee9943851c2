package sqlgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/satishbabariya/slugstore/filter"
)

var (
	// ErrUnsupportedOp marks an operator the compiler refuses to emit SQL
	// for. Reserved operators (EXISTS, IN, BETWEEN) fail with this rather
	// than compiling to nothing: a silently dropped clause would widen the
	// result set undetected.
	ErrUnsupportedOp = errors.New("unsupported filter operator")

	// ErrMalformedFilter marks a filter node the compiler cannot make sense
	// of (nil node, NOT without a child, value operator without a value).
	ErrMalformedFilter = errors.New("malformed filter")
)

// Binding ties a named placeholder to the column it compares against and the
// raw value to bind. The executor consumes bindings in slice order.
type Binding struct {
	Placeholder string
	Column      string
	Value       any
}

// CompileFilter compiles a predicate tree into a SQL boolean expression and
// the ordered bindings its placeholders refer to. Placeholders are b0, b1,
// ... numbered in the order leaves are visited (pre-order, left to right);
// the counter restarts per call so the names never collide with the
// slug/now/cN placeholders used by the statement builders. A nil tree
// compiles to an empty fragment with no bindings.
func CompileFilter(root filter.Node) (string, []Binding, error) {
	if root == nil {
		return "", nil, nil
	}
	c := &filterCompiler{}
	frag, err := c.compile(root)
	if err != nil {
		return "", nil, err
	}
	return frag, c.bindings, nil
}

type filterCompiler struct {
	next     int
	bindings []Binding
}

func (c *filterCompiler) compile(n filter.Node) (string, error) {
	switch n := n.(type) {
	case filter.And:
		return c.combine(n.Children, " AND ")
	case filter.Or:
		return c.combine(n.Children, " OR ")
	case filter.Not:
		if n.Child == nil {
			return "", fmt.Errorf("%w: NOT without child", ErrMalformedFilter)
		}
		inner, err := c.compile(n.Child)
		if err != nil {
			return "", err
		}
		// Negating an empty conjunction/disjunction is vacuous, like the
		// empty combinators themselves.
		if inner == "" {
			return "", nil
		}
		return "NOT (" + inner + ")", nil
	case filter.Compare:
		return c.leaf(n)
	case nil:
		return "", fmt.Errorf("%w: nil node", ErrMalformedFilter)
	default:
		return "", fmt.Errorf("%w: unknown node %T", ErrMalformedFilter, n)
	}
}

func (c *filterCompiler) combine(children []filter.Node, sep string) (string, error) {
	var parts []string
	for _, child := range children {
		frag, err := c.compile(child)
		if err != nil {
			return "", err
		}
		if frag == "" {
			continue
		}
		parts = append(parts, frag)
	}
	if len(parts) == 0 {
		return "", nil
	}
	return "(" + strings.Join(parts, sep) + ")", nil
}

func (c *filterCompiler) leaf(cmp filter.Compare) (string, error) {
	col, err := ValidateReadIdent(cmp.Column)
	if err != nil {
		return "", err
	}
	switch cmp.Op {
	case filter.OpIsNull:
		return col + " IS NULL", nil
	case filter.OpEq, filter.OpNe, filter.OpLt, filter.OpLe, filter.OpGt, filter.OpGe, filter.OpLike:
		if cmp.Value == nil {
			return "", fmt.Errorf("%w: %s %s with no value", ErrMalformedFilter, col, cmp.Op)
		}
		ph := fmt.Sprintf("b%d", c.next)
		c.next++
		c.bindings = append(c.bindings, Binding{Placeholder: ph, Column: col, Value: cmp.Value})
		return fmt.Sprintf("%s %s :%s", col, cmp.Op, ph), nil
	case filter.OpExists, filter.OpIn, filter.OpBetween:
		return "", fmt.Errorf("%w: %s is reserved but not implemented", ErrUnsupportedOp, cmp.Op)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedOp, cmp.Op)
	}
}
