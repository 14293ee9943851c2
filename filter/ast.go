// Package filter defines the predicate tree used to express row filters.
//
// A filter is a closed set of node shapes: And, Or, Not and the Compare
// leaf. Trees are compiled into parameterized SQL by query/sqlgen; the
// compiler, not this package, decides which operators are executable.
package filter

// Node is one predicate tree node.
type Node interface {
	filterNode()
}

// Op is a comparison operator carried by a Compare leaf.
type Op string

const (
	OpEq     Op = "="
	OpNe     Op = "!="
	OpLt     Op = "<"
	OpLe     Op = "<="
	OpGt     Op = ">"
	OpGe     Op = ">="
	OpLike   Op = "LIKE"
	OpIsNull Op = "IS NULL"

	// Reserved operator names. These parse and construct fine but the
	// compiler rejects them until the semantics are implemented.
	OpExists  Op = "EXISTS"
	OpIn      Op = "IN"
	OpBetween Op = "BETWEEN"
)

// And combines child predicates conjunctively. An empty child list
// contributes nothing to the compiled clause.
type And struct {
	Children []Node
}

// Or combines child predicates disjunctively. An empty child list
// contributes nothing to the compiled clause.
type Or struct {
	Children []Node
}

// Not negates its child predicate.
type Not struct {
	Child Node
}

// Compare is a leaf comparing a column against a value. Value is unused for
// OpIsNull. For OpIn, Value is a []any of candidates; for OpBetween a []any
// of two bounds.
type Compare struct {
	Column string
	Op     Op
	Value  any
}

func (And) filterNode()     {}
func (Or) filterNode()      {}
func (Not) filterNode()     {}
func (Compare) filterNode() {}

// Convenience constructors for building trees in code.

func Eq(column string, value any) Compare   { return Compare{column, OpEq, value} }
func Ne(column string, value any) Compare   { return Compare{column, OpNe, value} }
func Lt(column string, value any) Compare   { return Compare{column, OpLt, value} }
func Le(column string, value any) Compare   { return Compare{column, OpLe, value} }
func Gt(column string, value any) Compare   { return Compare{column, OpGt, value} }
func Ge(column string, value any) Compare   { return Compare{column, OpGe, value} }
func Like(column string, value any) Compare { return Compare{column, OpLike, value} }
func IsNull(column string) Compare          { return Compare{Column: column, Op: OpIsNull} }

// AllOf builds an And node over the given children.
func AllOf(children ...Node) And { return And{Children: children} }

// AnyOf builds an Or node over the given children.
func AnyOf(children ...Node) Or { return Or{Children: children} }
