package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// filterLexer tokenizes the text form of a filter expression, e.g.
//
//	status = "published" AND NOT (views < 10 OR author IS NULL)
//
// Keywords are case-insensitive; strings are double-quoted.
var filterLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `(?i)\b(AND|OR|NOT|IS|NULL|LIKE|IN|BETWEEN|EXISTS)\b`},
	{Name: "Op", Pattern: `!=|<=|>=|=|<|>`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Comma", Pattern: `,`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Number", Pattern: `-?\d+(?:\.\d+)?`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// Raw parse tree, converted to Node after parsing. Precedence is encoded in
// the grammar: OR binds loosest, then AND, then NOT.
type rawExpr struct {
	First *rawAnd   `parser:"@@"`
	Rest  []*rawAnd `parser:"( 'OR' @@ )*"`
}

type rawAnd struct {
	First *rawUnary   `parser:"@@"`
	Rest  []*rawUnary `parser:"( 'AND' @@ )*"`
}

type rawUnary struct {
	Not   *rawUnary `parser:"  'NOT' @@"`
	Group *rawExpr  `parser:"| '(' @@ ')'"`
	Cmp   *rawCmp   `parser:"| @@"`
}

type rawCmp struct {
	Column  string    `parser:"@Ident"`
	IsNull  bool      `parser:"( @('IS' 'NULL')"`
	In      *rawList  `parser:"| 'IN' '(' @@ ')'"`
	Between *rawRange `parser:"| 'BETWEEN' @@"`
	Op      string    `parser:"| @('!=' | '<=' | '>=' | '=' | '<' | '>' | 'LIKE')"`
	Value   *rawValue `parser:"  @@ )"`
}

type rawList struct {
	Values []*rawValue `parser:"@@ ( ',' @@ )*"`
}

type rawRange struct {
	Lo *rawValue `parser:"@@"`
	Hi *rawValue `parser:"'AND' @@"`
}

type rawValue struct {
	Str *string `parser:"  @String"`
	Num *string `parser:"| @Number"`
}

var parser = participle.MustBuild[rawExpr](
	participle.Lexer(filterLexer),
	participle.Elide("Whitespace"),
	participle.Unquote("String"),
	participle.CaseInsensitive("Keyword"),
	participle.UseLookahead(2),
)

// Parse parses the text form of a filter expression into a predicate tree.
// Parsing does not validate column names or operator support; that happens
// at compile time.
func Parse(input string) (Node, error) {
	raw, err := parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse filter: %w", err)
	}
	return convertExpr(raw), nil
}

func convertExpr(e *rawExpr) Node {
	if len(e.Rest) == 0 {
		return convertAnd(e.First)
	}
	children := make([]Node, 0, len(e.Rest)+1)
	children = append(children, convertAnd(e.First))
	for _, a := range e.Rest {
		children = append(children, convertAnd(a))
	}
	return Or{Children: children}
}

func convertAnd(a *rawAnd) Node {
	if len(a.Rest) == 0 {
		return convertUnary(a.First)
	}
	children := make([]Node, 0, len(a.Rest)+1)
	children = append(children, convertUnary(a.First))
	for _, u := range a.Rest {
		children = append(children, convertUnary(u))
	}
	return And{Children: children}
}

func convertUnary(u *rawUnary) Node {
	switch {
	case u.Not != nil:
		return Not{Child: convertUnary(u.Not)}
	case u.Group != nil:
		return convertExpr(u.Group)
	default:
		return convertCmp(u.Cmp)
	}
}

func convertCmp(c *rawCmp) Node {
	switch {
	case c.IsNull:
		return Compare{Column: c.Column, Op: OpIsNull}
	case c.In != nil:
		vals := make([]any, len(c.In.Values))
		for i, v := range c.In.Values {
			vals[i] = convertValue(v)
		}
		return Compare{Column: c.Column, Op: OpIn, Value: vals}
	case c.Between != nil:
		return Compare{
			Column: c.Column,
			Op:     OpBetween,
			Value:  []any{convertValue(c.Between.Lo), convertValue(c.Between.Hi)},
		}
	default:
		return Compare{
			Column: c.Column,
			Op:     Op(strings.ToUpper(c.Op)),
			Value:  convertValue(c.Value),
		}
	}
}

func convertValue(v *rawValue) any {
	switch {
	case v.Str != nil:
		return *v.Str
	case v.Num != nil:
		if strings.ContainsAny(*v.Num, ".") {
			f, _ := strconv.ParseFloat(*v.Num, 64)
			return f
		}
		n, _ := strconv.ParseInt(*v.Num, 10, 64)
		return n
	default:
		return nil
	}
}
