// Copyright © 2024 The quo authors

/*
Package parsecparser implements the quo grammar on parser combinators.  It
exists as a cross-check for the recursive descent parser and parses the same
language.

	expr     := cmp
	cmp      := sum (('=='|'!='|'<='|'>='|'<'|'>') sum)*
	sum      := product (('+'|'-') product)*
	product  := unary (('*'|'/'|'%') unary)*
	unary    := '-' unary | primary
	primary  := <float> | <int> | <string> | '...' | <call> | <symbol> | '(' expr ')'
	call     := <symbol> '(' (expr (',' expr)*)? ')'

The combinator scanner does not surface token locations, so expressions
parsed by this package carry no source position metadata.  Prefer the
rdparser package when error locations matter.
*/
package parsecparser

import (
	"fmt"
	"strconv"

	parsec "github.com/prataprc/goparsec"
	"github.com/quolang/quo/expr"
)

const (
	nodeInvalid nodeType = iota
	nodeTerm
	nodeUnary
	nodeBinary
	nodeCall
	nodeGroup
)

var nodeTypeStrings = []string{
	nodeInvalid: "INVALID",
	nodeTerm:    "TERM",
	nodeUnary:   "UNARY",
	nodeBinary:  "BINARY",
	nodeCall:    "CALL",
	nodeGroup:   "GROUP",
}

type nodeType uint

func (t nodeType) String() string {
	if int(t) >= len(nodeTypeStrings) {
		return "INVALID"
	}
	return nodeTypeStrings[t]
}

// ParseExpr parses expressions from text and returns them.  The number of
// bytes read is returned along with any error encountered in parsing.
func ParseExpr(text []byte) ([]*expr.Expr, int, error) {
	var v []*expr.Expr
	s := parsec.NewScanner(stripComments(text))
	s = s.TrackLineno()
	parser := newParsecParser()
	root, s := parser(s)
	for root != nil {
		x, err := getExpr(root)
		if err != nil {
			return v, s.GetCursor(), err
		}
		v = append(v, x)
		root, s = parser(s)
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		b, _ := s.Match(`.{1,16}`)
		if len(b) > 15 {
			b = append(b[:15:15], []byte("...")...)
		}
		return v, s.GetCursor(), fmt.Errorf("%d: unexpected source text possibly starting: %s", s.Lineno(), b)
	}
	return v, s.GetCursor(), nil
}

// ParseExprString parses expressions from source text src.
func ParseExprString(src string) ([]*expr.Expr, error) {
	v, _, err := ParseExpr([]byte(src))
	return v, err
}

// stripComments blanks hash comments so the combinator grammar does not need
// a comment production.  Byte offsets are preserved.
func stripComments(text []byte) []byte {
	out := make([]byte, len(text))
	copy(out, text)
	comment := false
	quoted := false
	for i, c := range out {
		switch {
		case c == '\n':
			comment = false
			quoted = false
		case comment:
			out[i] = ' '
		case c == '"':
			quoted = !quoted
		case c == '#' && !quoted:
			comment = true
			out[i] = ' '
		}
	}
	return out
}

func newParsecParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	comma := parsec.Atom(",", "COMMA")
	dots := parsec.Atom("...", "DOTS")
	float := parsec.Token(`[0-9]+(?:[.][0-9]+(?:[eE][+-]?[0-9]+)?|[eE][+-]?[0-9]+)`, "FLOAT")
	integer := parsec.Token(`[0-9]+`, "INT")
	symbol := parsec.Token(`(?:\pL|_)(?:\pL|[0-9._])*`, "SYMBOL")
	minus := parsec.Atom("-", "MINUS")
	// Two-rune operators come first because OrdChoice is ordered.
	cmpOp := parsec.OrdChoice(nil,
		parsec.Atom("==", "EQ"), parsec.Atom("!=", "NEQ"),
		parsec.Atom("<=", "LTE"), parsec.Atom(">=", "GTE"),
		parsec.Atom("<", "LT"), parsec.Atom(">", "GT"),
	)
	sumOp := parsec.OrdChoice(nil, parsec.Atom("+", "PLUS"), minus)
	prodOp := parsec.OrdChoice(nil,
		parsec.Atom("*", "STAR"), parsec.Atom("/", "SLASH"), parsec.Atom("%", "PERCENT"),
	)

	var cmp parsec.Parser // forward declaration allows for recursive parsing
	var unary parsec.Parser

	term := parsec.OrdChoice(astNode(nodeTerm),
		parsec.String(),
		float,
		integer, // after float so the fraction is not orphaned
		dots,
	)
	group := parsec.And(astNode(nodeGroup), openP, &cmp, closeP)
	args := parsec.Kleene(nil, &cmp, comma)
	call := parsec.And(astNode(nodeCall), symbol, openP, args, closeP)
	symbolTerm := parsec.OrdChoice(astNode(nodeTerm), symbol)
	primary := parsec.OrdChoice(nil,
		term,
		call,
		symbolTerm, // after call because call swallows the symbol
		group,
	)
	negation := parsec.And(astNode(nodeUnary), minus, &unary)
	unary = parsec.OrdChoice(nil, negation, primary)
	product := parsec.And(astNode(nodeBinary), unary, parsec.Kleene(nil, parsec.And(nil, prodOp, unary)))
	sum := parsec.And(astNode(nodeBinary), product, parsec.Kleene(nil, parsec.And(nil, sumOp, product)))
	cmp = parsec.And(astNode(nodeBinary), sum, parsec.Kleene(nil, parsec.And(nil, cmpOp, sum)))
	return cmp
}

func astNode(t nodeType) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		return newAST(t, nodes)
	}
}

func newAST(typ nodeType, nodes []parsec.ParsecNode) parsec.ParsecNode {
	nodes, ok := cleanParsecNodeList(nodes)
	if len(nodes) == 0 {
		return nil
	}
	if !ok {
		// There is an error in the first position.
		return nodes[0]
	}
	switch typ {
	case nodeTerm:
		return termExpr(nodes[0])
	case nodeUnary:
		// nodes[0] is the minus terminal
		operand, ok := nodes[1].(*expr.Expr)
		if !ok {
			return expr.ErrorConditionf("parse-error", "invalid negation operand")
		}
		return negate(operand)
	case nodeBinary:
		lhs, ok := nodes[0].(*expr.Expr)
		if !ok {
			return expr.ErrorConditionf("parse-error", "invalid expression")
		}
		for i := 1; i+1 < len(nodes); i += 2 {
			op, okOp := nodes[i].(*parsec.Terminal)
			rhs, okRHS := nodes[i+1].(*expr.Expr)
			if !okOp || !okRHS {
				return expr.ErrorConditionf("parse-error", "invalid expression")
			}
			lhs = expr.Call(op.GetValue(), lhs, rhs)
		}
		return lhs
	case nodeCall:
		// Terminal nodes for the symbol and parens surround the arguments.
		sym, ok := nodes[0].(*parsec.Terminal)
		if !ok {
			return expr.ErrorConditionf("parse-error", "invalid call")
		}
		call := expr.Call(sym.GetValue())
		for _, c := range nodes[1:] {
			if c, ok := c.(*expr.Expr); ok {
				call.Cells = append(call.Cells, c)
			}
		}
		return call
	case nodeGroup:
		// We don't want the terminal parsec nodes '(' and ')'
		return nodes[1]
	default:
		panic(fmt.Sprintf("unknown nodeType: %s (%d)", typ, typ))
	}
}

func termExpr(node parsec.ParsecNode) parsec.ParsecNode {
	switch term := node.(type) {
	case string:
		return expr.String(unquoteString(term))
	case *parsec.Terminal:
		switch term.GetName() {
		case "FLOAT":
			f, err := strconv.ParseFloat(term.GetValue(), 64)
			if err != nil {
				return expr.ErrorConditionf("parse-error", "bad number: %v (%s)", err, term.GetValue())
			}
			return expr.Float(f)
		case "INT":
			x, err := strconv.Atoi(term.GetValue())
			if err != nil {
				return expr.ErrorConditionf("integer-overflow-error", "integer literal overflows int: %s", term.GetValue())
			}
			return expr.Int(x)
		case "DOTS":
			return expr.Dots()
		case "SYMBOL":
			return expr.Symbol(term.GetValue())
		}
	}
	return expr.ErrorConditionf("parse-error", "unexpected term: %v", node)
}

func negate(operand *expr.Expr) *expr.Expr {
	switch operand.Type {
	case expr.TInt:
		operand.Int = -operand.Int
		return operand
	case expr.TFloat:
		operand.Float = -operand.Float
		return operand
	case expr.TError:
		return operand
	}
	return expr.Call("-", operand)
}

func cleanParsecNodeList(lis []parsec.ParsecNode) ([]parsec.ParsecNode, bool) {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case nil:
			continue
		case *parsec.Terminal:
			nodes = append(nodes, node)
		case error:
			return []parsec.ParsecNode{node}, false
		case *expr.Expr:
			if node.Type == expr.TError {
				return []parsec.ParsecNode{node}, false
			}
			nodes = append(nodes, node)
		case []parsec.ParsecNode:
			clean, ok := cleanParsecNodeList(node)
			if !ok {
				return clean, false
			}
			nodes = append(nodes, clean...)
		default:
			nodes = append(nodes, node)
		}
	}
	return nodes, true
}

func getExpr(root parsec.ParsecNode) (*expr.Expr, error) {
	nodes, ok := cleanParsecNodeList([]parsec.ParsecNode{root})
	if len(nodes) == 0 {
		return nil, fmt.Errorf("empty expression")
	}
	if !ok {
		switch bad := nodes[0].(type) {
		case error:
			return nil, bad
		case *expr.Expr:
			return nil, expr.GoError(bad)
		}
		return nil, fmt.Errorf("invalid expression")
	}
	v, ok := nodes[0].(*expr.Expr)
	if !ok {
		return nil, fmt.Errorf("invalid expression: %T", nodes[0])
	}
	return v, nil
}

// The goparsec.String() parser unescapes the source text but wraps the
// result back in double quotes.  Strip them.
func unquoteString(s string) string {
	return s[1 : len(s)-1]
}
