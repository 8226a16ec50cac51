// Copyright © 2024 The quo authors

// Package rdparser implements a recursive descent parser for the quo
// expression language.
package rdparser

import (
	"io"
	"strconv"

	"github.com/quolang/quo/expr"
	"github.com/quolang/quo/parser/token"
)

// Parser is a quo expression parser.
type Parser struct {
	parsing bool
	src     *TokenSource
}

// NewFromSource initializes and returns a Parser that reads tokens from src.
func NewFromSource(src *TokenSource) *Parser {
	return &Parser{
		src: src,
	}
}

// New initializes and returns a new Parser that reads tokens from scanner.
func New(scanner *token.Scanner) *Parser {
	return NewFromSource(NewTokenSource(scanner))
}

// Parse is a generic entry point that is similar to ParseExpression but is
// capable of handling EOF before reading an expression.
func (p *Parser) Parse() (*expr.Expr, error) {
	if p.src.IsEOF() {
		return nil, io.EOF
	}
	v := p.ParseExpression()
	if v.Type == expr.TError {
		return nil, expr.GoError(v)
	}
	return v, nil
}

// ParseProgram parses a series of expressions terminated by EOF.
func (p *Parser) ParseProgram() ([]*expr.Expr, error) {
	var exprs []*expr.Expr
	for {
		v, err := p.Parse()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, v)
	}
	return exprs, nil
}

// ParseExpression parses a single expression.  Unlike Parse, ParseExpression
// requires an expression to be present in the input stream and will report
// unexpected EOF tokens encountered.
func (p *Parser) ParseExpression() *expr.Expr {
	// Flag that we are in the middle of an expression while we finish
	// parsing it so that an interactive caller can determine what state the
	// parser is in (and thus what a REPL prompt should look like).
	if !p.parsing {
		p.parsing = true
		defer func() { p.parsing = false }()
	}

	return p.parseComparison()
}

// Parsing returns true when p is in the middle of parsing an expression.
func (p *Parser) Parsing() bool {
	return p.parsing
}

// parseComparison sits at the bottom of the precedence ladder.  Comparisons
// associate left, like the arithmetic levels above them, so chained
// comparisons compare boolean results against operands.
func (p *Parser) parseComparison() *expr.Expr {
	return p.parseBinary((*Parser).parseSum,
		token.EQ, token.NEQ, token.LT, token.LTE, token.GT, token.GTE)
}

func (p *Parser) parseSum() *expr.Expr {
	return p.parseBinary((*Parser).parseProduct, token.PLUS, token.MINUS)
}

func (p *Parser) parseProduct() *expr.Expr {
	return p.parseBinary((*Parser).parseUnary, token.STAR, token.SLASH, token.PERCENT)
}

func (p *Parser) parseBinary(next func(*Parser) *expr.Expr, ops ...token.Type) *expr.Expr {
	lhs := next(p)
	if lhs.Type == expr.TError {
		return lhs
	}
	for p.Accept(ops...) {
		op := p.src.Token
		rhs := next(p)
		if rhs.Type == expr.TError {
			return rhs
		}
		call := expr.Call(op.Text, lhs, rhs)
		call.Source = op.Source
		lhs = call
	}
	return lhs
}

func (p *Parser) parseUnary() *expr.Expr {
	if !p.Accept(token.MINUS) {
		return p.parsePrimary()
	}
	op := p.src.Token
	operand := p.parseUnary()
	if operand.Type == expr.TError {
		return operand
	}
	// Fold negation into numeric literals so that -1 renders and
	// substitutes as a plain number rather than a call.
	switch operand.Type {
	case expr.TInt:
		operand.Int = -operand.Int
		operand.Source = op.Source
		return operand
	case expr.TFloat:
		operand.Float = -operand.Float
		operand.Source = op.Source
		return operand
	}
	call := expr.Call(op.Text, operand)
	call.Source = op.Source
	return call
}

func (p *Parser) parsePrimary() *expr.Expr {
	switch p.PeekType() {
	case token.INT:
		return p.ParseLiteralInt()
	case token.FLOAT:
		return p.ParseLiteralFloat()
	case token.STRING:
		return p.ParseLiteralString()
	case token.DOTS:
		p.Accept(token.DOTS)
		return p.Dots()
	case token.SYMBOL:
		return p.ParseSymbol()
	case token.PAREN_L:
		return p.ParseGroup()
	case token.ERROR, token.INVALID:
		p.ReadToken()
		return p.scanError("scan-error")
	default:
		// EOF mid-expression is distinguished so interactive callers can
		// prompt for a continuation line.
		if p.src.IsEOF() {
			return p.errorf("unmatched-syntax", "unexpected EOF")
		}
		p.ReadToken()
		return p.errorf("parse-error", "unexpected token: %v", p.TokenType())
	}
}

func (p *Parser) ParseLiteralInt() *expr.Expr {
	if !p.Accept(token.INT) {
		return p.errorf("parse-error", "invalid integer literal: %v", p.PeekType())
	}
	text := p.TokenText()
	x, err := strconv.Atoi(text)
	if err != nil {
		return p.errorf("integer-overflow-error", "integer literal overflows int: %v", text)
	}
	return p.Int(x)
}

func (p *Parser) ParseLiteralFloat() *expr.Expr {
	if !p.Accept(token.FLOAT) {
		return p.errorf("parse-error", "invalid float literal: %v", p.PeekType())
	}
	x, err := strconv.ParseFloat(p.TokenText(), 64)
	if err != nil {
		return p.errorf("parse-error", "invalid floating point literal: %v", p.TokenText())
	}
	return p.Float(x)
}

func (p *Parser) ParseLiteralString() *expr.Expr {
	if !p.Accept(token.STRING) {
		return p.errorf("parse-error", "invalid string literal: %v", p.PeekType())
	}
	s, err := strconv.Unquote(p.TokenText())
	if err != nil {
		return p.errorf("parse-error", "invalid string literal: %v", p.TokenText())
	}
	return p.String(s)
}

// ParseSymbol parses a symbol reference or, when the symbol is immediately
// followed by an open paren, a function call.
func (p *Parser) ParseSymbol() *expr.Expr {
	if !p.Accept(token.SYMBOL) {
		return p.errorf("parse-error", "invalid symbol: %v", p.PeekType())
	}
	sym := p.Symbol(p.TokenText())
	if p.PeekType() != token.PAREN_L {
		return sym
	}
	return p.ParseCall(sym)
}

// ParseCall parses the parenthesized argument list of a call to fun.
func (p *Parser) ParseCall(fun *expr.Expr) *expr.Expr {
	if !p.Accept(token.PAREN_L) {
		return p.errorf("parse-error", "invalid call: %v", p.PeekType())
	}
	open := p.src.Token
	call := expr.Call(fun.Str)
	call.Source = fun.Source
	if p.Accept(token.PAREN_R) {
		return call
	}
	for {
		x := p.ParseExpression()
		if x.Type == expr.TError {
			return x
		}
		call.Cells = append(call.Cells, x)
		if p.Accept(token.PAREN_R) {
			return call
		}
		if !p.Accept(token.COMMA) {
			if p.src.IsEOF() {
				return p.errorf("unmatched-syntax", "unmatched %s", open.Text)
			}
			p.ReadToken()
			return p.errorf("parse-error", "unexpected token in argument list: %v", p.TokenType())
		}
	}
}

// ParseGroup parses a parenthesized expression.  The grouping parens are not
// recorded in the parsed tree.  Rendering reconstructs any parens that the
// tree shape requires.
func (p *Parser) ParseGroup() *expr.Expr {
	if !p.Accept(token.PAREN_L) {
		return p.errorf("parse-error", "invalid group: %v", p.PeekType())
	}
	open := p.src.Token
	x := p.ParseExpression()
	if x.Type == expr.TError {
		return x
	}
	if !p.Accept(token.PAREN_R) {
		if p.src.IsEOF() {
			return p.errorf("unmatched-syntax", "unmatched %s", open.Text)
		}
		p.ReadToken()
		return p.errorf("parse-error", "unexpected token: %v", p.TokenType())
	}
	return x
}

func (p *Parser) ReadToken() *token.Token {
	p.src.Scan()
	return p.src.Token
}

func (p *Parser) TokenText() string {
	return p.src.Token.Text
}

func (p *Parser) TokenType() token.Type {
	return p.src.Token.Type
}

func (p *Parser) Location() *token.Location {
	return p.src.Token.Source
}

func (p *Parser) PeekType() token.Type {
	return p.src.Peek().Type
}

func (p *Parser) PeekLocation() *token.Location {
	return p.src.Peek().Source
}

func (p *Parser) String(s string) *expr.Expr {
	return p.tokenExpr(expr.String(s))
}

func (p *Parser) Symbol(sym string) *expr.Expr {
	return p.tokenExpr(expr.Symbol(sym))
}

func (p *Parser) Int(x int) *expr.Expr {
	return p.tokenExpr(expr.Int(x))
}

func (p *Parser) Float(x float64) *expr.Expr {
	return p.tokenExpr(expr.Float(x))
}

func (p *Parser) Dots() *expr.Expr {
	return p.tokenExpr(expr.Dots())
}

func (p *Parser) tokenExpr(v *expr.Expr) *expr.Expr {
	v.Source = p.Location()
	return v
}

func (p *Parser) Accept(typ ...token.Type) bool {
	return p.src.AcceptType(typ...)
}

func (p *Parser) errorf(condition string, format string, v ...interface{}) *expr.Expr {
	err := expr.ErrorConditionf(condition, format, v...)
	err.Source = p.Location()
	return err
}

func (p *Parser) scanError(condition string) *expr.Expr {
	err := expr.ErrorConditionf(condition, "%s", p.TokenText())
	err.Source = p.Location()
	return err
}
