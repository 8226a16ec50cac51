// Copyright © 2024 The quo authors

// Package parser provides the default parser for quo source text.
package parser

import (
	"io"

	"github.com/quolang/quo/expr"
	"github.com/quolang/quo/parser/rdparser"
	"github.com/quolang/quo/parser/token"
)

// Parse reads a program, a sequence of expressions, from r.  The name
// argument is used in source locations attached to parsed expressions.
func Parse(name string, r io.Reader) ([]*expr.Expr, error) {
	p := rdparser.New(token.NewScanner(name, r))
	return p.ParseProgram()
}

// ParseString reads a program from source text src.
func ParseString(name string, src string) ([]*expr.Expr, error) {
	p := rdparser.New(token.NewScannerString(name, src))
	return p.ParseProgram()
}

// ParseExpressionString reads exactly one expression from src.  Empty input
// and trailing source text beyond the first expression are both errors.
func ParseExpressionString(name string, src string) (*expr.Expr, error) {
	p := rdparser.New(token.NewScannerString(name, src))
	v, err := p.Parse()
	if err == io.EOF {
		return nil, expr.GoError(parseError(name, "expected an expression"))
	}
	if err != nil {
		return nil, err
	}
	if _, err := p.Parse(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, expr.GoError(parseError(name, "unexpected source text following expression"))
	}
	return v, nil
}

func parseError(name string, msg string) *expr.Expr {
	lerr := expr.ErrorConditionf("parse-error", "%s", msg)
	lerr.Source = &token.Location{File: name, Line: 1}
	return lerr
}
