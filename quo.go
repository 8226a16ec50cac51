// Copyright © 2024 The quo authors

/*
Package quo embeds the quo expression language in Go programs.

The package provides capturing convenience entry points that parse source
text into expression trees.  Every capturing entry point has a programmatic
sibling in the expr package that accepts a pre-built *expr.Expr instead, so
callers that construct or transform trees never round-trip through text:

	Capture / expr.Quote, expr.Value
	EvalString / expr.Eval
	SubstituteString / expr.Substitute
	RenderString / expr.Render
	Vars / astutil.FreeSymbols

Captured expressions are plain data.  They can be rendered back to source
text, rewritten with substitution maps, and evaluated under any binding
context, in any order, any number of times.
*/
package quo

import (
	"github.com/quolang/quo/astutil"
	"github.com/quolang/quo/expr"
	"github.com/quolang/quo/parser"
)

// Capture parses src, which must contain exactly one expression, and returns
// its unevaluated tree.  Nothing is resolved or computed at capture time.
// The tree can reference symbols with no binding anywhere in the program.
//
// To "capture" an expression tree that already exists use expr.Quote, or
// expr.Value for a computed Go value.  There is no way to recover source
// syntax from a value; expr.Value of a computed result captures only the
// result.
func Capture(src string) (*expr.Expr, error) {
	return parser.ParseExpressionString("<capture>", src)
}

// MustCapture is Capture for expressions known at compile time.  It panics
// when src fails to parse.
func MustCapture(src string) *expr.Expr {
	v, err := Capture(src)
	if err != nil {
		panic("quo: " + err.Error())
	}
	return v
}

// EvalString captures src and evaluates it under primary with fallback
// consulted for symbols primary does not bind.  The sibling expr.Eval
// evaluates a pre-captured tree.
//
// When primary is itself an *expr.Context the fallback argument is unused.
// A context carries its own parent chain and that chain alone determines
// resolution order.
func EvalString(src string, primary expr.Scope, fallback *expr.Context) (*expr.Expr, error) {
	v, err := Capture(src)
	if err != nil {
		return nil, err
	}
	r := expr.Eval(v, primary, fallback)
	if r.Type == expr.TError {
		return nil, expr.GoError(r)
	}
	return r, nil
}

// EvalStringData captures src and evaluates it against plain Go data with
// the default builtins available as fallback.
func EvalStringData(src string, data map[string]interface{}) (*expr.Expr, error) {
	return EvalString(src, expr.NewData(data), expr.NewRoot())
}

// SubstituteString captures src and replaces symbols bound in vals with
// their captured values.  The result is a new tree; no evaluation occurs and
// symbols absent from vals survive unchanged.  The sibling expr.Substitute
// rewrites a pre-captured tree.
func SubstituteString(src string, vals map[string]interface{}) (*expr.Expr, error) {
	v, err := Capture(src)
	if err != nil {
		return nil, err
	}
	return expr.SubstituteValues(v, vals), nil
}

// Vars captures src and returns the sorted distinct names its evaluation
// would resolve through a binding context, operators and function names
// included.  It answers "what must a context bind for this expression to
// evaluate cleanly" without evaluating anything.  The sibling
// astutil.FreeSymbols inspects a pre-captured tree.
func Vars(src string) ([]string, error) {
	v, err := Capture(src)
	if err != nil {
		return nil, err
	}
	return astutil.FreeSymbols(v), nil
}

// RenderString captures src and renders it back to canonical source text
// wrapped at expr.DefaultRenderWidth.  The sibling expr.Render renders a
// pre-captured tree with explicit width control.
func RenderString(src string) ([]string, error) {
	v, err := Capture(src)
	if err != nil {
		return nil, err
	}
	return expr.Render(v, expr.DefaultRenderWidth), nil
}
