// Copyright © 2024 The quo authors

package expr_test

import (
	"testing"

	"github.com/quolang/quo/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func condition(t *testing.T, v *expr.Expr) string {
	t.Helper()
	require.Equal(t, expr.TError, v.Type)
	return expr.GoError(v).(*expr.ErrorVal).Condition()
}

func TestEvalLiterals(t *testing.T) {
	root := expr.NewRoot()
	for _, v := range []*expr.Expr{expr.Int(4), expr.Float(1.5), expr.String("s")} {
		assert.Same(t, v, root.Eval(v))
	}
}

func TestEvalBooleans(t *testing.T) {
	r := expr.Eval(expr.Symbol("true"), nil, nil)
	assert.True(t, r.IsTrue())
	r = expr.Eval(expr.Symbol("false"), nil, nil)
	require.Equal(t, expr.TSymbol, r.Type)
	assert.False(t, r.IsTrue())
}

func TestEvalPrimaryShadowsFallback(t *testing.T) {
	fallback := expr.NewRoot()
	fallback.Put("x", expr.Int(1))
	primary := expr.Data{"x": expr.Int(2)}

	r := expr.Eval(expr.Symbol("x"), primary, fallback)
	require.Equal(t, expr.TInt, r.Type)
	assert.Equal(t, 2, r.Int)
}

func TestEvalFallbackChain(t *testing.T) {
	root := expr.NewRoot()
	root.Put("base", expr.Int(10))
	child := root.Child()
	child.Put("offset", expr.Int(5))

	v := expr.Call("+", expr.Symbol("base"), expr.Symbol("offset"))
	r := expr.Eval(v, expr.Data{}, child)
	require.Equal(t, expr.TInt, r.Type)
	assert.Equal(t, 15, r.Int)
}

// A primary scope that is itself a context carries a complete lookup chain,
// so the separate fallback argument is ignored entirely.
func TestEvalContextPrimaryIgnoresFallback(t *testing.T) {
	fallback := expr.NewRoot()
	fallback.Put("hidden", expr.Int(1))

	primary := expr.NewRoot().Child()
	r := expr.Eval(expr.Symbol("hidden"), primary, fallback)
	assert.Equal(t, expr.ConditionUnbound, condition(t, r))
}

func TestEvalNilScopes(t *testing.T) {
	r := expr.Eval(expr.Symbol("x"), nil, nil)
	assert.Equal(t, expr.ConditionUnbound, condition(t, r))

	r = expr.Eval(expr.Call("+", expr.Int(1), expr.Int(2)), nil, nil)
	assert.Equal(t, expr.ConditionUnbound, condition(t, r))
}

func TestEvalUnboundSymbolData(t *testing.T) {
	r := expr.NewRoot().Eval(expr.Symbol("missing_name"))
	require.Equal(t, expr.TError, r.Type)
	// The missing identifier rides along as error data for programmatic
	// inspection.
	require.Len(t, r.Cells, 2)
	assert.Equal(t, expr.TSymbol, r.Cells[1].Type)
	assert.Equal(t, "missing_name", r.Cells[1].Str)
	// The data cell is not part of the rendered message, which names the
	// identifier exactly once.
	cerr := expr.GoError(r).(*expr.ErrorVal)
	assert.Equal(t, "unbound symbol: missing_name", cerr.ErrorMessage())
}

func TestEvalNotCallable(t *testing.T) {
	root := expr.NewRoot()
	root.Put("f", expr.Int(1))
	r := root.Eval(expr.Call("f", expr.Int(2)))
	assert.Equal(t, expr.ConditionNotCallable, condition(t, r))
}

func TestEvalArity(t *testing.T) {
	root := expr.NewRoot()
	r := root.Eval(expr.Call("abs", expr.Int(1), expr.Int(2)))
	assert.Equal(t, expr.ConditionArity, condition(t, r))

	r = root.Eval(expr.Call("/", expr.Int(1)))
	assert.Equal(t, expr.ConditionArity, condition(t, r))
}

func TestEvalArgumentErrorPropagates(t *testing.T) {
	root := expr.NewRoot()
	v := expr.Call("+", expr.Int(1), expr.Call("/", expr.Int(1), expr.Int(0)))
	r := root.Eval(v)
	assert.Equal(t, expr.ConditionDivideByZero, condition(t, r))
}

func TestEvalDoesNotMutate(t *testing.T) {
	root := expr.NewRoot()
	root.Put("x", expr.Int(3))
	v := expr.Call("*", expr.Symbol("x"), expr.Symbol("x"))
	before := v.Copy()
	r := root.Eval(v)
	require.Equal(t, 9, r.Int)
	assert.True(t, before.Equal(v), "evaluation must not rewrite the captured tree")
}

func TestEvalCustomBuiltin(t *testing.T) {
	root := expr.NewRoot()
	root.Put("twice", expr.Fun("twice", 1, func(args []*expr.Expr) *expr.Expr {
		return expr.Call("+", args[0], args[0]).Copy()
	}))
	// A builtin may return an unevaluated tree; the caller decides whether
	// to evaluate it further.
	r := root.Eval(expr.Call("twice", expr.Int(2)))
	require.Equal(t, expr.TCall, r.Type)
	rr := root.Eval(r)
	require.Equal(t, expr.TInt, rr.Type)
	assert.Equal(t, 4, rr.Int)
}

type countingTracer struct {
	started []string
	ended   int
}

func (c *countingTracer) Start(fun *expr.Expr) func() {
	c.started = append(c.started, fun.Str)
	return func() { c.ended++ }
}

func TestEvalTracer(t *testing.T) {
	tr := &countingTracer{}
	root := expr.NewRoot()
	root.SetTracer(tr)
	v := expr.Call("+", expr.Int(1), expr.Call("*", expr.Int(2), expr.Int(3)))
	r := root.Eval(v)
	require.Equal(t, 7, r.Int)
	assert.Equal(t, []string{"*", "+"}, tr.started)
	assert.Equal(t, 2, tr.ended)
}

func TestEvalTracerFromFallback(t *testing.T) {
	tr := &countingTracer{}
	fallback := expr.NewRoot()
	fallback.SetTracer(tr)
	r := expr.Eval(expr.Call("+", expr.Int(1), expr.Int(1)), expr.Data{}, fallback)
	require.Equal(t, 2, r.Int)
	assert.Equal(t, []string{"+"}, tr.started)
}
