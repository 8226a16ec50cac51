// Copyright © 2024 The quo authors

package quo_test

import (
	"strings"
	"testing"

	"github.com/quolang/quo"
	"github.com/quolang/quo/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(v *expr.Expr) string {
	return strings.Join(expr.Render(v, expr.DefaultRenderWidth), "\n")
}

func TestCaptureRender(t *testing.T) {
	tests := []struct {
		source   string
		rendered string
	}{
		{"a + b", "a + b"},
		{"f(x, y * 2)", "f(x, y * 2)"},
		{"(a + b) * c", "(a + b) * c"},
		{`"quoted"`, `"quoted"`},
		{"weight * height + offset", "weight * height + offset"},
	}
	for i, test := range tests {
		v, err := quo.Capture(test.source)
		require.NoError(t, err, "test %d", i)
		assert.Equal(t, test.rendered, render(v), "test %d", i)
	}
}

// Captured expressions may reference symbols with no binding anywhere.
// Capture and render never resolve anything.
func TestCaptureDoesNotEvaluate(t *testing.T) {
	v, err := quo.Capture("no_such_symbol + also_unbound(missing)")
	require.NoError(t, err)
	assert.Equal(t, "no_such_symbol + also_unbound(missing)", render(v))

	r := expr.NewRoot().Eval(v)
	require.Equal(t, expr.TError, r.Type)
	gerr := expr.GoError(r).(*expr.ErrorVal)
	assert.Equal(t, "unbound-symbol", gerr.Condition())
}

func TestCaptureEmpty(t *testing.T) {
	_, err := quo.Capture("")
	require.Error(t, err)
	var cerr *expr.ErrorVal
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "parse-error", cerr.Condition())
}

func TestSubstituteRender(t *testing.T) {
	v, err := quo.SubstituteString("a + b", map[string]interface{}{"a": 1, "b": 2})
	require.NoError(t, err)
	assert.Equal(t, "1 + 2", render(v))

	r := expr.Eval(v, nil, expr.NewRoot())
	require.Equal(t, expr.TInt, r.Type)
	assert.Equal(t, 3, r.Int)
}

// Substitution builds a new tree and never mutates its input.
func TestSubstitutePure(t *testing.T) {
	orig := quo.MustCapture("a + b * a")
	sub := expr.SubstituteValues(orig, map[string]interface{}{"a": 10})
	assert.Equal(t, "a + b * a", render(orig))
	assert.Equal(t, "10 + b * 10", render(sub))
}

func TestSubstituteRest(t *testing.T) {
	tmpl := quo.MustCapture("max(lo, ...)")
	sub := expr.Substitute(tmpl, map[string]*expr.Expr{
		expr.DotsSymbol: expr.List(quo.MustCapture("a + 1"), expr.Int(7)),
	})
	assert.Equal(t, "max(lo, a + 1, 7)", render(sub))
	assert.Equal(t, "max(lo, ...)", render(tmpl))
}

func TestSubstituteRename(t *testing.T) {
	tmpl := quo.MustCapture("f(x)")
	sub := expr.Substitute(tmpl, map[string]*expr.Expr{"f": expr.Symbol("len")})
	assert.Equal(t, "len(x)", render(sub))
}

func TestEvalString(t *testing.T) {
	r, err := quo.EvalStringData("weight / (height * height)", map[string]interface{}{
		"weight": 80.0,
		"height": 2.0,
	})
	require.NoError(t, err)
	assert.Equal(t, expr.TFloat, r.Type)
	assert.Equal(t, 20.0, r.Float)
}

// A single captured tree evaluates to different results under different
// binding contexts.
func TestEvalManyContexts(t *testing.T) {
	v := quo.MustCapture("x * x + 1")
	root := expr.NewRoot()
	for _, x := range []int{0, 3, 10} {
		r := expr.Eval(v, expr.Data{"x": expr.Int(x)}, root)
		require.Equal(t, expr.TInt, r.Type)
		assert.Equal(t, x*x+1, r.Int)
	}
}

// When the primary scope is itself a context the fallback argument is
// ignored and only the context's own parent chain is consulted.
func TestEvalContextIgnoresFallback(t *testing.T) {
	fallback := expr.NewRoot()
	fallback.Put("y", expr.Int(99))

	primary := expr.NewRoot().Child()
	primary.Put("x", expr.Int(1))

	r := expr.Eval(quo.MustCapture("x + 1"), primary, fallback)
	require.Equal(t, expr.TInt, r.Type)
	assert.Equal(t, 2, r.Int)

	r = expr.Eval(quo.MustCapture("y"), primary, fallback)
	require.Equal(t, expr.TError, r.Type)
	gerr := expr.GoError(r).(*expr.ErrorVal)
	assert.Equal(t, "unbound-symbol", gerr.Condition())
}

// Capturing from text and building the tree programmatically produce
// equivalent expressions.
func TestCaptureProgrammaticEquivalence(t *testing.T) {
	captured := quo.MustCapture("a + f(b, 2)")
	built := expr.Call("+",
		expr.Symbol("a"),
		expr.Call("f", expr.Symbol("b"), expr.Int(2)),
	)
	assert.True(t, captured.Equal(built), "captured %v != built %v", captured, built)
	assert.Equal(t, render(captured), render(built))
}

func TestRenderString(t *testing.T) {
	segs, err := quo.RenderString("(a+b) * c")
	require.NoError(t, err)
	assert.Equal(t, []string{"(a + b) * c"}, segs)
}

func TestRenderStringMultiSegment(t *testing.T) {
	src := "alpha_value + beta_value + gamma_value + delta_value + epsilon_value + zeta_value + eta_value"
	segs, err := quo.RenderString(src)
	require.NoError(t, err)
	assert.Greater(t, len(segs), 1, "long expressions render to multiple segments")
	joined := strings.Join(segs, " ")
	assert.Equal(t, src, joined)
}

func TestVars(t *testing.T) {
	names, err := quo.Vars("weight / (height * height)")
	require.NoError(t, err)
	assert.Equal(t, []string{"*", "/", "height", "weight"}, names)

	_, err = quo.Vars("1 +")
	require.Error(t, err)
}

func TestEvalStringError(t *testing.T) {
	_, err := quo.EvalStringData("1 / 0", nil)
	require.Error(t, err)
	var cerr *expr.ErrorVal
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "divide-by-zero", cerr.Condition())
}
