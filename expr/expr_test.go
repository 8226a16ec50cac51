// Copyright © 2024 The quo authors

package expr_test

import (
	"testing"

	"github.com/quolang/quo/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	tests := []struct {
		native interface{}
		typ    expr.Type
	}{
		{1, expr.TInt},
		{int64(2), expr.TInt},
		{1.5, expr.TFloat},
		{"hi", expr.TString},
		{true, expr.TSymbol},
		{[]*expr.Expr{expr.Int(1)}, expr.TList},
		{expr.Symbol("x"), expr.TSymbol},
	}
	for i, test := range tests {
		v := expr.Value(test.native)
		assert.Equal(t, test.typ, v.Type, "test %d: %v", i, test.native)
	}
	lerr := expr.Value(struct{}{})
	require.Equal(t, expr.TError, lerr.Type)
	gerr := expr.GoError(lerr).(*expr.ErrorVal)
	assert.Equal(t, expr.ConditionType, gerr.Condition())
}

func TestValueIdentity(t *testing.T) {
	v := expr.Call("+", expr.Symbol("a"), expr.Int(1))
	assert.Same(t, v, expr.Value(v))
	assert.Same(t, v, expr.Quote(v))
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b  *expr.Expr
		equal bool
	}{
		{expr.Int(1), expr.Int(1), true},
		{expr.Int(1), expr.Int(2), false},
		{expr.Int(1), expr.Float(1), true},
		{expr.Float(2.5), expr.Float(2.5), true},
		{expr.String("a"), expr.String("a"), true},
		{expr.String("a"), expr.Symbol("a"), false},
		{expr.Symbol("x"), expr.Symbol("x"), true},
		{
			expr.Call("+", expr.Symbol("a"), expr.Int(1)),
			expr.Call("+", expr.Symbol("a"), expr.Int(1)),
			true,
		},
		{
			expr.Call("+", expr.Symbol("a"), expr.Int(1)),
			expr.Call("+", expr.Symbol("a"), expr.Int(2)),
			false,
		},
		{
			expr.Call("+", expr.Symbol("a")),
			expr.Call("-", expr.Symbol("a")),
			false,
		},
		{expr.List(expr.Int(1)), expr.List(expr.Int(1)), true},
		{expr.List(expr.Int(1)), expr.List(), false},
	}
	for i, test := range tests {
		assert.Equal(t, test.equal, test.a.Equal(test.b), "test %d: %v == %v", i, test.a, test.b)
		assert.Equal(t, test.equal, test.b.Equal(test.a), "test %d (sym): %v == %v", i, test.b, test.a)
	}
}

func TestCopy(t *testing.T) {
	orig := expr.Call("+", expr.Symbol("a"), expr.Call("*", expr.Int(2), expr.Symbol("b")))
	dup := orig.Copy()
	require.True(t, orig.Equal(dup))

	dup.Cells[1].Cells[0].Int = 99
	assert.Equal(t, 2, orig.Cells[1].Cells[0].Int, "copies do not share cells")
}

func TestIsTrue(t *testing.T) {
	assert.True(t, expr.Bool(true).IsTrue())
	assert.False(t, expr.Bool(false).IsTrue())
	assert.True(t, expr.Symbol(expr.TrueSymbol).IsTrue())
}

func TestIsDots(t *testing.T) {
	assert.True(t, expr.Dots().IsDots())
	assert.False(t, expr.Symbol("xs").IsDots())
}

func TestLen(t *testing.T) {
	assert.Equal(t, 3, expr.String("abc").Len())
	assert.Equal(t, 2, expr.List(expr.Int(1), expr.Int(2)).Len())
	assert.Equal(t, -1, expr.Int(1).Len())
}

func TestString(t *testing.T) {
	tests := []struct {
		v *expr.Expr
		s string
	}{
		{expr.Int(-4), "-4"},
		{expr.Float(2), "2.0"},
		{expr.String("a b"), `"a b"`},
		{expr.Symbol("x"), "x"},
		{expr.Call("+", expr.Symbol("a"), expr.Int(1)), "a + 1"},
		{expr.List(expr.Int(1), expr.Int(2)), "[1, 2]"},
	}
	for i, test := range tests {
		assert.Equal(t, test.s, test.v.String(), "test %d", i)
	}
}
