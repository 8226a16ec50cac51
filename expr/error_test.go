// Copyright © 2024 The quo authors

package expr_test

import (
	"errors"
	"testing"

	"github.com/quolang/quo/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoErrorNil(t *testing.T) {
	assert.NoError(t, expr.GoError(expr.Int(1)))
	assert.NoError(t, expr.GoError(expr.Symbol("x")))
}

func TestGoErrorNative(t *testing.T) {
	cause := errors.New("boom")
	err := expr.GoError(expr.Error(cause))
	assert.Same(t, cause, err, "native errors cross back unwrapped")
}

func TestErrorVal(t *testing.T) {
	lerr := expr.ErrorConditionf("type-error", "bad argument: %v", "x")
	err := expr.GoError(lerr)
	require.Error(t, err)
	cerr, ok := err.(*expr.ErrorVal)
	require.True(t, ok)
	assert.Equal(t, "type-error", cerr.Condition())
	assert.Equal(t, "bad argument: x", cerr.ErrorMessage())
	assert.Equal(t, "type-error: bad argument: x", cerr.Error())
}

func TestErrorValPlainCondition(t *testing.T) {
	lerr := expr.Errorf("it broke")
	cerr := expr.GoError(lerr).(*expr.ErrorVal)
	assert.Equal(t, "error", cerr.Condition())
	assert.Equal(t, "it broke", cerr.Error(), "the default condition is not printed")
}
