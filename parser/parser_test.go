// Copyright © 2024 The quo authors

package parser_test

import (
	"strings"
	"testing"

	"github.com/quolang/quo/expr"
	"github.com/quolang/quo/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	exprs, err := parser.Parse("test", strings.NewReader("1 + 2\nf(x, y)\n"))
	require.NoError(t, err)
	require.Len(t, exprs, 2)
	assert.Equal(t, expr.TCall, exprs[0].Type)
	assert.Equal(t, "+", exprs[0].Str)
}

func TestParseExpressionString(t *testing.T) {
	v, err := parser.ParseExpressionString("test", "a * (b + c)")
	require.NoError(t, err)
	assert.Equal(t, []string{"a * (b + c)"}, expr.Render(v, expr.DefaultRenderWidth))
}

func TestParseExpressionStringEmpty(t *testing.T) {
	_, err := parser.ParseExpressionString("test", "")
	require.Error(t, err)
	var cerr *expr.ErrorVal
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "parse-error", cerr.Condition())
}

func TestParseExpressionStringTrailing(t *testing.T) {
	_, err := parser.ParseExpressionString("test", "1 2")
	require.Error(t, err)
	var cerr *expr.ErrorVal
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "parse-error", cerr.Condition())
}
