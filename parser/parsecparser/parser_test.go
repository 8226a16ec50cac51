// Copyright © 2024 The quo authors

package parsecparser_test

import (
	"testing"

	"github.com/quolang/quo/expr"
	"github.com/quolang/quo/parser/parsecparser"
	"github.com/quolang/quo/parser/rdparser"
	"github.com/quolang/quo/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseAgainstRDParser parses sources with both parsers and requires
// structurally equal results.
func TestParseAgainstRDParser(t *testing.T) {
	tests := []string{
		"1",
		"2.5",
		"-3",
		`"hello world"`,
		"x",
		"a + b",
		"a + b * c",
		"(a + b) * c",
		"a - b - c",
		"-x * y",
		"-(x + y)",
		"f()",
		"f(a, b + 1)",
		"g(...)",
		"f(g(a), h())",
		"a == b + 1",
		"max(a, b) > 0",
		"a % 2 == 0",
		"1 + 2\nf(x)",
		"x # comment\ny",
	}
	for i, src := range tests {
		want, err := rdparser.New(token.NewScannerString("test", src)).ParseProgram()
		require.NoError(t, err, "test %d: %q", i, src)
		got, err := parsecparser.ParseExprString(src)
		if !assert.NoError(t, err, "test %d: %q", i, src) {
			continue
		}
		if !assert.Equal(t, len(want), len(got), "test %d: %q", i, src) {
			continue
		}
		for j := range want {
			assert.True(t, want[j].Equal(got[j]), "test %d expr %d: %q parsed as %v (want %v)",
				i, j, src, got[j], want[j])
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		")",
		"f(a b)",
		"(a + b",
		"@",
	}
	for i, src := range tests {
		_, err := parsecparser.ParseExprString(src)
		assert.Error(t, err, "test %d: %q", i, src)
	}
}

func TestParseEmpty(t *testing.T) {
	exprs, err := parsecparser.ParseExprString("  # nothing here\n")
	require.NoError(t, err)
	assert.Len(t, exprs, 0)
}

func TestParseBytesRead(t *testing.T) {
	src := []byte("1 + 2")
	exprs, n, err := parsecparser.ParseExpr(src)
	require.NoError(t, err)
	require.Len(t, exprs, 1)
	assert.Equal(t, len(src), n)
	assert.Equal(t, expr.TCall, exprs[0].Type)
}
