// Copyright © 2024 The quo authors

// Package exprtest provides utilities for testing quo expressions.
package exprtest

import (
	"strings"
	"testing"

	"github.com/quolang/quo/expr"
	"github.com/quolang/quo/parser"
)

// Runner evaluates test sequences against freshly constructed contexts.
type Runner struct {
	// Data is bound in the primary scope of every evaluation.  When Data is
	// nil expressions evaluate directly in a root context.
	Data map[string]interface{}

	// Setup runs against the root context before any expression in a
	// sequence is evaluated.  Any error value returned is reported as a test
	// failure.
	Setup func(*expr.Context) *expr.Expr
}

// TestSequence is a sequence of expressions which are evaluated in order
// against a shared binding context.
type TestSequence []struct {
	Expr   string // expression source text
	Result string // the evaluated result, rendered
}

// TestSuite is a set of named TestSequences.
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests against isolated contexts.
func (r *Runner) RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			root := expr.NewRoot()
			if r.Setup != nil {
				if lerr := r.Setup(root); lerr != nil && lerr.Type == expr.TError {
					t.Errorf("test %d %q: setup: %v", i, test.Name, expr.GoError(lerr))
					return
				}
			}
			for j, step := range test.TestSequence {
				v, err := parser.ParseExpressionString("test", step.Expr)
				if err != nil {
					t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
					continue
				}
				result := r.eval(root, v)
				rendered := strings.Join(expr.Render(result, expr.DefaultRenderWidth), "\n")
				if rendered != step.Result {
					t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, step.Result, rendered)
				}
			}
		})
	}
}

func (r *Runner) eval(root *expr.Context, v *expr.Expr) *expr.Expr {
	if r.Data == nil {
		return root.Eval(v)
	}
	return expr.Eval(v, expr.NewData(r.Data), root)
}

// RunTestSuite runs tests with a zero-value Runner.
func RunTestSuite(t *testing.T, tests TestSuite) {
	r := &Runner{}
	r.RunTestSuite(t, tests)
}

// RunBenchmark runs a standard benchmark that repeatedly evaluates
// expressions parsed from source.
func RunBenchmark(b *testing.B, source string) {
	exprs, err := parser.ParseString("benchmark", source)
	if err != nil {
		b.Fatalf("parse error: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		root := expr.NewRoot()
		for j, v := range exprs {
			lerr := root.Eval(v)
			if lerr.Type == expr.TError {
				b.Fatalf("expr %d: %v", j, expr.GoError(lerr))
			}
		}
	}
}
