// Copyright © 2024 The quo authors

// Package tracer annotates quo evaluation with distributed tracing spans.
// Install an annotator on a context with expr.Context.SetTracer and every
// function application evaluated under that context produces a span.
package tracer

import "github.com/quolang/quo/expr"

// SkipFilter decides whether a function application should be skipped when
// tracing.  Returning true suppresses the span.
type SkipFilter func(fun *expr.Expr) bool

// tracer carries configuration shared by the annotator implementations.
type tracer struct {
	skipFilter SkipFilter
}

type Option func(*tracer)

// WithSkipFilter suppresses spans for applications fn reports true for.
func WithSkipFilter(fn SkipFilter) Option {
	return func(t *tracer) {
		t.skipFilter = fn
	}
}

// WithSkipFunctions suppresses spans for applications of the named
// functions.  Useful to silence hot arithmetic operators.
func WithSkipFunctions(names ...string) Option {
	skip := make(map[string]bool, len(names))
	for _, name := range names {
		skip[name] = true
	}
	return WithSkipFilter(func(fun *expr.Expr) bool {
		return skip[funName(fun)]
	})
}

func (t *tracer) applyConfigs(opts ...Option) {
	for _, opt := range opts {
		opt(t)
	}
}

// skipTrace is a helper function to decide whether to skip tracing.
func (t *tracer) skipTrace(fun *expr.Expr) bool {
	return t.skipFilter != nil && t.skipFilter(fun)
}

// funName returns a canonical name for fun suitable for span labels.
func funName(fun *expr.Expr) string {
	if fun == nil || fun.Str == "" {
		return "anonymous"
	}
	return fun.Str
}

func getSource(fun *expr.Expr) (string, int) {
	if fun == nil || fun.Source == nil {
		return "no-source", 0
	}
	return fun.Source.File, fun.Source.Line
}
