// Copyright © 2024 The quo authors

package tracer

import (
	"context"

	"github.com/quolang/quo/expr"
	"go.opencensus.io/trace"
)

var _ expr.Tracer = &ocAnnotator{}

type ocAnnotator struct {
	tracer
	currentContext context.Context
	currentSpan    *trace.Span
	contexts       []context.Context
}

// NewOpenCensusAnnotator returns an expr.Tracer that records an opencensus
// span for every function application.
func NewOpenCensusAnnotator(parentContext context.Context, opts ...Option) expr.Tracer {
	if parentContext == nil {
		parentContext = context.Background()
	}
	p := &ocAnnotator{
		currentContext: parentContext,
	}
	p.tracer.applyConfigs(opts...)
	return p
}

// Start implements expr.Tracer.
func (p *ocAnnotator) Start(fun *expr.Expr) func() {
	if p.skipTrace(fun) {
		return func() {}
	}
	p.contexts = append(p.contexts, p.currentContext)
	p.currentContext, p.currentSpan = trace.StartSpan(p.currentContext, funName(fun))
	file, line := getSource(fun)
	p.currentSpan.Annotate([]trace.Attribute{
		trace.StringAttribute("file", file),
		trace.Int64Attribute("line", int64(line)),
	}, "source")
	return func() {
		p.currentSpan.End()
		// And pop the current context back
		n := len(p.contexts)
		p.currentContext = p.contexts[n-1]
		p.contexts = p.contexts[:n-1]
		p.currentSpan = trace.FromContext(p.currentContext)
	}
}
