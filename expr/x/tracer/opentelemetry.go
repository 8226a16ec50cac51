// Copyright © 2024 The quo authors

package tracer

import (
	"context"

	"github.com/quolang/quo/expr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

type contextKey string

// ContextOpenTelemetryTracerKey looks up a tracer name from a context key.
const ContextOpenTelemetryTracerKey contextKey = "otelTracer"

var _ expr.Tracer = &otelAnnotator{}

type otelAnnotator struct {
	tracer
	currentContext context.Context
	currentSpan    trace.Span
}

// NewOpenTelemetryAnnotator returns an expr.Tracer that records an
// opentelemetry span for every function application.  Spans nest the way
// evaluation nests and attach to any trace already present on parentContext.
func NewOpenTelemetryAnnotator(parentContext context.Context, opts ...Option) expr.Tracer {
	if parentContext == nil {
		parentContext = context.Background()
	}
	p := &otelAnnotator{
		currentContext: parentContext,
	}
	p.tracer.applyConfigs(opts...)
	return p
}

func contextTracer(ctx context.Context) trace.Tracer {
	tracerName, ok := ctx.Value(ContextOpenTelemetryTracerKey).(string)
	if !ok {
		tracerName = "quo"
	}
	return otel.GetTracerProvider().Tracer(tracerName)
}

// Start implements expr.Tracer.
func (p *otelAnnotator) Start(fun *expr.Expr) func() {
	if p.skipTrace(fun) {
		return func() {}
	}
	oldContext := p.currentContext
	name := funName(fun)
	p.currentContext, p.currentSpan = contextTracer(p.currentContext).Start(p.currentContext, name)
	p.addCodeAttributes(fun, name)
	return func() {
		p.currentSpan.End()
		// And pop the current context back
		p.currentContext = oldContext
		p.currentSpan = trace.SpanFromContext(p.currentContext)
	}
}

func (p *otelAnnotator) addCodeAttributes(fun *expr.Expr, name string) {
	file, line := getSource(fun)
	attrs := []attribute.KeyValue{
		semconv.CodeFunction(name),
		semconv.CodeFilepath(file),
		semconv.CodeLineNumber(line),
	}
	p.currentSpan.SetAttributes(attrs...)
}
