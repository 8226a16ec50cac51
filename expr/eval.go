// Copyright © 2024 The quo authors

package expr

// Eval computes the value of the captured expression v.  Free names resolve
// first against the primary scope and then, only when absent there, against
// the fallback context and its ancestors.  Either argument may be nil.
//
// When primary is itself a *Context it is a complete lookup chain and the
// fallback argument is ignored.  Builtin functions normally come from the
// fallback (or a root context used as primary); evaluating a call with no
// context on the resolution path yields an unbound-symbol error for the
// function name like any other free name.
//
// Eval does not modify v.  Failures are reported as TError values; an
// unresolved name produces the distinct unbound-symbol condition naming the
// missing identifier.
func Eval(v *Expr, primary Scope, fallback *Context) *Expr {
	e := evaluator{primary: primary, fallback: fallback}
	if ctx, ok := primary.(*Context); ok {
		// The primary context carries its own ancestor chain.
		e.fallback = nil
		e.tracer = ctx.findTracer()
	} else if fallback != nil {
		e.tracer = fallback.findTracer()
	}
	return e.eval(v)
}

// Eval evaluates v with ctx as the complete lookup chain.
func (ctx *Context) Eval(v *Expr) *Expr {
	return Eval(v, ctx, nil)
}

type evaluator struct {
	primary  Scope
	fallback *Context
	tracer   Tracer
}

func (e *evaluator) resolve(name string) (*Expr, bool) {
	if e.primary != nil {
		if v, ok := e.primary.Resolve(name); ok {
			return v, true
		}
	}
	if e.fallback != nil {
		return e.fallback.Resolve(name)
	}
	return nil, false
}

func (e *evaluator) eval(v *Expr) *Expr {
	switch v.Type {
	case TSymbol:
		switch v.Str {
		case TrueSymbol:
			return singletonTrue
		case FalseSymbol:
			return singletonFalse
		}
		x, ok := e.resolve(v.Str)
		if !ok {
			return unboundSymbol(v)
		}
		return x
	case TCall:
		return e.evalCall(v)
	default:
		// Literals, lists, functions, and errors evaluate to themselves.
		return v
	}
}

func (e *evaluator) evalCall(v *Expr) *Expr {
	fun, ok := e.resolve(v.Str)
	if !ok {
		lerr := unboundSymbol(Symbol(v.Str))
		lerr.Source = v.Source
		return lerr
	}
	if fun.Type == TError {
		return fun
	}
	if fun.Type != TBuiltin {
		return e.errLoc(v, ErrorConditionf(ConditionNotCallable, "symbol %s is not bound to a function: %v", v.Str, fun.Type))
	}
	if fun.Int >= 0 && fun.Int != len(v.Cells) {
		return e.errLoc(v, ErrorConditionf(ConditionArity, "%s: invalid number of arguments: %d", v.Str, len(v.Cells)))
	}
	args := make([]*Expr, len(v.Cells))
	for i, cell := range v.Cells {
		x := e.eval(cell)
		if x.Type == TError {
			return x
		}
		args[i] = x
	}
	if e.tracer != nil {
		defer e.tracer.Start(fun)()
	}
	r := fun.Builtin()(args)
	if r == nil {
		panic("nil Expr returned from function call")
	}
	if r.Type == TError {
		return e.errLoc(v, r)
	}
	return r
}

// errLoc stamps the call site location onto error values that lack a real
// source location so failures point at the expression being evaluated.
func (e *evaluator) errLoc(v *Expr, lerr *Expr) *Expr {
	if lerr.Source == nil || lerr.Source.Pos < 0 {
		lerr.Source = v.Source
	}
	return lerr
}
