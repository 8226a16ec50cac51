// Copyright © 2024 The quo authors

package expr

// Scope resolves free names during evaluation.  It is satisfied by both Data
// (a plain mapping) and *Context (a chained lookup context).
type Scope interface {
	// Resolve returns the value bound to name and true, or nil and false when
	// name is absent.
	Resolve(name string) (*Expr, bool)
}

// Data is a plain name-to-value mapping used as a primary binding context,
// e.g. the fields of a record.  Unlike a Context, Data has no parent link;
// names absent from the map fall through to the fallback context supplied to
// Eval.
type Data map[string]*Expr

// NewData builds a Data mapping from native Go values using Value.
func NewData(m map[string]interface{}) Data {
	d := make(Data, len(m))
	for k, v := range m {
		d[k] = Value(v)
	}
	return d
}

// Resolve implements Scope.
func (d Data) Resolve(name string) (*Expr, bool) {
	v, ok := d[name]
	return v, ok
}

// Context is a chained binding context.  Names are resolved against Scope
// first and then against Parent and its ancestors.  A Context used as the
// primary binding argument of Eval is a complete lookup chain: the fallback
// argument is ignored.
type Context struct {
	Scope  map[string]*Expr
	Parent *Context

	// tracer, when set on a context in the chain, is notified of every
	// function application evaluated under that chain.
	tracer Tracer
}

// NewContext initializes and returns a new Context with the given parent.
// The parent may be nil.
func NewContext(parent *Context) *Context {
	return &Context{
		Scope:  make(map[string]*Expr),
		Parent: parent,
	}
}

// NewRoot returns a context with the builtin operators and functions bound.
// It is the conventional fallback context for evaluation.
func NewRoot() *Context {
	ctx := NewContext(nil)
	for _, f := range DefaultBuiltins() {
		ctx.Scope[f.Str] = f
	}
	return ctx
}

// Child returns a new empty context whose parent is ctx.
func (ctx *Context) Child() *Context {
	return NewContext(ctx)
}

// Put binds name to v in ctx.  If name is already bound locally the binding
// is replaced.  The boolean constants cannot be rebound.
func (ctx *Context) Put(name string, v *Expr) *Expr {
	if name == TrueSymbol || name == FalseSymbol {
		return Errorf("cannot rebind constant: %v", name)
	}
	ctx.Scope[name] = v
	return v
}

// Bind is a convenience that binds name to the trivial capture of a native Go
// value.
func (ctx *Context) Bind(name string, v interface{}) *Expr {
	return ctx.Put(name, Value(v))
}

// Resolve implements Scope.  Resolution walks the parent chain.
func (ctx *Context) Resolve(name string) (*Expr, bool) {
	for c := ctx; c != nil; c = c.Parent {
		if v, ok := c.Scope[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// SetTracer installs a Tracer notified of function applications evaluated
// with ctx (or any child context) on the resolution chain.  Passing nil
// removes a previously installed tracer.
func (ctx *Context) SetTracer(t Tracer) {
	ctx.tracer = t
}

func (ctx *Context) findTracer() Tracer {
	for c := ctx; c != nil; c = c.Parent {
		if c.tracer != nil {
			return c.tracer
		}
	}
	return nil
}

// Tracer observes function applications during evaluation.  Implementations
// annotate evaluation with spans or timing data; see the x/tracer package.
type Tracer interface {
	// Start is invoked before fun is applied.  The returned function is
	// invoked when the application completes.
	Start(fun *Expr) func()
}
