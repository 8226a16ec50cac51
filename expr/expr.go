// Copyright © 2024 The quo authors

package expr

import (
	"github.com/quolang/quo/parser/token"
)

// Type is the type of an Expr node.
type Type uint

// Possible Type values.
const (
	// TInvalid (0) is not a valid node type.
	TInvalid Type = iota
	// TInt values store an int in the Expr.Int field.
	TInt
	// TFloat values store a float64 in the Expr.Float field.
	TFloat
	// TString values store a string in the Expr.Str field.
	TString
	// TSymbol values store a name in the Expr.Str field.  Symbols are the
	// free names resolved against binding contexts during evaluation.
	TSymbol
	// TCall values represent the application of a named operator or function.
	// The name is stored in Expr.Str and the argument expressions in
	// Expr.Cells.  Binary operators are uniform calls: ``a + b'' is the call
	// +(a, b) and rendering restores the infix notation.
	TCall
	// TList values hold a sequence of expressions in Expr.Cells.  Lists
	// evaluate to themselves and are the replacement form for the
	// rest-arguments placeholder during substitution.
	TList
	// TBuiltin values store a Builtin in the Expr.Native field and the
	// function's name in Expr.Str.  The Int field holds the expected argument
	// count, or -1 for variadic functions.
	TBuiltin
	// TError values store an error condition symbol in Expr.Str and the
	// following items in the Expr.Cells slice:
	//		[0] the error message (a string) or a native Go error
	//		[1:] error data (of any type)
	TError
	// TTypeMax is not a real type but represents a value numerically greater
	// than all valid Type values.
	TTypeMax
)

var typeStrings = []string{
	TInvalid: "INVALID",
	TInt:     "int",
	TFloat:   "float",
	TString:  "string",
	TSymbol:  "symbol",
	TCall:    "call",
	TList:    "list",
	TBuiltin: "function",
	TError:   "error",
}

func (t Type) String() string {
	if t >= Type(len(typeStrings)) {
		return typeStrings[TInvalid]
	}
	return typeStrings[t]
}

// DotsSymbol is the rest-arguments placeholder.  A call argument written as
// ``...'' stands for a sequence of trailing arguments supplied separately, and
// substitution replaces it with the full captured sequence.
const DotsSymbol = "..."

// TrueSymbol and FalseSymbol are the boolean constants.  They resolve to
// themselves in every binding context and cannot be rebound.
const (
	TrueSymbol  = "true"
	FalseSymbol = "false"
)

// Expr is a captured expression: an immutable tree representation of source
// syntax.  Two captures of the same source text are interchangeable; identity
// is purely structural.  Operations on Expr values never mutate their inputs.
type Expr struct {
	// Native is generic storage for data which cannot be represented
	// structurally (builtin functions, wrapped Go errors).
	Native interface{}

	// Source is the node's originating location in source code.  Programs
	// should not modify the contents of Source as the reference may be shared
	// by multiple nodes.
	Source *token.Location

	// Str is used by TString, TSymbol, TCall, TBuiltin and TError values.
	Str string

	// Cells is the backing storage for child nodes.
	Cells []*Expr

	// Type is the node type.
	Type Type

	// Fields used for numeric types.
	Int   int
	Float float64
}

// Builtin is a native Go function callable during evaluation.  A builtin
// receives fully evaluated arguments and must not retain the args slice.
type Builtin func(args []*Expr) *Expr

// Singleton values for true and false.  They are shared, immutable values
// returned by Bool() and produced by every comparison.  Callers must not
// mutate any field on the returned pointer.
var (
	singletonTrue  = &Expr{Source: nativeSource(), Type: TSymbol, Str: TrueSymbol}
	singletonFalse = &Expr{Source: nativeSource(), Type: TSymbol, Str: FalseSymbol}
)

// Bool returns an Expr with truthiness identical to b.
//
// The returned value is a shared singleton and must not be mutated.
func Bool(b bool) *Expr {
	if b {
		return singletonTrue
	}
	return singletonFalse
}

// Int returns an Expr representing the number x.
func Int(x int) *Expr {
	return &Expr{
		Source: nativeSource(),
		Type:   TInt,
		Int:    x,
	}
}

// Float returns an Expr representing the number x.
func Float(x float64) *Expr {
	return &Expr{
		Source: nativeSource(),
		Type:   TFloat,
		Float:  x,
	}
}

// String returns an Expr representing the string str.
func String(str string) *Expr {
	return &Expr{
		Source: nativeSource(),
		Type:   TString,
		Str:    str,
	}
}

// Symbol returns an Expr representing the name s.
func Symbol(s string) *Expr {
	return &Expr{
		Source: nativeSource(),
		Type:   TSymbol,
		Str:    s,
	}
}

// Dots returns an Expr representing the rest-arguments placeholder.
func Dots() *Expr {
	return Symbol(DotsSymbol)
}

// Call returns an Expr representing application of the named operator or
// function to args.  Provided args are used as backing storage for the
// returned expression and are not copied.
func Call(name string, args ...*Expr) *Expr {
	return &Expr{
		Source: nativeSource(),
		Type:   TCall,
		Str:    name,
		Cells:  args,
	}
}

// List returns an Expr holding a sequence of expressions.  Provided cells are
// used as backing storage for the returned list and are not copied.
func List(cells ...*Expr) *Expr {
	return &Expr{
		Source: nativeSource(),
		Type:   TList,
		Cells:  cells,
	}
}

// Fun returns an Expr representing a builtin function.  The arity argument is
// the required argument count, or a negative value for variadic functions.
func Fun(name string, arity int, fn Builtin) *Expr {
	return &Expr{
		Source: nativeSource(),
		Type:   TBuiltin,
		Str:    name,
		Int:    arity,
		Native: fn,
	}
}

// Quote is the identity capture: an already-captured expression is its own
// capture.  It exists so that code written against the capturing entry points
// can be composed with pre-built trees without re-capturing the wrong syntax.
func Quote(v *Expr) *Expr {
	return v
}

// Value is the trivial capture of an already-computed value, for use where no
// source syntax is available.  Types which can be represented directly are
// converted to the appropriate Expr; a value of any other type yields a
// type-error value.  Capturing a *Expr returns it unchanged (an identity
// capture).
func Value(v interface{}) *Expr {
	switch v := v.(type) {
	case *Expr:
		return v
	case bool:
		return Bool(v)
	case string:
		return String(v)
	case int:
		return Int(v)
	case int64:
		return Int(int(v))
	case float64:
		return Float(v)
	case []*Expr:
		return List(v...)
	default:
		return ErrorConditionf(ConditionType, "cannot capture value of type %T", v)
	}
}

// Builtin returns the native function stored in v.  Builtin panics if v.Type
// is not TBuiltin.
func (v *Expr) Builtin() Builtin {
	if v.Type != TBuiltin {
		panic("not a function: " + v.Type.String())
	}
	return v.Native.(Builtin)
}

// Len returns the number of child nodes of v, or -1 when v is not a call or
// list node.
func (v *Expr) Len() int {
	switch v.Type {
	case TCall, TList:
		return len(v.Cells)
	case TString:
		return len(v.Str)
	default:
		return -1
	}
}

// IsDots returns true if v is the rest-arguments placeholder.
func (v *Expr) IsDots() bool {
	return v.Type == TSymbol && v.Str == DotsSymbol
}

// IsNumeric returns true if v has a primitive numeric type.
func (v *Expr) IsNumeric() bool {
	switch v.Type {
	case TInt, TFloat:
		return true
	}
	return false
}

// IsTrue returns true if v is the boolean true constant.
func (v *Expr) IsTrue() bool {
	return v.Type == TSymbol && v.Str == TrueSymbol
}

// Equal returns true if v and other are structurally equal.  Numeric values
// of different types compare equal when they represent the same number.
func (v *Expr) Equal(other *Expr) bool {
	if v.Type != other.Type {
		if v.IsNumeric() && other.IsNumeric() {
			return v.equalNum(other)
		}
		return false
	}
	if v.IsNumeric() {
		return v.equalNum(other)
	}
	switch v.Type {
	case TString, TSymbol:
		return v.Str == other.Str
	case TCall:
		if v.Str != other.Str {
			return false
		}
		return equalCells(v.Cells, other.Cells)
	case TList:
		return equalCells(v.Cells, other.Cells)
	case TError:
		return v.Str == other.Str && equalCells(v.Cells, other.Cells)
	}
	return false
}

func equalCells(a, b []*Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func (v *Expr) equalNum(other *Expr) bool {
	if v.Type == TInt && other.Type == TInt {
		return v.Int == other.Int
	}
	return toFloat(v) == toFloat(other)
}

func toFloat(v *Expr) float64 {
	if v.Type == TInt {
		return float64(v.Int)
	}
	return v.Float
}

// Copy creates a deep copy of the receiver.
func (v *Expr) Copy() *Expr {
	if v == nil {
		return nil
	}
	cp := &Expr{}
	*cp = *v
	cp.Cells = v.copyCells()
	return cp
}

func (v *Expr) copyCells() []*Expr {
	if len(v.Cells) == 0 {
		return nil
	}
	cells := make([]*Expr, len(v.Cells))
	for i := range cells {
		cells[i] = v.Cells[i].Copy()
	}
	return cells
}

// String renders v as a single line of source text.  Callers that need
// deterministic handling of long renderings should use Render, which makes
// the multi-segment possibility explicit; String is a convenience whose
// single-segment form is an implementation detail.
func (v *Expr) String() string {
	return renderString(v)
}

var defaultSourceLocation = &token.Location{
	File: "<native code>",
	Pos:  -1,
}

func nativeSource() *token.Location {
	return defaultSourceLocation
}
