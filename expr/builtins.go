// Copyright © 2024 The quo authors

package expr

import (
	"math"
	"strings"
)

type langBuiltin struct {
	name  string
	arity int // negative for variadic
	fn    Builtin
}

var langBuiltins = []*langBuiltin{
	{"+", -1, builtinAdd},
	{"-", -1, builtinSub},
	{"*", -1, builtinMul},
	{"/", 2, builtinDiv},
	{"%", 2, builtinMod},
	{"==", 2, builtinEq},
	{"!=", 2, builtinNeq},
	{"<", 2, builtinLT},
	{"<=", 2, builtinLTE},
	{">", 2, builtinGT},
	{">=", 2, builtinGTE},
	{"abs", 1, builtinAbs},
	{"min", -1, builtinMin},
	{"max", -1, builtinMax},
	{"len", 1, builtinLen},
	{"concat", -1, builtinConcat},
}

// DefaultBuiltins returns the set of builtin functions bound by NewRoot.
func DefaultBuiltins() []*Expr {
	funs := make([]*Expr, len(langBuiltins))
	for i, f := range langBuiltins {
		funs[i] = Fun(f.name, f.arity, f.fn)
	}
	return funs
}

func bothInt(a, b *Expr) bool {
	return a.Type == TInt && b.Type == TInt
}

func checkNumeric(name string, args []*Expr) *Expr {
	for _, x := range args {
		if !x.IsNumeric() {
			return ErrorConditionf(ConditionType, "%s: argument is not a number: %v", name, x.Type)
		}
	}
	return nil
}

func builtinAdd(args []*Expr) *Expr {
	if lerr := checkNumeric("+", args); lerr != nil {
		return lerr
	}
	allInt := true
	for _, x := range args {
		if x.Type != TInt {
			allInt = false
			break
		}
	}
	if allInt {
		sum := 0
		for _, x := range args {
			sum += x.Int
		}
		return Int(sum)
	}
	sum := 0.0
	for _, x := range args {
		sum += toFloat(x)
	}
	return Float(sum)
}

func builtinSub(args []*Expr) *Expr {
	if lerr := checkNumeric("-", args); lerr != nil {
		return lerr
	}
	switch len(args) {
	case 0:
		return ErrorConditionf(ConditionArity, "-: invalid number of arguments: 0")
	case 1:
		// arithmetic negation
		if args[0].Type == TInt {
			return Int(-args[0].Int)
		}
		return Float(-args[0].Float)
	case 2:
		if bothInt(args[0], args[1]) {
			return Int(args[0].Int - args[1].Int)
		}
		return Float(toFloat(args[0]) - toFloat(args[1]))
	default:
		return ErrorConditionf(ConditionArity, "-: invalid number of arguments: %d", len(args))
	}
}

func builtinMul(args []*Expr) *Expr {
	if lerr := checkNumeric("*", args); lerr != nil {
		return lerr
	}
	allInt := true
	for _, x := range args {
		if x.Type != TInt {
			allInt = false
			break
		}
	}
	if allInt {
		prod := 1
		for _, x := range args {
			prod *= x.Int
		}
		return Int(prod)
	}
	prod := 1.0
	for _, x := range args {
		prod *= toFloat(x)
	}
	return Float(prod)
}

func builtinDiv(args []*Expr) *Expr {
	if lerr := checkNumeric("/", args); lerr != nil {
		return lerr
	}
	if bothInt(args[0], args[1]) {
		if args[1].Int == 0 {
			return ErrorConditionf(ConditionDivideByZero, "/: division by zero")
		}
		return Int(args[0].Int / args[1].Int)
	}
	den := toFloat(args[1])
	if den == 0 {
		return ErrorConditionf(ConditionDivideByZero, "/: division by zero")
	}
	return Float(toFloat(args[0]) / den)
}

func builtinMod(args []*Expr) *Expr {
	if !bothInt(args[0], args[1]) {
		return ErrorConditionf(ConditionType, "%%: arguments are not integers: %v %v", args[0].Type, args[1].Type)
	}
	if args[1].Int == 0 {
		return ErrorConditionf(ConditionDivideByZero, "%%: division by zero")
	}
	return Int(args[0].Int % args[1].Int)
}

func builtinEq(args []*Expr) *Expr {
	return Bool(args[0].Equal(args[1]))
}

func builtinNeq(args []*Expr) *Expr {
	return Bool(!args[0].Equal(args[1]))
}

// numOrder compares two values that are both numbers or both strings.  The
// error return is non-nil for any other argument types.
func numOrder(name string, a, b *Expr) (int, *Expr) {
	if a.Type == TString && b.Type == TString {
		return strings.Compare(a.Str, b.Str), nil
	}
	if !a.IsNumeric() || !b.IsNumeric() {
		return 0, ErrorConditionf(ConditionType, "%s: arguments are not ordered: %v %v", name, a.Type, b.Type)
	}
	if bothInt(a, b) {
		switch {
		case a.Int < b.Int:
			return -1, nil
		case a.Int > b.Int:
			return 1, nil
		}
		return 0, nil
	}
	x, y := toFloat(a), toFloat(b)
	switch {
	case x < y:
		return -1, nil
	case x > y:
		return 1, nil
	}
	return 0, nil
}

func builtinLT(args []*Expr) *Expr {
	c, lerr := numOrder("<", args[0], args[1])
	if lerr != nil {
		return lerr
	}
	return Bool(c < 0)
}

func builtinLTE(args []*Expr) *Expr {
	c, lerr := numOrder("<=", args[0], args[1])
	if lerr != nil {
		return lerr
	}
	return Bool(c <= 0)
}

func builtinGT(args []*Expr) *Expr {
	c, lerr := numOrder(">", args[0], args[1])
	if lerr != nil {
		return lerr
	}
	return Bool(c > 0)
}

func builtinGTE(args []*Expr) *Expr {
	c, lerr := numOrder(">=", args[0], args[1])
	if lerr != nil {
		return lerr
	}
	return Bool(c >= 0)
}

func builtinAbs(args []*Expr) *Expr {
	x := args[0]
	switch x.Type {
	case TInt:
		if x.Int < 0 {
			return Int(-x.Int)
		}
		return x
	case TFloat:
		return Float(math.Abs(x.Float))
	default:
		return ErrorConditionf(ConditionType, "abs: argument is not a number: %v", x.Type)
	}
}

func builtinMin(args []*Expr) *Expr {
	return builtinExtreme("min", args, -1)
}

func builtinMax(args []*Expr) *Expr {
	return builtinExtreme("max", args, 1)
}

func builtinExtreme(name string, args []*Expr, sign int) *Expr {
	if len(args) == 0 {
		return ErrorConditionf(ConditionArity, "%s: invalid number of arguments: 0", name)
	}
	best := args[0]
	for _, x := range args[1:] {
		c, lerr := numOrder(name, x, best)
		if lerr != nil {
			return lerr
		}
		if c*sign > 0 {
			best = x
		}
	}
	return best
}

func builtinLen(args []*Expr) *Expr {
	n := args[0].Len()
	if n < 0 {
		return ErrorConditionf(ConditionType, "len: argument has no length: %v", args[0].Type)
	}
	return Int(n)
}

func builtinConcat(args []*Expr) *Expr {
	var buf strings.Builder
	for _, x := range args {
		switch x.Type {
		case TString:
			buf.WriteString(x.Str)
		default:
			buf.WriteString(x.String())
		}
	}
	return String(buf.String())
}
