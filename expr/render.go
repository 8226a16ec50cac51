// Copyright © 2024 The quo authors

package expr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// DefaultRenderWidth is the wrap width used by Render when the caller passes
// a non-positive width.
const DefaultRenderWidth = 80

// Operator precedence levels used for parenthesization when rendering and
// for precedence climbing when parsing.  Higher binds tighter.
const (
	precCompare = 1 + iota
	precSum
	precProduct
	precUnary
	precAtom
)

var opPrecedence = map[string]int{
	"==": precCompare,
	"!=": precCompare,
	"<":  precCompare,
	"<=": precCompare,
	">":  precCompare,
	">=": precCompare,
	"+":  precSum,
	"-":  precSum,
	"*":  precProduct,
	"/":  precProduct,
	"%":  precProduct,
}

// OperatorPrecedence reports the infix binding strength of the named
// operator.  A false second value means name is not an infix operator.
func OperatorPrecedence(name string) (int, bool) {
	prec, ok := opPrecedence[name]
	return prec, ok
}

// Render converts v to printable text, wrapping deterministically at width
// columns (DefaultRenderWidth when width is not positive).  The result is one
// segment per output line; a rendering that fits on one line yields a single
// segment.  Callers that join segments or take only the first one are relying
// on the rendering fitting the width, which can silently stop being true as
// expressions grow.
func Render(v *Expr, width int) []string {
	if width <= 0 {
		width = DefaultRenderWidth
	}
	s := renderString(v)
	if len(s) <= width {
		return []string{s}
	}
	return strings.Split(wordwrap.String(s, width), "\n")
}

// RenderIndent renders v wrapped at width with continuation segments
// indented n spaces, as a single printable block.
func RenderIndent(v *Expr, width, n int) string {
	seg := Render(v, width)
	if len(seg) == 1 {
		return seg[0]
	}
	rest := indent.String(strings.Join(seg[1:], "\n"), uint(n)) //nolint:gosec // n is a small caller-chosen indent
	return seg[0] + "\n" + rest
}

func renderString(v *Expr) string {
	return renderPrec(v, 0)
}

// renderPrec renders v, parenthesizing when v binds looser than the
// enclosing operator.
func renderPrec(v *Expr, outer int) string {
	switch v.Type {
	case TInt:
		return strconv.Itoa(v.Int)
	case TFloat:
		// The 'g' format can render a floating point number such that it
		// appears as an integer (2.0 renders as 2).  Append a decimal point
		// so renderings parse back to the same type.
		s := strconv.FormatFloat(v.Float, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	case TString:
		return fmt.Sprintf("%q", v.Str)
	case TSymbol:
		return v.Str
	case TList:
		return "[" + renderJoin(v.Cells, ", ") + "]"
	case TBuiltin:
		return fmt.Sprintf("#<builtin %s>", v.Str)
	case TError:
		return (*ErrorVal)(v).Error()
	case TCall:
		return renderCall(v, outer)
	default:
		return fmt.Sprintf("#<%s>", v.Type)
	}
}

func renderCall(v *Expr, outer int) string {
	prec, infix := opPrecedence[v.Str]
	if infix && v.Str == "-" && len(v.Cells) == 1 {
		s := "-" + renderPrec(v.Cells[0], precUnary)
		if outer >= precUnary {
			return "(" + s + ")"
		}
		return s
	}
	if infix && len(v.Cells) >= 2 {
		parts := make([]string, len(v.Cells))
		// The leftmost operand tolerates equal precedence; operators are
		// left associative so later operands need parens at equal level.
		parts[0] = renderPrec(v.Cells[0], prec-1)
		for i, c := range v.Cells[1:] {
			parts[i+1] = renderPrec(c, prec)
		}
		s := strings.Join(parts, " "+v.Str+" ")
		if outer >= prec {
			return "(" + s + ")"
		}
		return s
	}
	return v.Str + "(" + renderJoin(v.Cells, ", ") + ")"
}

func renderJoin(cells []*Expr, sep string) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = renderPrec(c, 0)
	}
	return strings.Join(parts, sep)
}
