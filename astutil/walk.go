// Copyright © 2024 The quo authors

// Package astutil provides traversal helpers for captured expression trees.
//
// The helpers operate on *expr.Expr values produced by the parser or by the
// expr constructors and never modify the trees they visit.
package astutil

import (
	"sort"

	"github.com/quolang/quo/expr"
	"github.com/quolang/quo/parser/token"
)

// Walk calls fn for every node in the tree, depth-first, visiting parents
// before their children.  parent is nil for the root node.
func Walk(root *expr.Expr, fn func(node *expr.Expr, parent *expr.Expr, depth int)) {
	walkNode(root, nil, 0, fn)
}

func walkNode(node *expr.Expr, parent *expr.Expr, depth int, fn func(*expr.Expr, *expr.Expr, int)) {
	if node == nil {
		return
	}
	fn(node, parent, depth)
	for _, child := range node.Cells {
		walkNode(child, node, depth+1, fn)
	}
}

// WalkCalls calls fn for every call node in the tree.  Operator applications
// are calls too, so ``a + b*c'' visits the calls named "+" and "*".
func WalkCalls(root *expr.Expr, fn func(call *expr.Expr, depth int)) {
	Walk(root, func(node *expr.Expr, _ *expr.Expr, depth int) {
		if node.Type == expr.TCall {
			fn(node, depth)
		}
	})
}

// CalleeName returns the operator or function name applied by a call node, or
// "" when v is not a call.
func CalleeName(v *expr.Expr) string {
	if v.Type != expr.TCall {
		return ""
	}
	return v.Str
}

// ArgCount returns the number of arguments in a call node.
func ArgCount(v *expr.Expr) int {
	if v.Type != expr.TCall {
		return 0
	}
	return len(v.Cells)
}

// FreeSymbols returns the distinct names that evaluation of the tree would
// resolve through a binding context, sorted.  Callee names are included
// because evaluation resolves them the same way.  The boolean constants and
// the rest-arguments placeholder are not free names and are excluded.
func FreeSymbols(root *expr.Expr) []string {
	seen := make(map[string]bool)
	Walk(root, func(node *expr.Expr, _ *expr.Expr, _ int) {
		var name string
		switch node.Type {
		case expr.TSymbol:
			name = node.Str
		case expr.TCall:
			name = node.Str
		default:
			return
		}
		switch name {
		case expr.TrueSymbol, expr.FalseSymbol, expr.DotsSymbol:
			return
		}
		seen[name] = true
	})
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SourceOf returns the best available source location for a node, falling
// back to the first child carrying one.  Returns nil when the tree carries no
// location (trees built with the expr constructors rather than the parser).
func SourceOf(v *expr.Expr) *token.Location {
	if v == nil {
		return nil
	}
	if v.Source != nil && v.Source.Line > 0 {
		return v.Source
	}
	for _, child := range v.Cells {
		if loc := SourceOf(child); loc != nil {
			return loc
		}
	}
	return nil
}
