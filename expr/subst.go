// Copyright © 2024 The quo authors

package expr

// Substitute returns a new captured expression in which every free name that
// appears as a key in m is replaced by its mapped expression, and every other
// name is left untouched.  Use Value to lift plain Go values into the map.
//
// A rest-arguments placeholder appearing in a call argument list is expanded
// in place: when m binds DotsSymbol to a TList the list's elements are
// spliced into the argument list.  Anywhere else a bound placeholder is
// replaced by the list value itself.
//
// A call is renamed when its function name maps to a symbol; mapping a
// function name to a non-symbol value leaves the call untouched.
//
// Substitute is a pure function: v is never modified and replacements are
// copied out of m, so the map may be reused.  Substituting with an empty map
// returns an expression that renders identically to the original.
func Substitute(v *Expr, m map[string]*Expr) *Expr {
	if len(m) == 0 {
		return v
	}
	return substitute(v, m)
}

// SubstituteValues is a convenience form of Substitute that lifts plain Go
// values with Value.
func SubstituteValues(v *Expr, m map[string]interface{}) *Expr {
	sub := make(map[string]*Expr, len(m))
	for k, val := range m {
		sub[k] = Value(val)
	}
	return Substitute(v, sub)
}

func substitute(v *Expr, m map[string]*Expr) *Expr {
	switch v.Type {
	case TSymbol:
		if rep, ok := m[v.Str]; ok {
			return rep.Copy()
		}
		return v
	case TCall:
		name := v.Str
		if rep, ok := m[name]; ok && rep.Type == TSymbol {
			name = rep.Str
		}
		cells := make([]*Expr, 0, len(v.Cells))
		for _, arg := range v.Cells {
			if arg.IsDots() {
				if rep, ok := m[DotsSymbol]; ok && rep.Type == TList {
					for _, rest := range rep.Cells {
						cells = append(cells, rest.Copy())
					}
					continue
				}
			}
			cells = append(cells, substitute(arg, m))
		}
		out := Call(name, cells...)
		out.Source = v.Source
		return out
	case TList:
		cells := make([]*Expr, len(v.Cells))
		for i, cell := range v.Cells {
			cells[i] = substitute(cell, m)
		}
		out := List(cells...)
		out.Source = v.Source
		return out
	default:
		return v
	}
}
