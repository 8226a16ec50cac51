// Copyright © 2024 The quo authors

package repl

import (
	"errors"
	"fmt"
	"io"

	"github.com/quolang/quo/diagnostic"
	"github.com/quolang/quo/expr"
)

// renderError writes err to w as an annotated source snippet when the error
// carries a usable location, falling back to the plain error text.  src is
// the buffered input the error location points into.
func renderError(w io.Writer, src []byte, err error) {
	var cerr *expr.ErrorVal
	if !errors.As(err, &cerr) || cerr.Source == nil || cerr.Source.Pos < 0 {
		fmt.Fprintln(w, err) //nolint:errcheck // best-effort error display
		return
	}
	line, col := diagnostic.LineCol(src, cerr.Source.Pos)
	d := diagnostic.Diagnostic{
		Severity: diagnostic.SeverityError,
		Message:  cerr.ErrorMessage(),
		Spans: []diagnostic.Span{{
			File: cerr.Source.File,
			Line: line,
			Col:  col,
		}},
		Notes: []string{"condition: " + cerr.Condition()},
	}
	r := &diagnostic.Renderer{}
	r.AddSource(cerr.Source.File, src)
	if rerr := r.Render(w, d); rerr != nil {
		fmt.Fprintln(w, err) //nolint:errcheck // best-effort error display
	}
}
