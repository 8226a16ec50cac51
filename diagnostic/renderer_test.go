// Copyright © 2024 The quo authors

package diagnostic

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRenderer returns a Renderer with colors disabled and only in-memory
// sources.
func testRenderer(sources map[string]string) *Renderer {
	r := &Renderer{
		Color: ColorNever,
		SourceReader: func(name string) ([]byte, error) {
			return nil, errors.New("not found: " + name)
		},
	}
	for name, text := range sources {
		r.AddSource(name, []byte(text))
	}
	return r
}

func render(t *testing.T, r *Renderer, d Diagnostic) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, d))
	return buf.String()
}

func TestRenderError(t *testing.T) {
	r := testRenderer(map[string]string{
		"<repl>": "weight / (height * height)",
	})
	got := render(t, r, Diagnostic{
		Severity: SeverityError,
		Message:  "unbound symbol: height",
		Spans: []Span{
			{File: "<repl>", Line: 1, Col: 11, EndCol: 16, Label: "no binding for this name"},
		},
	})
	assert.Contains(t, got, "error: unbound symbol: height")
	assert.Contains(t, got, "--> <repl>:1:11")
	assert.Contains(t, got, "weight / (height * height)")
	assert.Contains(t, got, "^^^^^^")
	assert.Contains(t, got, "no binding for this name")
}

func TestRenderWarning(t *testing.T) {
	r := testRenderer(map[string]string{
		"calc.quo": "x + 1\nx / 0",
	})
	got := render(t, r, Diagnostic{
		Severity: SeverityWarning,
		Message:  "division by a constant zero",
		Spans: []Span{
			{File: "calc.quo", Line: 2, Col: 3, EndCol: 3},
		},
	})
	assert.Contains(t, got, "warning: division by a constant zero")
	assert.Contains(t, got, "--> calc.quo:2:3")
	assert.Contains(t, got, "x / 0")
}

func TestRenderNoSource(t *testing.T) {
	r := testRenderer(nil)
	got := render(t, r, Diagnostic{
		Severity: SeverityError,
		Message:  "some error",
		Spans: []Span{
			{File: "<stdin>", Line: 5, Col: 3},
		},
	})
	assert.Contains(t, got, "error: some error")
	assert.Contains(t, got, "--> <stdin>:5:3")
	// A gutter but no source line or underline
	assert.Contains(t, got, "|")
	assert.NotContains(t, got, "^")
}

func TestRenderNotes(t *testing.T) {
	r := testRenderer(map[string]string{
		"<repl>": "bmi(80, 2)",
	})
	got := render(t, r, Diagnostic{
		Severity: SeverityError,
		Message:  "unbound symbol: bmi",
		Spans: []Span{
			{File: "<repl>", Line: 1, Col: 1, EndCol: 3},
		},
		Notes: []string{
			"condition: unbound-symbol",
		},
	})
	assert.Contains(t, got, "= note: condition: unbound-symbol")
}

func TestRenderAutoDetectEndCol(t *testing.T) {
	r := testRenderer(map[string]string{
		"<repl>": "1 + fnord",
	})
	got := render(t, r, Diagnostic{
		Severity: SeverityError,
		Message:  "unbound symbol: fnord",
		Spans: []Span{
			{File: "<repl>", Line: 1, Col: 5}, // EndCol=0, auto-detect
		},
	})
	// "fnord" starts at col 5 and runs to end of line
	assert.Contains(t, got, "^^^^^")
}

func TestRenderMultipleDiagnostics(t *testing.T) {
	r := testRenderer(map[string]string{
		"calc.quo": "a / 0\nmax()",
	})
	diags := []Diagnostic{
		{
			Severity: SeverityError,
			Message:  "/: division by zero",
			Spans:    []Span{{File: "calc.quo", Line: 1, Col: 3, EndCol: 3}},
		},
		{
			Severity: SeverityError,
			Message:  "max: too few arguments",
			Spans:    []Span{{File: "calc.quo", Line: 2, Col: 1, EndCol: 3}},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, r.RenderAll(&buf, diags))
	got := buf.String()
	parts := strings.Split(got, "\n\n")
	assert.GreaterOrEqual(t, len(parts), 2, "diagnostics separated by a blank line")
	assert.Contains(t, got, "/: division by zero")
	assert.Contains(t, got, "max: too few arguments")
}

func TestRenderNoSpans(t *testing.T) {
	r := testRenderer(nil)
	got := render(t, r, Diagnostic{
		Severity: SeverityError,
		Message:  "open calc.quo: no such file",
	})
	assert.Contains(t, got, "error: open calc.quo: no such file")
	assert.NotContains(t, got, "-->")
}

func TestRenderSourceReaderFallback(t *testing.T) {
	r := &Renderer{
		Color: ColorNever,
		SourceReader: func(name string) ([]byte, error) {
			if name != "calc.quo" {
				return nil, errors.New("not found: " + name)
			}
			return []byte("total - spent"), nil
		},
	}
	got := render(t, r, Diagnostic{
		Severity: SeverityError,
		Message:  "unbound symbol: spent",
		Spans:    []Span{{File: "calc.quo", Line: 1, Col: 9}},
	})
	assert.Contains(t, got, "total - spent")
	assert.Contains(t, got, "^^^^^")
}

func TestLineCol(t *testing.T) {
	src := []byte("a + b\ncc / dd\n")
	tests := []struct {
		pos  int
		line int
		col  int
	}{
		{0, 1, 1},
		{4, 1, 5},
		{6, 2, 1},
		{9, 2, 4},
		{-1, 1, 1},
		{100, 3, 1},
	}
	for _, test := range tests {
		line, col := LineCol(src, test.pos)
		assert.Equal(t, test.line, line, "pos %d line", test.pos)
		assert.Equal(t, test.col, col, "pos %d col", test.pos)
	}
}
