// Copyright © 2024 The quo authors

// Package diagnostic renders annotated source snippets for quo errors.  It is
// intentionally independent of the expr package so any command surface can
// use it without import cycles; callers convert error values to Diagnostic
// themselves.
package diagnostic

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// Span identifies a region of source code to highlight in the diagnostic.
type Span struct {
	File   string // path or display name of the source
	Line   int    // 1-based line number
	Col    int    // 1-based start column
	EndCol int    // 1-based end column (0 = auto-detect a token from source)
	Label  string // text shown under the underline
}

// Diagnostic is a single error, warning, or note with optional source
// annotations and trailing notes.
type Diagnostic struct {
	Severity Severity
	Message  string
	Spans    []Span
	Notes    []string // "= note:" lines
}

// LineCol converts a byte offset into 1-based line and column numbers within
// src.  Expression locations track byte offsets rather than columns; this is
// the bridge to the column-oriented Span.  Offsets out of range clamp to the
// nearest valid position.
func LineCol(src []byte, pos int) (line, col int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(src) {
		pos = len(src)
	}
	line, col = 1, 1
	for _, b := range src[:pos] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
