// Copyright © 2024 The quo authors

package token

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Scanner facilitates construction of tokens from a byte stream (io.Reader).
// The stream is buffered fully at construction.  Expression sources in quo are
// short, interactive strings so streaming incrementally buys nothing.
type Scanner struct {
	file string
	buf  []byte

	readErr error

	start     int // start of the current token
	pos       int // index of the next rune to scan
	line      int // line number at pos
	startLine int // line number at start
}

// NewScanner initializes and returns a new Scanner reading from r.
func NewScanner(file string, r io.Reader) *Scanner {
	s := &Scanner{
		file:      file,
		line:      1,
		startLine: 1,
	}
	s.buf, s.readErr = io.ReadAll(r)
	return s
}

// NewScannerString initializes and returns a new Scanner over source text src.
func NewScannerString(file, src string) *Scanner {
	return NewScanner(file, strings.NewReader(src))
}

// Err returns an error encountered reading the input stream, if any.
func (s *Scanner) Err() error {
	return s.readErr
}

// EOF returns true when there is no text remaining to scan.
func (s *Scanner) EOF() bool {
	return s.pos >= len(s.buf)
}

// EmitToken returns a token containing the text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) *Token {
	tok := &Token{
		Type:   typ,
		Text:   s.Text(),
		Source: s.LocStart(),
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to skip all text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) Ignore() {
	s.start = s.pos
	s.startLine = s.line
}

// Text returns the text scanned since the last call to either EmitToken or
// Ignore.
func (s *Scanner) Text() string {
	return string(s.buf[s.start:s.pos])
}

// Peek returns the next rune to be scanned, if there is one.  A false second
// value indicates EOF or an invalid utf-8 sequence.
func (s *Scanner) Peek() (rune, bool) {
	if s.EOF() {
		return 0, false
	}
	c, n := utf8.DecodeRune(s.buf[s.pos:])
	if c == utf8.RuneError && n == 1 {
		return utf8.RuneError, false
	}
	return c, true
}

// ScanRune scans a utf-8 rune from the input for inclusion in the current
// token.  If an error prevents a valid rune from being scanned an error is
// returned.
func (s *Scanner) ScanRune() error {
	if s.EOF() {
		return io.EOF
	}
	c, n := utf8.DecodeRune(s.buf[s.pos:])
	if c == utf8.RuneError && n == 1 {
		return fmt.Errorf("invalid utf-8 sequence in source text starting with byte %q", s.buf[s.pos])
	}
	if c == '\n' {
		s.line++
	}
	s.pos += n
	return nil
}

// Accept scans the next rune when fn approves of it.
func (s *Scanner) Accept(fn func(rune) bool) bool {
	c, ok := s.Peek()
	if !ok || !fn(c) {
		return false
	}
	return s.ScanRune() == nil
}

func (s *Scanner) AcceptRune(c rune) bool {
	return s.Accept(func(peek rune) bool { return peek == c })
}

func (s *Scanner) AcceptDigit() bool {
	return s.Accept(func(c rune) bool { return '0' <= c && c <= '9' })
}

func (s *Scanner) AcceptSpace() bool {
	return s.Accept(unicode.IsSpace)
}

func (s *Scanner) AcceptAny(charset string) bool {
	return s.Accept(func(c rune) bool { return strings.ContainsRune(charset, c) })
}

func (s *Scanner) AcceptSeq(fn func(rune) bool) int {
	var n int
	for s.Accept(fn) {
		n++
	}
	return n
}

func (s *Scanner) AcceptSeqDigit() int {
	var n int
	for s.AcceptDigit() {
		n++
	}
	return n
}

func (s *Scanner) AcceptSeqSpace() int {
	var n int
	for s.AcceptSpace() {
		n++
	}
	return n
}

func (s *Scanner) AcceptString(literal string) (int, bool) {
	var n int
	for _, c := range literal {
		if !s.AcceptRune(c) {
			return n, false
		}
		n++
	}
	return n, true
}

// LocStart returns a Location referencing the beginning of the current token,
// just beyond the end of the previous token.
func (s *Scanner) LocStart() *Location {
	return &Location{
		File: s.file,
		Line: s.startLine,
		Pos:  s.start,
	}
}

// Loc returns a Location referencing the current scanner position.
func (s *Scanner) Loc() *Location {
	return &Location{
		File: s.file,
		Line: s.line,
		Pos:  s.pos,
	}
}
