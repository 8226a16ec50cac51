// Copyright © 2024 The quo authors

package lexer

import (
	"fmt"
	"unicode"

	"github.com/quolang/quo/parser/token"
)

// Lexer converts scanned source text into a stream of tokens.
type Lexer struct {
	scanner *token.Scanner
}

func New(s *token.Scanner) *Lexer {
	return &Lexer{scanner: s}
}

// ReadToken scans and returns the next token in the stream.  At the end of
// the stream ReadToken returns a token with type token.EOF.
func (lex *Lexer) ReadToken() *token.Token {
	lex.skipWhitespace()
	if !lex.scanner.Accept(func(c rune) bool { return true }) {
		if lex.scanner.EOF() {
			return lex.emit(token.EOF, "")
		}
		return lex.errorf("scan failure: %v", lex.scanner.Err())
	}
	switch c := lex.rune(); c {
	case '(':
		return lex.emitText(token.PAREN_L)
	case ')':
		return lex.emitText(token.PAREN_R)
	case ',':
		return lex.emitText(token.COMMA)
	case '+':
		return lex.emitText(token.PLUS)
	case '-':
		return lex.emitText(token.MINUS)
	case '*':
		return lex.emitText(token.STAR)
	case '/':
		return lex.emitText(token.SLASH)
	case '%':
		return lex.emitText(token.PERCENT)
	case '=':
		if lex.scanner.AcceptRune('=') {
			return lex.emitText(token.EQ)
		}
		return lex.emitText(token.ASSIGN)
	case '!':
		if lex.scanner.AcceptRune('=') {
			return lex.emitText(token.NEQ)
		}
		return lex.errorf("unexpected text starting with %q", c)
	case '<':
		if lex.scanner.AcceptRune('=') {
			return lex.emitText(token.LTE)
		}
		return lex.emitText(token.LT)
	case '>':
		if lex.scanner.AcceptRune('=') {
			return lex.emitText(token.GTE)
		}
		return lex.emitText(token.GT)
	case '#':
		lex.scanner.AcceptSeq(func(c rune) bool { return c != '\n' })
		return lex.emitText(token.COMMENT)
	case '.':
		if _, ok := lex.scanner.AcceptString(".."); !ok {
			return lex.errorf("unexpected text starting with %q", c)
		}
		return lex.emitText(token.DOTS)
	case '"':
		return lex.readString()
	default:
		if isDigit(c) {
			return lex.readNumber()
		}
		if isWordStart(c) {
			return lex.readSymbol()
		}
		return lex.errorf("unexpected text starting with %q", c)
	}
}

func (lex *Lexer) readString() *token.Token {
	for {
		var c rune
		if !lex.scanner.Accept(func(peek rune) bool { c = peek; return peek != '"' && peek != '\n' }) {
			break
		}
		if c == '\\' {
			// Wait until parsing to check the escaped character.
			if !lex.scanner.Accept(func(c rune) bool { return c != '\n' }) {
				return lex.errorf("unterminated string literal")
			}
		}
	}
	if !lex.scanner.AcceptRune('"') {
		return lex.errorf("unterminated string literal")
	}
	return lex.emitText(token.STRING)
}

func (lex *Lexer) readNumber() *token.Token {
	lex.scanner.AcceptSeqDigit()
	typ := token.INT
	if lex.scanner.AcceptRune('.') {
		if lex.scanner.AcceptSeqDigit() == 0 {
			return lex.errorf("invalid floating point literal starting: %s", lex.scanner.Text())
		}
		typ = token.FLOAT
	}
	if lex.scanner.AcceptAny("eE") {
		lex.scanner.AcceptAny("+-")
		if lex.scanner.AcceptSeqDigit() == 0 {
			return lex.errorf("invalid floating point literal starting: %s", lex.scanner.Text())
		}
		typ = token.FLOAT
	}
	if c, ok := lex.scanner.Peek(); ok && isWordStart(c) {
		lex.scanner.ScanRune() //nolint:errcheck // include the rune in the error text
		return lex.errorf("invalid numeric literal starting: %s", lex.scanner.Text())
	}
	return lex.emitText(typ)
}

func (lex *Lexer) readSymbol() *token.Token {
	lex.scanner.AcceptSeq(isWordRune)
	return lex.emitText(token.SYMBOL)
}

func (lex *Lexer) skipWhitespace() {
	lex.scanner.AcceptSeqSpace()
	lex.scanner.Ignore()
}

func (lex *Lexer) rune() rune {
	text := lex.scanner.Text()
	if text == "" {
		return 0
	}
	for _, c := range text {
		// first rune scanned since Ignore is enough for dispatch
		return c
	}
	return 0
}

func (lex *Lexer) emit(typ token.Type, text string) *token.Token {
	tok := &token.Token{
		Type:   typ,
		Text:   text,
		Source: lex.scanner.LocStart(),
	}
	lex.scanner.Ignore()
	return tok
}

func (lex *Lexer) emitText(typ token.Type) *token.Token {
	return lex.scanner.EmitToken(typ)
}

func (lex *Lexer) errorf(format string, v ...interface{}) *token.Token {
	return lex.emit(token.ERROR, fmt.Sprintf(format, v...))
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isWordStart(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isWordRune(c rune) bool {
	return isWordStart(c) || isDigit(c) || c == '.'
}
