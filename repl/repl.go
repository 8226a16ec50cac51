// Copyright © 2024 The quo authors

// Package repl implements an interactive quo session.
package repl

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"github.com/quolang/quo/expr"
	"github.com/quolang/quo/parser"
	"github.com/quolang/quo/parser/lexer"
	"github.com/quolang/quo/parser/token"
)

type config struct {
	stdin  io.ReadCloser
	stderr io.WriteCloser
}

func newConfig(opts ...Option) *config {
	config := &config{}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

type Option func(*config)

// WithStdin allows overriding the input to the REPL.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStderr allows overriding the output to the REPL.
func WithStderr(stderr io.WriteCloser) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// RunRepl runs a simple repl with the builtin functions bound.
func RunRepl(prompt string, opts ...Option) {
	RunContext(expr.NewRoot(), prompt, opts...)
}

// RunContext runs a simple repl evaluating against root.  Bindings made with
// `name = expression` lines persist in root for the rest of the session.
func RunContext(root *expr.Context, prompt string, opts ...Option) {
	cont := strings.Repeat(" ", len(prompt))

	cfg := newConfig(opts...)
	stderr := io.WriteCloser(os.Stderr)
	if cfg.stderr != nil {
		stderr = cfg.stderr
	}

	histFile := historyPath()
	ensureHistoryFilePermissions(histFile)
	rlCfg := &readline.Config{
		Stdout:            stderr,
		Stderr:            stderr,
		Prompt:            prompt,
		HistoryFile:       histFile,
		HistorySearchFold: true,
		AutoComplete:      &symbolCompleter{root: root},
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		panic(err)
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	var pending []byte
	for {
		if len(pending) == 0 {
			rl.SetPrompt(prompt)
		} else {
			rl.SetPrompt(cont)
		}
		line, err := rl.ReadSlice()
		if err == readline.ErrInterrupt {
			pending = nil
			continue
		}
		if err != nil {
			break
		}
		if len(pending) == 0 && len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		pending = append(append(pending, line...), '\n')
		if evalLine(root, stderr, pending) {
			pending = nil
		}
	}
}

// evalLine evaluates the buffered source text and reports whether the buffer
// was consumed.  A false return means src ends mid-expression and the caller
// should read a continuation line.
func evalLine(root *expr.Context, w io.Writer, src []byte) bool {
	if name, rhs, ok := splitAssign(src); ok {
		v, err := parser.ParseExpressionString("stdin", rhs)
		if err != nil {
			if incomplete(err) {
				return false
			}
			renderError(w, []byte(rhs), err)
			return true
		}
		r := root.Eval(v)
		if r.Type == expr.TError {
			renderError(w, []byte(rhs), expr.GoError(r))
			return true
		}
		if lerr := root.Put(name, r); lerr.Type == expr.TError {
			renderError(w, []byte(rhs), expr.GoError(lerr))
		}
		return true
	}
	exprs, err := parser.Parse("stdin", bytes.NewReader(src))
	if err != nil {
		if incomplete(err) {
			return false
		}
		renderError(w, src, err)
		return true
	}
	for _, v := range exprs {
		r := root.Eval(v)
		if r.Type == expr.TError {
			renderError(w, src, expr.GoError(r))
			continue
		}
		fmt.Fprintln(w, expr.RenderIndent(r, expr.DefaultRenderWidth, 2)) //nolint:errcheck // best-effort REPL output
	}
	return true
}

// splitAssign recognizes a leading `name =` on a REPL line.  Assignment is a
// session convenience, not part of the expression grammar, so it is detected
// token-wise before parsing.  A double equals is a comparison, not an
// assignment.
func splitAssign(src []byte) (name string, rhs string, ok bool) {
	lex := lexer.New(token.NewScanner("stdin", bytes.NewReader(src)))
	tok := lex.ReadToken()
	if tok.Type != token.SYMBOL {
		return "", "", false
	}
	name = tok.Text
	tok = lex.ReadToken()
	if tok.Type != token.ASSIGN {
		return "", "", false
	}
	return name, string(src[tok.Source.Pos+1:]), true
}

// incomplete reports whether err indicates source text that ends in the
// middle of an expression.
func incomplete(err error) bool {
	cerr, ok := err.(*expr.ErrorVal)
	return ok && cerr.Condition() == "unmatched-syntax"
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".quo_history")
}

// ensureHistoryFilePermissions creates the history file when it is missing
// and restricts its mode, since command history can contain sensitive input.
func ensureHistoryFilePermissions(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0600) //#nosec G304
	if err != nil {
		return
	}
	f.Close() //nolint:errcheck,gosec // best-effort cleanup
	_ = os.Chmod(path, 0600)
}
