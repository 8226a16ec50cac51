// Copyright © 2024 The quo authors

/*
Package expr implements captured expressions: immutable trees representing
the literal source syntax of quo expressions, together with the operations
that make unevaluated syntax useful: rendering, substitution, and evaluation
against chained binding contexts.

Capturing trades referential transparency for leverage: a captured expression
can be inspected, rewritten, and evaluated under bindings its author never
saw.  In a compiled host language there is no implicit access to a caller's
source text, so capture is an explicit API surface with two call forms.  The
build-and-capture form parses source text (see the parser package and the
top-level quo package); the programmatic form accepts a pre-built tree.
Every operation in this package that could capture internally follows that
convention: a convenience entry point that parses text has a sibling taking
an *Expr directly, so composition from other routines never re-captures the
wrong call site's syntax.  Quote and Value cover the remaining sharp edge:
code invoked where no source syntax is available degrades to an identity or
trivial capture rather than failing.

All operations are pure transforms.  No operation mutates its input tree or
retains references beyond the call.
*/
package expr
