// Copyright © 2024 The quo authors

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/quolang/quo/astutil"
	"github.com/quolang/quo/diagnostic"
	"github.com/quolang/quo/expr"
	"github.com/quolang/quo/parser"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
	runVars       bool
	runData       []string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate quo expressions",
	Long: `Evaluate expressions supplied via the command line or source files.

Data bindings given with -d are available as symbols during evaluation:

  quo run -p -e 'weight / (height * height)' -d weight=80.0 -d height=2.0`,
	Run: func(cmd *cobra.Command, args []string) {
		root := expr.NewRoot()
		if err := bindData(root, runData); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for i := range args {
			name, src, err := readSource(args[i])
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			exprs, err := parser.ParseString(name, string(src))
			if err != nil {
				reportError(name, src, err)
				os.Exit(1)
			}
			for _, v := range exprs {
				if runVars {
					for _, sym := range astutil.FreeSymbols(v) {
						fmt.Println(sym)
					}
					continue
				}
				r := root.Eval(v)
				if r.Type == expr.TError {
					reportError(name, src, expr.GoError(r))
					os.Exit(1)
				}
				if runPrint {
					fmt.Println(expr.RenderIndent(r, expr.DefaultRenderWidth, 2))
				}
			}
		}
	},
}

// readSource resolves one command line argument to named source text, either
// an expression literal or a file path according to the -e flag.
func readSource(arg string) (name string, src []byte, err error) {
	if runExpression {
		return "<arg>", []byte(arg), nil
	}
	src, err = os.ReadFile(arg) //#nosec G304
	return arg, src, err
}

// reportError writes err to stderr as an annotated source snippet when it
// carries a location within the named source, falling back to plain text.
func reportError(name string, src []byte, err error) {
	var cerr *expr.ErrorVal
	if !errors.As(err, &cerr) || cerr.Source == nil || cerr.Source.Pos < 0 || cerr.Source.File != name {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	line, col := diagnostic.LineCol(src, cerr.Source.Pos)
	d := diagnostic.Diagnostic{
		Severity: diagnostic.SeverityError,
		Message:  cerr.ErrorMessage(),
		Spans: []diagnostic.Span{{
			File: name,
			Line: line,
			Col:  col,
		}},
		Notes: []string{"condition: " + cerr.Condition()},
	}
	r := &diagnostic.Renderer{}
	r.AddSource(name, src)
	if rerr := r.Render(os.Stderr, d); rerr != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

// bindData binds name=expression pairs in ctx.  The right hand side is
// itself parsed and evaluated so bindings can hold any expressible value.
func bindData(ctx *expr.Context, pairs []string) error {
	for _, pair := range pairs {
		name, src, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("invalid data binding (want name=expression): %s", pair)
		}
		v, err := parser.ParseExpressionString("<data>", src)
		if err != nil {
			return fmt.Errorf("data binding %s: %w", name, err)
		}
		r := ctx.Eval(v)
		if r.Type == expr.TError {
			return fmt.Errorf("data binding %s: %w", name, expr.GoError(r))
		}
		if lerr := ctx.Put(name, r); lerr.Type == expr.TError {
			return fmt.Errorf("data binding %s: %w", name, expr.GoError(lerr))
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as quo expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
	runCmd.Flags().BoolVar(&runVars, "vars", false,
		"Print the free symbols of each expression instead of evaluating")
	runCmd.Flags().StringArrayVarP(&runData, "data", "d", nil,
		"Bind name=expression in the evaluation context (repeatable)")
}
