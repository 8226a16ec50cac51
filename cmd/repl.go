// Copyright © 2024 The quo authors

package cmd

import (
	"os"
	"path/filepath"

	"github.com/quolang/quo/repl"
	"github.com/spf13/cobra"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive quo session",
	Long: `Start an interactive read-eval-print loop for quo expressions.

Line editing and in-session command history are supported via readline.
Bindings made with name = expression persist for the session.  Use Ctrl-D
or Ctrl-C to exit.

Example session:
  quo> 1 + 2
  3
  quo> x = 4
  quo> x * x + 1
  17
  quo> max(x, 10)
  10`,
	Run: func(cmd *cobra.Command, args []string) {
		repl.RunRepl(filepath.Base(os.Args[0]) + "> ")
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
