// Copyright © 2024 The quo authors

package cmd

import (
	"fmt"

	"github.com/quolang/quo/docs"
	"github.com/spf13/cobra"
)

// langCmd represents the lang command
var langCmd = &cobra.Command{
	Use:   "lang",
	Short: "Print the quo language reference",
	Long:  `Print the quo language reference to stdout in markdown format.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(docs.LangGuide)
	},
}

func init() {
	rootCmd.AddCommand(langCmd)
}
