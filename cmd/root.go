// Copyright © 2024 The quo authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "quo",
	Short: "quo, a captured expression evaluator",
	Long: `quo captures expressions as data instead of evaluating them on the spot.
A captured expression can be rendered back to source text, rewritten with a
substitution map, and evaluated under any number of binding contexts.

Getting started:
  quo run file.quo             Run expressions from a source file
  quo run -e '1 + 2'           Evaluate an expression
  quo run -e 'x * 2' -d x=21   Evaluate with data bindings
  quo repl                     Start an interactive session

Language overview:
  Expressions are infix arithmetic and comparisons over integers, floats,
  strings and symbols: a + b * c, weight / (height * height), x == y.
  Functions are called as name(args): max(1, 2), len("abc").
  Booleans are the symbols true and false.
  The placeholder ... in an argument list marks where rest arguments are
  spliced during substitution.

More information:
  Source code:     https://github.com/quolang/quo`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Here you will define your flags and configuration settings.
	// Cobra supports persistent flags, which, if defined here,
	// will be global for your application.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.quo.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".quo" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".quo")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
