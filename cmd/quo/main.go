// Copyright © 2024 The quo authors

package main

import "github.com/quolang/quo/cmd"

func main() {
	cmd.Execute()
}
