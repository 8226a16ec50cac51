// Copyright © 2024 The quo authors

package repl

import (
	"sort"
	"strings"

	"github.com/quolang/quo/expr"
)

// symbolCompleter implements readline.AutoCompleter by enumerating bound
// names from the session context chain.
type symbolCompleter struct {
	root *expr.Context
}

func (c *symbolCompleter) Do(line []rune, pos int) ([][]rune, int) {
	// Extract the word being typed (backwards from cursor to a rune that
	// cannot appear in a symbol).
	start := pos
	for start > 0 {
		ch := line[start-1]
		if !symbolRune(ch) {
			break
		}
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}

	candidates := c.collectSymbols(prefix)
	if len(candidates) == 0 {
		return nil, 0
	}

	// Build completions: each entry is the suffix to append.
	result := make([][]rune, 0, len(candidates))
	for _, sym := range candidates {
		result = append(result, []rune(sym[len(prefix):]))
	}
	return result, len(prefix)
}

func (c *symbolCompleter) collectSymbols(prefix string) []string {
	seen := make(map[string]bool)
	var result []string
	for ctx := c.root; ctx != nil; ctx = ctx.Parent {
		for name := range ctx.Scope {
			if strings.HasPrefix(name, prefix) && !seen[name] {
				seen[name] = true
				result = append(result, name)
			}
		}
	}
	sort.Strings(result)
	return result
}

func symbolRune(c rune) bool {
	switch {
	case c == '_' || c == '.':
		return true
	case 'a' <= c && c <= 'z':
		return true
	case 'A' <= c && c <= 'Z':
		return true
	case '0' <= c && c <= '9':
		return true
	}
	return false
}
