// Copyright © 2024 The quo authors

// Package docs embeds the quo language reference for use by the CLI.
package docs

import _ "embed"

//go:embed lang.md
var LangGuide string
