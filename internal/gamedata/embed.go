// Package gamedata provides embedded game data and utilities for loading it.
package gamedata

import "embed"

// dataFS embeds the static game tables at build time.
//
//go:embed *.json *.yaml
var dataFS embed.FS
