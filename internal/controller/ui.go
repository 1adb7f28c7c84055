// Package controller provides the output surfaces for mutation path
// results: a plain table writer and an interactive TUI browser.
package controller

import (
	"os"

	"golang.org/x/term"

	m "github.com/natepiano/brp-mutate/internal/model"
)

// UI is the interface the workflow drives. Implementations can use
// different output methods (simple text, TUI, raw JSON).
type UI interface {
	// DisplayTypes shows the registry type listing.
	DisplayTypes(types []m.TypeName) error
	// DisplayAnalysis shows the computed mutation paths for one root type.
	DisplayAnalysis(root m.TypeName, paths map[string]m.PathEntry) error
	// DisplayJSON emits a value as indented JSON, for tool consumers.
	DisplayJSON(v any) error
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
