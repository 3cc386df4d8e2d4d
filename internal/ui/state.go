package ui

import "github.com/kyaoi/mdadf/internal/tree"

// State is what the browser starts from.
type State struct {
	Root        *tree.Node
	DisplayRoot string
	// OutlineWidth is the outline pane width in cells; zero picks a default.
	OutlineWidth int
	// Message is shown in place of a page preview when Root is nil.
	Message string
}
